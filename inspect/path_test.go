package inspect

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/odin-inspect/errors"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "/", want: nil},
		{in: "0", want: []int{0}},
		{in: "0/3/1", want: []int{0, 3, 1}},
		{in: "/2/", want: []int{2}},
		{in: "1/x", wantErr: true},
		{in: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.wantErr {
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput {
					t.Fatalf("ParsePath(%q) error = %v, want invalid input", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) failed: %v", tt.in, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParsePath(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestInspector_Descend(t *testing.T) {
	f := newFixture(t, nil)
	intT := f.b.MustScalar("int")
	f.words(0x1000, 7, 8)
	f.words(0x2000, 0x1000, 2)
	f.words(0x3000, 0x2000)
	v := f.value("p", f.b.Pointer(f.b.Slice(intT)), 0x3000)

	got, err := f.ins.Descend(v, []int{0, 1})
	if err != nil {
		t.Fatalf("Descend failed: %v", err)
	}
	if got.Name() != "[1]" || f.ins.Text(got) != "8" {
		t.Errorf("Descend = %s %q, want [1] \"8\"", got.Name(), f.ins.Text(got))
	}

	same, err := f.ins.Descend(v, nil)
	if err != nil || same.Name() != "p" {
		t.Errorf("Descend(nil) = %s, %v", same.Name(), err)
	}

	_, err = f.ins.Descend(v, []int{0, 5})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOutOfBounds {
		t.Errorf("Descend out of range error = %v, want out_of_bounds", err)
	}
}
