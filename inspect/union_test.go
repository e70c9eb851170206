package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	odininspect "github.com/wippyai/odin-inspect"
	inspecterrors "github.com/wippyai/odin-inspect/errors"
)

func TestUnion_NoNil(t *testing.T) {
	f := newFixture(t, nil)
	u := f.b.Union("main::Value", false, f.b.MustScalar("i64"), f.b.MustScalar("f64"), f.b.String())
	tag, _ := u.FieldByName("tag")

	f.bytes(0x1000, []byte("hi"))
	f.words(0x2000, 0x1000, 2, 2)
	if tag.Offset != 16 {
		t.Fatalf("tag offset = %d, want 16", tag.Offset)
	}
	v := f.value("u", u, 0x2000)

	variant, ok := f.ins.unionVariant(v)
	if !ok || variant.Name() != "v2" {
		t.Fatalf("unionVariant = %q, %v; want v2", variant.Name(), ok)
	}
	if got := f.ins.Text(v); got != `string("hi")` {
		t.Errorf("Text = %q", got)
	}
	if diff := cmp.Diff([]string{"data", "len"}, childNames(f.ins, v)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestUnion_NoNilTagZero(t *testing.T) {
	f := newFixture(t, nil)
	u := f.b.Union("", false, f.b.MustScalar("i64"), f.b.MustScalar("bool"))
	f.words(0x2000, 0xfffffffffffffffe, 0)

	if got := f.ins.Text(f.value("u", u, 0x2000)); got != "i64(-2)" {
		t.Errorf("Text = %q, want i64(-2)", got)
	}
}

func TestUnion_Nilable(t *testing.T) {
	tests := []struct {
		name     string
		tag      uint64
		want     string
		children int
	}{
		{"nil", 0, "nil", 0},
		{"first variant", 1, "int(7)", 0},
		{"pointer variant", 2, "^int((^int)9)", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			integer := f.b.MustScalar("int")
			u := f.b.Union("Maybe", true, integer, f.b.Pointer(integer))
			f.words(0x1000, 9)
			payload := uint64(7)
			if tt.tag == 2 {
				payload = 0x1000
			}
			f.words(0x2000, payload, tt.tag)
			v := f.value("u", u, 0x2000)

			if got := f.ins.Text(v); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
			if got := f.ins.Children(v).NumChildren(); got != tt.children {
				t.Errorf("NumChildren = %d, want %d", got, tt.children)
			}
		})
	}
}

func TestUnion_NilableNeverLooksUpV0(t *testing.T) {
	f := newFixture(t, nil)
	u := &lookupRecorder{Type: f.b.Union("Maybe", true, f.b.MustScalar("int"))}
	f.words(0x2000, 0, 0)

	v := odininspect.NewValue("u", u, 0x2000)
	if got := f.ins.Text(v); got != "nil" {
		t.Fatalf("Text = %q, want nil", got)
	}
	for _, name := range u.lookups {
		if name == "v0" {
			t.Errorf("looked up v0 for a nilable union")
		}
	}
}

func TestUnion_TagOutOfRange(t *testing.T) {
	f := newFixture(t, nil)
	u := f.b.Union("Shape", false, f.b.MustScalar("i32"), f.b.MustScalar("f32"))
	f.words(0x2000, 0, 5)
	v := f.value("u", u, 0x2000)

	got := f.ins.Text(v)
	if !strings.HasPrefix(got, "<error: ") || !strings.Contains(got, "no variant v5 for tag 5") {
		t.Errorf("Text = %q, want an invalid variant diagnostic", got)
	}

	c := f.ins.Children(v)
	if c.NumChildren() != 1 {
		t.Fatalf("NumChildren = %d, want 1", c.NumChildren())
	}
	child := c.ChildAt(0)
	invalid := &inspecterrors.Error{Phase: inspecterrors.PhaseDecode, Kind: inspecterrors.KindInvalidVariant}
	if child.Name() != "v5" || !errors.Is(child.Err(), invalid) {
		t.Errorf("child = %q, %v", child.Name(), child.Err())
	}
}

func TestUnion_UnreadableTag(t *testing.T) {
	f := newFixture(t, nil)
	u := f.b.Union("Shape", false, f.b.MustScalar("i32"))
	v := f.value("u", u, 0x2000)

	got := f.ins.Text(v)
	if !strings.Contains(got, "read_failed") {
		t.Errorf("Text = %q, want a read_failed diagnostic", got)
	}
}

// lookupRecorder records field lookups by name.
type lookupRecorder struct {
	odininspect.Type
	lookups []string
}

func (r *lookupRecorder) FieldByName(name string) (odininspect.Field, bool) {
	r.lookups = append(r.lookups, name)
	return r.Type.FieldByName(name)
}
