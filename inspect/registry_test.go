package inspect

import (
	"testing"

	odininspect "github.com/wippyai/odin-inspect"
)

func TestRegistry_Lookup(t *testing.T) {
	f := newFixture(t, nil)
	r := NewRegistry(f.ins)
	integer := f.b.MustScalar("int")

	tests := []struct {
		name        string
		typ         odininspect.Type
		kind        Kind
		found       bool
		hasChildren bool
	}{
		{"string", f.b.String(), KindString, true, false},
		{"slice", f.b.Slice(integer), KindSlice, true, true},
		{"map", f.b.Map(integer, integer), KindMap, true, true},
		{"union", f.b.Union("U", true, integer), KindUnion, true, true},
		{"pointer", f.b.Pointer(integer), KindPointer, true, false},
		{"proc", f.b.ProcPointer("c", nil), KindProcedure, true, false},
		{"scalar", integer, KindOther, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := r.Lookup(tt.typ)
			if ok != tt.found {
				t.Fatalf("Lookup found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", e.Kind, tt.kind)
			}
			if !e.Recognize(tt.typ) {
				t.Error("entry does not recognize its own type")
			}
			if (e.Children != nil) != tt.hasChildren {
				t.Errorf("Children set = %v, want %v", e.Children != nil, tt.hasChildren)
			}
		})
	}
}

func TestRegistry_Render(t *testing.T) {
	f := newFixture(t, nil)
	f.words(0x1000, 1, 2)
	f.words(0x2000, 0x1000, 2)
	v := f.value("xs", f.b.Slice(f.b.MustScalar("int")), 0x2000)

	e, ok := NewRegistry(f.ins).Lookup(v.Type())
	if !ok {
		t.Fatal("no entry for slice")
	}
	if got := e.Summary(v); got != "[2]{1, 2}" {
		t.Errorf("Summary = %q", got)
	}
	if got := e.Children(v).NumChildren(); got != 2 {
		t.Errorf("NumChildren = %d, want 2", got)
	}
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	r := NewRegistry(New(nil, nil))
	entries := r.Entries()
	if len(entries) != 8 {
		t.Fatalf("len(Entries) = %d, want 8", len(entries))
	}
	entries[0].Kind = KindOther
	if r.Entries()[0].Kind == KindOther {
		t.Error("Entries exposed internal state")
	}
}
