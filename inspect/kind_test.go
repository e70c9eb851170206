package inspect

import (
	"testing"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/types"
)

func TestClassify(t *testing.T) {
	b := types.NewBuilder(types.AMD64)
	i32 := b.MustScalar("i32")
	point := types.Struct("main::Point", types.M("x", i32), types.M("y", i32))

	tests := []struct {
		name string
		typ  odininspect.Type
		want Kind
	}{
		{"nil", nil, KindOther},
		{"string", b.String(), KindString},
		{"slice", b.Slice(i32), KindSlice},
		{"dynamic array", b.DynamicArray(point), KindSlice},
		{"fixed array", types.Array(i32, 4), KindArray},
		{"slice of arrays", b.Slice(types.Array(i32, 2)), KindSlice},
		{"slice-like name ending in bracket", &fakeType{name: "[]matrix[2]", class: odininspect.ClassStruct}, KindStruct},
		{"map", b.Map(i32, i32), KindMap},
		{"procedure", b.ProcPointer("c", nil, i32), KindProcedure},
		{"union", b.Union("Shape", false, i32, point), KindUnion},
		{"union without tag", &fakeType{name: "raw_union", class: odininspect.ClassUnion}, KindOther},
		{"struct", point, KindStruct},
		{"pointer", b.Pointer(point), KindPointer},
		{"rawptr", b.RawPtr(), KindPointer},
		{"scalar", i32, KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.typ); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindMap.String(); got != "map" {
		t.Errorf("KindMap.String() = %q", got)
	}
	if got := Kind(200).String(); got != "unknown" {
		t.Errorf("Kind(200).String() = %q", got)
	}
}
