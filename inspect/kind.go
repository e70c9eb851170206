package inspect

import (
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
)

// Kind is the semantic kind of an Odin type.
type Kind uint8

const (
	KindOther Kind = iota
	KindStruct
	KindSlice
	KindString
	KindMap
	KindUnion
	KindArray
	KindPointer
	KindProcedure
)

var kindNames = [...]string{
	KindOther:     "other",
	KindStruct:    "struct",
	KindSlice:     "slice",
	KindString:    "string",
	KindMap:       "map",
	KindUnion:     "union",
	KindArray:     "array",
	KindPointer:   "pointer",
	KindProcedure: "procedure",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Classify maps a type to its semantic kind. Slices, strings and maps are
// structs in debug info, so name rules are checked before structural ones.
func Classify(t odininspect.Type) Kind {
	if t == nil {
		return KindOther
	}
	name := t.Name()
	switch {
	case name == "string":
		return KindString
	case (strings.HasPrefix(name, "[]") || strings.HasPrefix(name, "[dynamic]")) && !strings.HasSuffix(name, "]"):
		return KindSlice
	case strings.HasPrefix(name, "map["):
		return KindMap
	case strings.HasPrefix(name, "proc"):
		return KindProcedure
	}

	switch t.Class() {
	case odininspect.ClassArray:
		return KindArray
	case odininspect.ClassUnion:
		if tag, ok := t.FieldAt(0); ok && tag.Name == "tag" {
			return KindUnion
		}
	case odininspect.ClassStruct:
		return KindStruct
	case odininspect.ClassPointer:
		return KindPointer
	}
	return KindOther
}
