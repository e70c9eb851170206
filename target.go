package odininspect

// TypeClass is the structural kind the debugger reports for a type.
type TypeClass uint8

const (
	ClassOther TypeClass = iota
	ClassStruct
	ClassArray
	ClassUnion
	ClassFunction
	ClassPointer
)

var classNames = [...]string{
	ClassOther:    "other",
	ClassStruct:   "struct",
	ClassArray:    "array",
	ClassUnion:    "union",
	ClassFunction: "function",
	ClassPointer:  "pointer",
}

func (c TypeClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Encoding describes how the bytes of a scalar are interpreted.
type Encoding uint8

const (
	EncodingNone Encoding = iota
	EncodingSigned
	EncodingUnsigned
	EncodingFloat
	EncodingBool
	EncodingRune
)

// Field is a member of a struct or union type.
type Field struct {
	Type   Type
	Name   string
	Offset uint64
}

// Type is compile-time type metadata of the inspected program.
// Implementations must be immutable.
type Type interface {
	// Name is the display name as recorded in debug info, e.g. "[]int" or "main::Foo".
	Name() string
	Class() TypeClass
	// Size in bytes of values of this type.
	Size() uint64
	// Encoding is EncodingNone for non-scalar types.
	Encoding() Encoding

	NumFields() int
	FieldAt(i int) (Field, bool)
	FieldByName(name string) (Field, bool)

	// Pointee returns nil for untyped pointers and non-pointer types.
	Pointee() Type

	// Elem and Len describe fixed-size arrays.
	Elem() Type
	Len() uint64

	// Params, Result and Convention describe function signatures.
	// Result is nil when the function returns nothing.
	Params() []Type
	Result() Type
	Convention() string
}

// Memory is read-only access to the inspected process.
type Memory interface {
	ReadMemory(addr uint64, length uint64) ([]byte, error)
	// ReadUnsigned reads a little-endian unsigned integer of 1, 2, 4 or 8 bytes.
	ReadUnsigned(addr uint64, width int) (uint64, error)
}

// Target is everything the decoders need from the host debugger.
type Target interface {
	Memory
	// ArrayOf returns the fixed-size array type [count]elem.
	ArrayOf(elem Type, count uint64) Type
}

// IsUntypedPointee reports whether t stands for an opaque byte target such as
// the pointee of rawptr.
func IsUntypedPointee(t Type) bool {
	if t == nil {
		return true
	}
	switch t.Name() {
	case "void", "rawptr":
		return true
	}
	return false
}
