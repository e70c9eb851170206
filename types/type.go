package types

import (
	"strconv"
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
)

// Type is an immutable odininspect.Type.
type Type struct {
	pointee    odininspect.Type
	elem       odininspect.Type
	result     odininspect.Type
	name       string
	convention string
	fields     []odininspect.Field
	params     []odininspect.Type
	size       uint64
	align      uint64
	length     uint64
	class      odininspect.TypeClass
	encoding   odininspect.Encoding
}

var _ odininspect.Type = (*Type)(nil)

func (t *Type) Name() string                   { return t.name }
func (t *Type) Class() odininspect.TypeClass   { return t.class }
func (t *Type) Size() uint64                   { return t.size }
func (t *Type) Align() uint64                  { return t.align }
func (t *Type) Encoding() odininspect.Encoding { return t.encoding }
func (t *Type) NumFields() int                 { return len(t.fields) }
func (t *Type) Pointee() odininspect.Type      { return t.pointee }
func (t *Type) Elem() odininspect.Type         { return t.elem }
func (t *Type) Len() uint64                    { return t.length }
func (t *Type) Params() []odininspect.Type     { return t.params }
func (t *Type) Result() odininspect.Type       { return t.result }
func (t *Type) Convention() string             { return t.convention }
func (t *Type) String() string                 { return t.name }

func (t *Type) FieldAt(i int) (odininspect.Field, bool) {
	if i < 0 || i >= len(t.fields) {
		return odininspect.Field{}, false
	}
	return t.fields[i], true
}

func (t *Type) FieldByName(name string) (odininspect.Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return odininspect.Field{}, false
}

// Scalar returns a scalar type of size bytes, aligned to its size.
func Scalar(name string, size uint64, enc odininspect.Encoding) *Type {
	return &Type{name: name, size: size, align: max(size, 1), encoding: enc}
}

// Named returns a copy of t with another display name.
func Named(name string, t *Type) *Type {
	c := *t
	c.name = name
	return &c
}

// Member is a field whose offset is computed by Struct.
type Member struct {
	Type *Type
	Name string
}

// M is shorthand for a Member.
func M(name string, t *Type) Member {
	return Member{Name: name, Type: t}
}

// Struct lays out members in order with natural alignment.
func Struct(name string, members ...Member) *Type {
	t := &Type{name: name, class: odininspect.ClassStruct, align: 1}
	var offset uint64
	for _, m := range members {
		offset = alignTo(offset, m.Type.align)
		t.fields = append(t.fields, odininspect.Field{Name: m.Name, Offset: offset, Type: m.Type})
		offset += m.Type.size
		t.align = max(t.align, m.Type.align)
	}
	t.size = alignTo(offset, t.align)
	return t
}

// StructAt returns a struct with explicit field offsets and size.
func StructAt(name string, size, align uint64, fields ...odininspect.Field) *Type {
	return &Type{
		name:   name,
		class:  odininspect.ClassStruct,
		size:   size,
		align:  max(align, 1),
		fields: fields,
	}
}

// Array returns the fixed-size array type [n]elem.
func Array(elem *Type, n uint64) *Type {
	return &Type{
		name:   "[" + strconv.FormatUint(n, 10) + "]" + elem.name,
		class:  odininspect.ClassArray,
		elem:   elem,
		length: n,
		size:   elem.size * n,
		align:  elem.align,
	}
}

// Void is the pointee of untyped pointers.
var Void = &Type{name: "void", align: 1}

// Proc returns a procedure signature type. A nil result means no return value.
func Proc(convention string, result *Type, params ...*Type) *Type {
	t := &Type{class: odininspect.ClassFunction, convention: convention, align: 1}
	names := make([]string, len(params))
	for i, p := range params {
		t.params = append(t.params, p)
		names[i] = p.name
	}
	var b strings.Builder
	b.WriteString("proc")
	if convention != "" {
		b.WriteString(` "` + convention + `"`)
	}
	b.WriteString(" (" + strings.Join(names, ", ") + ")")
	if result != nil {
		t.result = result
		b.WriteString(" -> " + result.name)
	}
	t.name = b.String()
	return t
}

func alignTo(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
