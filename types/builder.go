package types

import (
	"strconv"
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
)

// cacheLineSize is the alignment of map cells.
const cacheLineSize = 64

// Arch describes the target's word sizes.
type Arch struct {
	PtrSize uint64
	IntSize uint64
}

var (
	AMD64     = Arch{PtrSize: 8, IntSize: 8}
	ARM64     = Arch{PtrSize: 8, IntSize: 8}
	Wasm32    = Arch{PtrSize: 4, IntSize: 4}
	Wasm64P32 = Arch{PtrSize: 4, IntSize: 8}
)

// Builder creates Odin types for one architecture.
type Builder struct {
	scalars map[string]*Type
	arch    Arch
}

// NewBuilder returns a builder with the built-in scalars of arch.
func NewBuilder(arch Arch) *Builder {
	b := &Builder{arch: arch, scalars: make(map[string]*Type)}
	for _, s := range []*Type{
		Scalar("i8", 1, odininspect.EncodingSigned),
		Scalar("i16", 2, odininspect.EncodingSigned),
		Scalar("i32", 4, odininspect.EncodingSigned),
		Scalar("i64", 8, odininspect.EncodingSigned),
		Scalar("int", arch.IntSize, odininspect.EncodingSigned),
		Scalar("u8", 1, odininspect.EncodingUnsigned),
		Scalar("u16", 2, odininspect.EncodingUnsigned),
		Scalar("u32", 4, odininspect.EncodingUnsigned),
		Scalar("u64", 8, odininspect.EncodingUnsigned),
		Scalar("uint", arch.IntSize, odininspect.EncodingUnsigned),
		Scalar("uintptr", arch.PtrSize, odininspect.EncodingUnsigned),
		Scalar("byte", 1, odininspect.EncodingUnsigned),
		Scalar("f32", 4, odininspect.EncodingFloat),
		Scalar("f64", 8, odininspect.EncodingFloat),
		Scalar("bool", 1, odininspect.EncodingBool),
		Scalar("b8", 1, odininspect.EncodingBool),
		Scalar("b32", 4, odininspect.EncodingBool),
		Scalar("rune", 4, odininspect.EncodingRune),
	} {
		b.scalars[s.name] = s
	}
	return b
}

// Arch returns the architecture the builder lays types out for.
func (b *Builder) Arch() Arch {
	return b.arch
}

// Scalar returns a built-in scalar type by name.
func (b *Builder) Scalar(name string) (*Type, bool) {
	t, ok := b.scalars[name]
	return t, ok
}

// MustScalar is like Scalar but panics on unknown names.
func (b *Builder) MustScalar(name string) *Type {
	t, ok := b.scalars[name]
	if !ok {
		panic("types: unknown scalar " + name)
	}
	return t
}

// Pointer returns ^pointee. A nil pointee yields rawptr.
func (b *Builder) Pointer(pointee *Type) *Type {
	if pointee == nil {
		return b.RawPtr()
	}
	return &Type{
		name:    "^" + pointee.name,
		class:   odininspect.ClassPointer,
		pointee: pointee,
		size:    b.arch.PtrSize,
		align:   b.arch.PtrSize,
	}
}

// MultiPointer returns [^]elem, the data pointer of slices and strings.
func (b *Builder) MultiPointer(elem *Type) *Type {
	p := b.Pointer(elem)
	p.name = "[^]" + elem.name
	return p
}

// RawPtr returns the untyped pointer type.
func (b *Builder) RawPtr() *Type {
	return &Type{
		name:    "rawptr",
		class:   odininspect.ClassPointer,
		pointee: Void,
		size:    b.arch.PtrSize,
		align:   b.arch.PtrSize,
	}
}

// ProcPointer returns a procedure value type, a pointer to its signature.
func (b *Builder) ProcPointer(convention string, result *Type, params ...*Type) *Type {
	sig := Proc(convention, result, params...)
	p := b.Pointer(sig)
	p.name = sig.name
	return p
}

// String returns the layout of Odin's string.
func (b *Builder) String() *Type {
	return Struct("string",
		M("data", b.MultiPointer(b.MustScalar("u8"))),
		M("len", b.MustScalar("int")),
	)
}

// Slice returns the layout of []elem.
func (b *Builder) Slice(elem *Type) *Type {
	return Struct("[]"+elem.name,
		M("data", b.MultiPointer(elem)),
		M("len", b.MustScalar("int")),
	)
}

// DynamicArray returns the layout of [dynamic]elem.
func (b *Builder) DynamicArray(elem *Type) *Type {
	return Struct("[dynamic]"+elem.name,
		M("data", b.MultiPointer(elem)),
		M("len", b.MustScalar("int")),
		M("cap", b.MustScalar("int")),
		M("allocator", b.Allocator()),
	)
}

// Allocator returns runtime.Allocator.
func (b *Builder) Allocator() *Type {
	return Struct("runtime::Allocator",
		M("procedure", b.RawPtr()),
		M("data", b.RawPtr()),
	)
}

// MapCell returns the cache-line cell the runtime packs elements of elem into.
func (b *Builder) MapCell(elem *Type) *Type {
	n := uint64(1)
	if elem.size > 0 && elem.size <= cacheLineSize {
		n = cacheLineSize / elem.size
	}
	data := Array(elem, n)
	cell := Struct("runtime::Map_Cell("+elem.name+")", M("data", data))
	cell.align = max(cell.align, cacheLineSize)
	cell.size = alignTo(data.size, cell.align)
	return cell
}

// Map returns the layout of map[key]value.
func (b *Builder) Map(key, value *Type) *Type {
	word := b.MustScalar("uintptr")
	hash := Named("runtime::Map_Hash", word)
	cells := StructAt("runtime::Raw_Map_Cells", 0, 1,
		odininspect.Field{Name: "key", Type: key},
		odininspect.Field{Name: "value", Type: value},
		odininspect.Field{Name: "hash", Type: hash},
		odininspect.Field{Name: "key_cell", Type: b.MapCell(key)},
		odininspect.Field{Name: "value_cell", Type: b.MapCell(value)},
	)
	data := b.Pointer(cells)
	return Struct("map["+key.name+"]"+value.name,
		M("data", data),
		M("len", word),
		M("allocator", b.Allocator()),
	)
}

// Union returns a tagged union. Nilable unions number their variants from v1 and
// reserve tag 0 for nil, no-nil unions number them from v0.
func (b *Builder) Union(name string, nilable bool, variants ...*Type) *Type {
	var payload, align uint64 = 0, 8
	for _, v := range variants {
		payload = max(payload, v.size)
		align = max(align, v.align)
	}
	tagOffset := alignTo(payload, 8)
	t := &Type{
		name:  name,
		class: odininspect.ClassUnion,
		align: align,
		size:  alignTo(tagOffset+8, align),
	}
	t.fields = append(t.fields, odininspect.Field{Name: "tag", Offset: tagOffset, Type: b.MustScalar("u64")})
	first := 0
	if nilable {
		first = 1
	}
	for i, v := range variants {
		t.fields = append(t.fields, odininspect.Field{Name: variantName(first + i), Type: v})
	}
	if name == "" {
		names := make([]string, len(variants))
		for i, v := range variants {
			names[i] = v.name
		}
		t.name = "union{" + strings.Join(names, ", ") + "}"
	}
	return t
}

func variantName(i int) string {
	return "v" + strconv.Itoa(i)
}
