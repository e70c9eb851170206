package odininspect

import (
	"encoding/binary"

	"github.com/wippyai/odin-inspect/errors"
)

// Value is a typed view of target memory, or of an immediate byte buffer
// synthesized by a decoder. Values never write to the target.
type Value struct {
	typ  Type
	err  error
	name string
	data []byte
	addr uint64
}

// NewValue returns a value of type t located at addr.
func NewValue(name string, t Type, addr uint64) Value {
	return Value{name: name, typ: t, addr: addr}
}

// NewImmediate returns a value backed by data instead of target memory.
func NewImmediate(name string, t Type, data []byte) Value {
	return Value{name: name, typ: t, data: data}
}

// NewUnsignedImmediate encodes n little-endian in the size of t.
func NewUnsignedImmediate(name string, t Type, n uint64) Value {
	size := t.Size()
	if size == 0 || size > 8 {
		size = 8
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	return NewImmediate(name, t, buf[:size])
}

// Invalid returns a value that only carries a diagnostic.
func Invalid(name string, err error) Value {
	return Value{name: name, err: err}
}

func (v Value) Name() string      { return v.name }
func (v Value) Type() Type        { return v.typ }
func (v Value) Addr() uint64      { return v.addr }
func (v Value) Err() error        { return v.err }
func (v Value) IsImmediate() bool { return v.data != nil }

// IsValid reports whether v has a type and no diagnostic.
func (v Value) IsValid() bool {
	return v.err == nil && v.typ != nil
}

// WithName returns a copy of v renamed to name.
func (v Value) WithName(name string) Value {
	v.name = name
	return v
}

// Child materializes a view of type t at offset bytes into v without copying.
func (v Value) Child(name string, offset uint64, t Type) Value {
	if v.err != nil {
		return Invalid(name, v.err)
	}
	if v.data != nil {
		end := offset + t.Size()
		if end > uint64(len(v.data)) || end < offset {
			return Invalid(name, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Path(v.name, name).
				Detail("offset %d size %d exceeds immediate of %d bytes", offset, t.Size(), len(v.data)).
				Build())
		}
		return NewImmediate(name, t, v.data[offset:end])
	}
	return NewValue(name, t, v.addr+offset)
}

// FieldAt returns the i-th member of a struct or union value.
func (v Value) FieldAt(i int) (Value, bool) {
	if v.typ == nil {
		return Value{}, false
	}
	f, ok := v.typ.FieldAt(i)
	if !ok {
		return Value{}, false
	}
	return v.Child(f.Name, f.Offset, f.Type), true
}

// Field returns the member called name.
func (v Value) Field(name string) (Value, bool) {
	if v.typ == nil {
		return Value{}, false
	}
	f, ok := v.typ.FieldByName(name)
	if !ok {
		return Value{}, false
	}
	return v.Child(f.Name, f.Offset, f.Type), true
}

// Bytes returns the raw bytes of v.
func (v Value) Bytes(mem Memory) ([]byte, error) {
	if v.err != nil {
		return nil, v.err
	}
	if v.data != nil {
		return v.data, nil
	}
	return mem.ReadMemory(v.addr, v.typ.Size())
}

// Unsigned interprets v as a little-endian unsigned integer.
func (v Value) Unsigned(mem Memory) (uint64, error) {
	if v.err != nil {
		return 0, v.err
	}
	width := int(v.typ.Size())
	if width < 1 || width > 8 {
		return 0, errors.New(errors.PhaseDecode, errors.KindLayoutMismatch).
			Path(v.name).
			Type(v.typ.Name()).
			Detail("%d bytes is not an integer width", width).
			Build()
	}
	if v.data == nil {
		return mem.ReadUnsigned(v.addr, width)
	}
	var buf [8]byte
	copy(buf[:], v.data[:width])
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Signed interprets v as a little-endian two's complement integer.
func (v Value) Signed(mem Memory) (int64, error) {
	u, err := v.Unsigned(mem)
	if err != nil {
		return 0, err
	}
	shift := 64 - 8*uint(v.typ.Size())
	return int64(u<<shift) >> shift, nil
}
