package memory

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/odin-inspect/errors"
)

// Wasm adapts wazero api.Memory to odininspect.Memory.
type Wasm struct {
	Mem api.Memory
}

// Wrap wraps the linear memory of a wazero module.
func Wrap(mem api.Memory) *Wasm {
	if mem == nil {
		return nil
	}
	return &Wasm{Mem: mem}
}

// ReadMemory copies length bytes at addr out of linear memory.
func (w *Wasm) ReadMemory(addr, length uint64) ([]byte, error) {
	if addr > math.MaxUint32 || length > math.MaxUint32 {
		return nil, errors.ReadFailed(errors.PhaseRead, addr, length, nil)
	}
	data, ok := w.Mem.Read(uint32(addr), uint32(length))
	if !ok {
		return nil, errors.ReadFailed(errors.PhaseRead, addr, length, nil)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadUnsigned reads a little-endian unsigned integer of width bytes.
func (w *Wasm) ReadUnsigned(addr uint64, width int) (uint64, error) {
	if addr > math.MaxUint32 {
		return 0, errors.ReadFailed(errors.PhaseRead, addr, uint64(width), nil)
	}
	offset := uint32(addr)

	var (
		v  uint64
		ok bool
	)
	switch width {
	case 1:
		var b byte
		b, ok = w.Mem.ReadByte(offset)
		v = uint64(b)
	case 2:
		var u uint16
		u, ok = w.Mem.ReadUint16Le(offset)
		v = uint64(u)
	case 4:
		var u uint32
		u, ok = w.Mem.ReadUint32Le(offset)
		v = uint64(u)
	case 8:
		v, ok = w.Mem.ReadUint64Le(offset)
	default:
		return 0, errors.InvalidInput(errors.PhaseRead, "unsupported integer width")
	}
	if !ok {
		return 0, errors.ReadFailed(errors.PhaseRead, addr, uint64(width), nil)
	}
	return v, nil
}

// Size returns the current size of linear memory in bytes.
func (w *Wasm) Size() uint32 {
	return w.Mem.Size()
}
