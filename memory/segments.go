package memory

import (
	"encoding/binary"
	"sort"

	"github.com/wippyai/odin-inspect/errors"
)

// Segment is a mapped byte range.
type Segment struct {
	Data []byte
	Addr uint64
}

// End returns the first address past the segment.
func (s Segment) End() uint64 {
	return s.Addr + uint64(len(s.Data))
}

// Segments is a sparse, little-endian process image.
type Segments struct {
	segs []Segment
}

// NewSegments returns an empty image.
func NewSegments() *Segments {
	return &Segments{}
}

// Map adds a segment. Overlapping an existing segment is an error.
func (s *Segments) Map(addr uint64, data []byte) error {
	seg := Segment{Addr: addr, Data: data}
	if seg.End() < addr {
		return errors.InvalidInput(errors.PhaseLoad, "segment wraps the address space")
	}
	i := sort.Search(len(s.segs), func(i int) bool { return s.segs[i].Addr >= addr })
	if i > 0 && s.segs[i-1].End() > addr {
		return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Detail("segment at 0x%x overlaps segment at 0x%x", addr, s.segs[i-1].Addr).
			Build()
	}
	if i < len(s.segs) && seg.End() > s.segs[i].Addr {
		return errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Detail("segment at 0x%x overlaps segment at 0x%x", addr, s.segs[i].Addr).
			Build()
	}
	s.segs = append(s.segs, Segment{})
	copy(s.segs[i+1:], s.segs[i:])
	s.segs[i] = seg
	return nil
}

// Alloc maps size zeroed bytes at addr and returns them for filling in.
func (s *Segments) Alloc(addr, size uint64) ([]byte, error) {
	data := make([]byte, size)
	if err := s.Map(addr, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Segments returns the mapped ranges in address order.
func (s *Segments) Segments() []Segment {
	return s.segs
}

func (s *Segments) find(addr, length uint64) ([]byte, bool) {
	i := sort.Search(len(s.segs), func(i int) bool { return s.segs[i].End() > addr })
	if i == len(s.segs) {
		return nil, false
	}
	seg := s.segs[i]
	end := addr + length
	if addr < seg.Addr || end < addr || end > seg.End() {
		return nil, false
	}
	return seg.Data[addr-seg.Addr : end-seg.Addr], true
}

// ReadMemory returns a copy of length bytes at addr.
func (s *Segments) ReadMemory(addr, length uint64) ([]byte, error) {
	data, ok := s.find(addr, length)
	if !ok {
		return nil, errors.ReadFailed(errors.PhaseRead, addr, length, nil)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// ReadUnsigned reads a little-endian unsigned integer.
func (s *Segments) ReadUnsigned(addr uint64, width int) (uint64, error) {
	if !validWidth(width) {
		return 0, errors.InvalidInput(errors.PhaseRead, "unsupported integer width")
	}
	data, ok := s.find(addr, uint64(width))
	if !ok {
		return 0, errors.ReadFailed(errors.PhaseRead, addr, uint64(width), nil)
	}
	return decodeUnsigned(data), nil
}

// Write copies data into mapped memory at addr.
func (s *Segments) Write(addr uint64, data []byte) error {
	dst, ok := s.find(addr, uint64(len(data)))
	if !ok {
		return errors.New(errors.PhaseLoad, errors.KindOutOfBounds).
			Detail("write %d bytes at 0x%x outside mapped memory", len(data), addr).
			Build()
	}
	copy(dst, data)
	return nil
}

// PutUnsigned writes v little-endian in width bytes at addr.
func (s *Segments) PutUnsigned(addr uint64, width int, v uint64) error {
	if !validWidth(width) {
		return errors.InvalidInput(errors.PhaseLoad, "unsupported integer width")
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return s.Write(addr, buf[:width])
}

func validWidth(width int) bool {
	switch width {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

func decodeUnsigned(data []byte) uint64 {
	var buf [8]byte
	copy(buf[:], data)
	return binary.LittleEndian.Uint64(buf[:])
}
