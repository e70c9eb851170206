package cell

const (
	// HashSize is the width of a hash slot in bytes.
	HashSize = 8

	capLog2Mask   = 63
	tombstoneMask = uint64(1) << (HashSize*8 - 1)
)

// Layout describes how one map column packs its elements into cells.
type Layout struct {
	SizeOfType      uint64
	SizeOfCell      uint64
	ElementsPerCell uint64
}

// NewLayout computes the packing of elements of elemSize bytes into cells of
// cellSize bytes. dataSize is the size of the cell's element storage without
// trailing padding, or 0 when the cell type does not expose it.
func NewLayout(elemSize, cellSize, dataSize uint64) Layout {
	var perCell uint64
	if elemSize != cellSize {
		if dataSize == 0 {
			dataSize = cellSize
		}
		if dataSize > 0 && elemSize > 0 {
			perCell = dataSize / elemSize
		}
	}
	if perCell == 0 {
		perCell = 1
	}
	return Layout{
		SizeOfType:      elemSize,
		SizeOfCell:      cellSize,
		ElementsPerCell: perCell,
	}
}

// Index returns the address of logical element i of a column starting at base.
func Index(base uint64, l Layout, i uint64) uint64 {
	var cellIdx, dataIdx uint64
	switch l.ElementsPerCell {
	case 1:
		return base + i*l.SizeOfCell
	case 2:
		cellIdx, dataIdx = i>>1, i&1
	case 4:
		cellIdx, dataIdx = i>>2, i&3
	case 8:
		cellIdx, dataIdx = i>>3, i&7
	case 16:
		cellIdx, dataIdx = i>>4, i&15
	case 32:
		cellIdx, dataIdx = i>>5, i&31
	default:
		cellIdx, dataIdx = i/l.ElementsPerCell, i%l.ElementsPerCell
	}
	return base + cellIdx*l.SizeOfCell + dataIdx*l.SizeOfType
}

// Header is the decoded data word of a map.
type Header struct {
	KeyBase  uint64
	CapLog2  uint64
	Capacity uint64
}

// DecodeHeader splits a map data word into key base and capacity.
// Capacity is always 0 or a power of two.
func DecodeHeader(word uint64) Header {
	h := Header{
		KeyBase: word &^ capLog2Mask,
		CapLog2: word & capLog2Mask,
	}
	if h.CapLog2 > 0 {
		h.Capacity = 1 << h.CapLog2
	}
	return h
}

// Regions returns the base addresses of the value cells and hash slots that
// follow the key cells of h.
func (h Header) Regions(keys, values Layout) (valueBase, hashBase uint64) {
	valueBase = Index(h.KeyBase, keys, h.Capacity)
	hashBase = Index(valueBase, values, h.Capacity)
	return valueBase, hashBase
}

// Slot is the state of one hash slot.
type Slot uint8

const (
	SlotEmpty Slot = iota
	SlotTombstone
	SlotLive
)

// ClassifySlot reports the state encoded in a hash slot value.
func ClassifySlot(hash uint64) Slot {
	switch {
	case hash == 0:
		return SlotEmpty
	case hash&tombstoneMask != 0:
		return SlotTombstone
	default:
		return SlotLive
	}
}
