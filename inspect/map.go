package inspect

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/inspect/internal/cell"
)

const emptyMap = "map[0]{}"

// mapChildren exposes the live entries of a map as interleaved key and value
// children, followed by one "cap" child holding the capacity.
//
// The runtime offers no iteration, so the entry with ordinal k is found by
// scanning hash slots for the k-th live one. Enumerating every child is
// O(capacity * len).
type mapChildren struct {
	err       error
	target    Target
	keyType   Type
	valueType Type
	lenType   Type
	name      string
	header    cell.Header
	keys      cell.Layout
	values    cell.Layout
	length    int64
	valueBase uint64
	hashBase  uint64
}

func (ins *Inspector) mapChildren(v Value) *mapChildren {
	c := &mapChildren{target: ins.target, name: v.Name()}
	c.err = c.update(v)
	return c
}

func (c *mapChildren) update(v Value) error {
	path := []string{v.Name()}
	typeName := v.Type().Name()

	lenField, ok := v.Field("len")
	if !ok {
		return errors.FieldMissing(errors.PhaseDecode, path, typeName, "len")
	}
	dataField, ok := v.Field("data")
	if !ok {
		return errors.FieldMissing(errors.PhaseDecode, path, typeName, "data")
	}

	cells := dataField.Type()
	if cells.Class() == odininspect.ClassPointer && cells.Pointee() != nil {
		cells = cells.Pointee()
	}
	columns := make(map[string]Type, 5)
	for _, name := range []string{"key", "value", "hash", "key_cell", "value_cell"} {
		f, ok := cells.FieldByName(name)
		if !ok {
			return errors.FieldMissing(errors.PhaseDecode, append(path, "data"), typeName, name)
		}
		columns[name] = f.Type
	}
	if size := columns["hash"].Size(); size != cell.HashSize {
		return errors.New(errors.PhaseDecode, errors.KindLayoutMismatch).
			Path(v.Name(), "data", "hash").
			Type(typeName).
			Detail("hash is %d bytes, want %d", size, cell.HashSize).
			Build()
	}

	length, err := lenField.Signed(c.target)
	if err != nil {
		return err
	}
	// Two children per entry plus cap must fit an int.
	if length > (math.MaxInt-1)/2 {
		return errors.New(errors.PhaseDecode, errors.KindLayoutMismatch).
			Path(v.Name(), "len").
			Type(typeName).
			Detail("len %d exceeds the addressable entry count", length).
			Build()
	}
	word, err := dataField.Unsigned(c.target)
	if err != nil {
		return err
	}

	c.length = max(length, 0)
	c.lenType = lenField.Type()
	c.keyType = columns["key"]
	c.valueType = columns["value"]
	c.keys = cellLayout(c.keyType, columns["key_cell"])
	c.values = cellLayout(c.valueType, columns["value_cell"])
	c.header = cell.DecodeHeader(word)
	c.valueBase, c.hashBase = c.header.Regions(c.keys, c.values)
	return nil
}

// cellLayout derives the packing of elem into cellType. The element storage of
// a cell is its first member; trailing padding is not storage.
func cellLayout(elem, cellType Type) cell.Layout {
	var dataSize uint64
	if f, ok := cellType.FieldAt(0); ok {
		dataSize = f.Type.Size()
	}
	return cell.NewLayout(elem.Size(), cellType.Size(), dataSize)
}

// Length returns the live entry count read from the len field.
func (c *mapChildren) Length() int64 { return c.length }

// Capacity returns the slot count decoded from the header.
func (c *mapChildren) Capacity() uint64 { return c.header.Capacity }

func (c *mapChildren) HasChildren() bool { return c.NumChildren() > 0 }
func (c *mapChildren) children()         {}

func (c *mapChildren) NumChildren() int {
	if c.err != nil {
		return 0
	}
	return int(c.length)*2 + 1
}

func (c *mapChildren) ChildAt(i int) Value {
	n := c.NumChildren()
	checkIndex(i, n)

	if i == n-1 {
		return odininspect.NewUnsignedImmediate("cap", c.lenType, c.header.Capacity)
	}

	wantsKey := i%2 == 0
	ordinal := uint64(i / 2)

	slot, ok := c.resolve(ordinal)
	if !ok {
		Logger().Warn("map entry not found",
			zap.String("name", c.name),
			zap.Uint64("ordinal", ordinal),
			zap.Uint64("capacity", c.header.Capacity))
		return odininspect.Invalid(fmt.Sprintf("[%d]", ordinal),
			errors.New(errors.PhaseDecode, errors.KindNotFound).
				Path(c.name).
				Detail("no live slot for entry %d (capacity %d)", ordinal, c.header.Capacity).
				Build())
	}

	name := fmt.Sprintf("[%d]", slot)
	if wantsKey {
		return odininspect.NewValue(name, c.keyType, cell.Index(c.header.KeyBase, c.keys, slot))
	}
	return odininspect.NewValue(name, c.valueType, cell.Index(c.valueBase, c.values, slot))
}

// resolve returns the slot of the live entry with the given ordinal. Unreadable
// slots count as empty.
func (c *mapChildren) resolve(ordinal uint64) (uint64, bool) {
	var live uint64
	for slot := uint64(0); slot < c.header.Capacity; slot++ {
		addr := c.hashBase + slot*cell.HashSize
		hash, err := c.target.ReadUnsigned(addr, cell.HashSize)
		if err != nil {
			Logger().Debug("error reading hash slot",
				zap.String("name", c.name),
				zap.Uint64("slot", slot),
				zap.Uint64("addr", addr),
				zap.Error(err))
			continue
		}
		if cell.ClassifySlot(hash) != cell.SlotLive {
			continue
		}
		if live == ordinal {
			return slot, true
		}
		live++
	}
	return 0, false
}

func (ins *Inspector) mapSummary(v Value, depth int) string {
	c := ins.mapChildren(v)
	if c.err != nil {
		return diagnostic(c.err)
	}
	if c.length == 0 {
		return emptyMap
	}
	return Aggregate(fmt.Sprintf("map[%d]{", c.length), "}", func(i int) string {
		key := ins.text(c.ChildAt(i*2), depth+1)
		value := ins.text(c.ChildAt(i*2+1), depth+1)
		return key + " = " + value
	}, int(c.length), ins.cfg.SummaryMaxLen)
}
