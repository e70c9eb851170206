package inspect

import (
	"fmt"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
)

// sliceChildren exposes the elements of a slice or dynamic array. Slices longer
// than the chunk size are presented as sub-arrays of at most ChunkSize elements.
type sliceChildren struct {
	err     error
	target  Target
	elem    Type
	length  int64
	data    uint64
	chunk   int64
	chunked int64
}

func (ins *Inspector) sliceChildren(v Value) *sliceChildren {
	c := &sliceChildren{target: ins.target, chunk: int64(ins.cfg.ChunkSize)}
	c.err = c.update(v)
	return c
}

func (c *sliceChildren) update(v Value) error {
	lenField, ok := v.Field("len")
	if !ok {
		return errors.FieldMissing(errors.PhaseDecode, []string{v.Name()}, v.Type().Name(), "len")
	}
	dataField, ok := v.Field("data")
	if !ok {
		return errors.FieldMissing(errors.PhaseDecode, []string{v.Name()}, v.Type().Name(), "data")
	}
	if dataField.Type().Class() != odininspect.ClassPointer || dataField.Type().Pointee() == nil {
		return errors.LayoutMismatch(errors.PhaseDecode, v.Type().Name(), "data field is not a typed pointer")
	}

	length, err := lenField.Signed(c.target)
	if err != nil {
		return err
	}
	data, err := dataField.Unsigned(c.target)
	if err != nil {
		return err
	}

	c.length = max(length, 0)
	c.data = data
	c.elem = dataField.Type().Pointee()
	if c.length > c.chunk {
		c.chunked = (c.length + c.chunk - 1) / c.chunk
	}
	return nil
}

// Length returns the element count read from the len field.
func (c *sliceChildren) Length() int64 { return c.length }

func (c *sliceChildren) HasChildren() bool { return c.length > 0 }
func (c *sliceChildren) children()         {}

func (c *sliceChildren) NumChildren() int {
	if c.chunked > 0 {
		return int(c.chunked)
	}
	return int(c.length)
}

func (c *sliceChildren) ChildAt(i int) Value {
	checkIndex(i, c.NumChildren())
	idx := int64(i)
	size := c.elem.Size()

	if c.chunked > 0 {
		start := idx * c.chunk
		n := min(c.chunk, c.length-start)
		name := fmt.Sprintf("[%d..<%d]", start, start+n)
		addr := c.data + uint64(idx)*size*uint64(c.chunk)
		return odininspect.NewValue(name, c.target.ArrayOf(c.elem, uint64(n)), addr)
	}

	return odininspect.NewValue(fmt.Sprintf("[%d]", i), c.elem, c.data+uint64(idx)*size)
}

// element returns logical element i, walking through the chunk that holds it.
func (c *sliceChildren) element(ins *Inspector, i int) Value {
	if c.chunked == 0 {
		return c.ChildAt(i)
	}
	chunk := ins.arrayChildren(c.ChildAt(i / int(c.chunk)))
	return chunk.ChildAt(i % int(c.chunk))
}

func (ins *Inspector) sliceSummary(v Value, depth int) string {
	c := ins.sliceChildren(v)
	if c.err != nil {
		return diagnostic(c.err)
	}
	return Aggregate(fmt.Sprintf("[%d]{", c.length), "}", func(i int) string {
		return ins.text(c.element(ins, i), depth+1)
	}, int(c.length), ins.cfg.SummaryMaxLen)
}
