package inspect

import (
	"fmt"

	odininspect "github.com/wippyai/odin-inspect"
)

// Children is a synthetic child list. Providers are built per request and
// compute their layout once, when created.
type Children interface {
	HasChildren() bool
	NumChildren() int
	// ChildAt panics when i is outside [0, NumChildren()).
	ChildAt(i int) Value

	children()
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("inspect: child index %d out of range [0, %d)", i, n))
	}
}

type noChildren struct{}

func (noChildren) HasChildren() bool { return false }
func (noChildren) NumChildren() int  { return 0 }
func (noChildren) ChildAt(i int) Value {
	checkIndex(i, 0)
	return Value{}
}
func (noChildren) children() {}

// structChildren exposes the raw members of a struct.
type structChildren struct {
	v Value
}

func (ins *Inspector) structChildren(v Value) *structChildren {
	return &structChildren{v: v}
}

func (c *structChildren) HasChildren() bool { return c.NumChildren() > 0 }
func (c *structChildren) NumChildren() int  { return c.v.Type().NumFields() }
func (c *structChildren) children()         {}

func (c *structChildren) ChildAt(i int) Value {
	checkIndex(i, c.NumChildren())
	f, _ := c.v.FieldAt(i)
	return f
}

func (ins *Inspector) structSummary(v Value, depth int) string {
	c := ins.structChildren(v)
	return Aggregate("{", "}", func(i int) string {
		return ins.text(c.ChildAt(i), depth+1)
	}, c.NumChildren(), ins.cfg.SummaryMaxLen)
}

// arrayChildren exposes the elements of a fixed-size array. Arrays are never
// chunked.
type arrayChildren struct {
	v    Value
	elem Type
	n    int
}

func (ins *Inspector) arrayChildren(v Value) *arrayChildren {
	c := &arrayChildren{v: v, elem: v.Type().Elem()}
	if c.elem != nil {
		c.n = int(v.Type().Len())
	}
	return c
}

func (c *arrayChildren) HasChildren() bool { return c.n > 0 }
func (c *arrayChildren) NumChildren() int  { return c.n }
func (c *arrayChildren) children()         {}

func (c *arrayChildren) ChildAt(i int) Value {
	checkIndex(i, c.n)
	return c.v.Child(fmt.Sprintf("[%d]", i), uint64(i)*c.elem.Size(), c.elem)
}

func (ins *Inspector) arraySummary(v Value, depth int) string {
	c := ins.arrayChildren(v)
	return Aggregate(fmt.Sprintf("[%d]{", c.n), "}", func(i int) string {
		return ins.text(c.ChildAt(i), depth+1)
	}, c.n, ins.cfg.SummaryMaxLen)
}

// pointerChildren exposes the pointee of a typed, non-nil pointer.
type pointerChildren struct {
	pointee Value
	ok      bool
}

func (ins *Inspector) pointerChildren(v Value) *pointerChildren {
	c := &pointerChildren{}
	pointee := v.Type().Pointee()
	if odininspect.IsUntypedPointee(pointee) || pointee.Class() == odininspect.ClassFunction {
		return c
	}
	addr, err := v.Unsigned(ins.target)
	if err != nil || addr == 0 {
		return c
	}
	c.pointee = odininspect.NewValue("*"+v.Name(), pointee, addr)
	c.ok = true
	return c
}

func (c *pointerChildren) HasChildren() bool { return c.ok }
func (c *pointerChildren) children()         {}

func (c *pointerChildren) NumChildren() int {
	if c.ok {
		return 1
	}
	return 0
}

func (c *pointerChildren) ChildAt(i int) Value {
	checkIndex(i, c.NumChildren())
	return c.pointee
}
