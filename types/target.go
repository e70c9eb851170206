package types

import (
	"strconv"

	odininspect "github.com/wippyai/odin-inspect"
)

type target struct {
	odininspect.Memory
}

// NewTarget pairs mem with array types built by this package.
func NewTarget(mem odininspect.Memory) odininspect.Target {
	return target{Memory: mem}
}

func (target) ArrayOf(elem odininspect.Type, count uint64) odininspect.Type {
	if t, ok := elem.(*Type); ok {
		return Array(t, count)
	}
	return &Type{
		name:   "[" + strconv.FormatUint(count, 10) + "]" + elem.Name(),
		class:  odininspect.ClassArray,
		elem:   elem,
		length: count,
		size:   elem.Size() * count,
		align:  1,
	}
}
