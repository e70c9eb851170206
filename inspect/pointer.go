package inspect

import (
	"fmt"

	odininspect "github.com/wippyai/odin-inspect"
)

func (ins *Inspector) pointerSummary(v Value, depth int) string {
	addr, err := v.Unsigned(ins.target)
	if err != nil {
		return diagnostic(err)
	}
	if addr == 0 {
		return nilText
	}

	t := v.Type()
	pointee := t.Pointee()
	switch {
	case odininspect.IsUntypedPointee(pointee):
		return "rawptr(" + formatAddr(addr, t.Size()) + ")"
	case pointee.Class() == odininspect.ClassFunction:
		return ins.signature(pointee)
	}

	deref := odininspect.NewValue("*"+v.Name(), pointee, addr)
	if s, ok := ins.summary(deref, depth+1); ok {
		return "&" + s
	}
	if s, err := ins.scalar(deref); err == nil && s != "" {
		return "(" + DisplayType(t) + ")" + s
	}
	return DisplayType(t)
}

// formatAddr prints addr zero-padded to the width of a pointer of size bytes.
func formatAddr(addr, size uint64) string {
	if size == 0 || size > 8 {
		size = 8
	}
	return fmt.Sprintf("0x%0*x", int(size*2), addr)
}
