package inspect

import (
	"fmt"
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
)

type (
	Value  = odininspect.Value
	Type   = odininspect.Type
	Target = odininspect.Target
)

// Inspector renders values of one target. It holds no per-request state and may
// be used for nested and interleaved requests.
type Inspector struct {
	target Target
	cfg    Config
}

// New creates an Inspector for target. A nil cfg selects DefaultConfig.
func New(target Target, cfg *Config) *Inspector {
	c := DefaultConfig()
	if cfg != nil {
		c = cfg.withDefaults()
	}
	return &Inspector{target: target, cfg: c}
}

// Config returns the effective configuration.
func (ins *Inspector) Config() Config {
	return ins.cfg
}

// Target returns the inspected target.
func (ins *Inspector) Target() Target {
	return ins.target
}

// Text renders v the way a debugger shows it next to its name: the kind
// summary when there is one, else the scalar value.
func (ins *Inspector) Text(v Value) string {
	return ins.text(v, 0)
}

// Summary renders the kind summary of v. It reports false for kinds that have
// no summary, such as scalars.
func (ins *Inspector) Summary(v Value) (string, bool) {
	return ins.summary(v, 0)
}

func (ins *Inspector) text(v Value, depth int) string {
	if s, ok := ins.summary(v, depth); ok {
		return s
	}
	s, err := ins.scalar(v)
	if err != nil {
		return "<error reading value>"
	}
	if s == "" {
		return "<no value>"
	}
	return s
}

func (ins *Inspector) summary(v Value, depth int) (string, bool) {
	if err := v.Err(); err != nil {
		return diagnostic(err), true
	}
	if v.Type() == nil {
		return "<invalid value>", true
	}

	kind := Classify(v.Type())
	if kind == KindOther {
		return "", false
	}
	if depth > ins.cfg.MaxDepth {
		return truncated, true
	}

	switch kind {
	case KindString:
		return ins.stringSummary(v, depth), true
	case KindSlice:
		return ins.sliceSummary(v, depth), true
	case KindMap:
		return ins.mapSummary(v, depth), true
	case KindUnion:
		return ins.unionSummary(v, depth), true
	case KindArray:
		return ins.arraySummary(v, depth), true
	case KindStruct:
		return ins.structSummary(v, depth), true
	case KindPointer:
		return ins.pointerSummary(v, depth), true
	case KindProcedure:
		return ins.procSummary(v), true
	}
	return "", false
}

// Children returns the child provider of v, chosen by its kind.
func (ins *Inspector) Children(v Value) Children {
	if !v.IsValid() {
		return noChildren{}
	}
	switch Classify(v.Type()) {
	case KindSlice:
		return ins.sliceChildren(v)
	case KindMap:
		return ins.mapChildren(v)
	case KindUnion:
		return ins.unionChildren(v)
	case KindArray:
		return ins.arrayChildren(v)
	case KindStruct, KindString:
		return ins.structChildren(v)
	case KindPointer:
		return ins.pointerChildren(v)
	}
	return noChildren{}
}

// Describe lists the children of v, one "[i] name = text" line each.
func (ins *Inspector) Describe(v Value) string {
	c := ins.Children(v)
	n := c.NumChildren()
	if n == 0 {
		return "  No children"
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		child := c.ChildAt(i)
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%d] %s = %s", i, child.Name(), ins.Text(child))
	}
	return b.String()
}

// DisplayType renders a type name in Odin syntax.
func DisplayType(t Type) string {
	if t == nil {
		return "<invalid type>"
	}
	if t.Class() == odininspect.ClassPointer {
		pointee := t.Pointee()
		switch {
		case pointee == nil:
			return normalizeName(t.Name())
		case odininspect.IsUntypedPointee(pointee):
			return "rawptr"
		case pointee.Class() == odininspect.ClassFunction:
			return normalizeName(pointee.Name())
		}
		return "^" + DisplayType(pointee)
	}
	return normalizeName(t.Name())
}

func normalizeName(name string) string {
	return strings.ReplaceAll(name, "::", ".")
}

func diagnostic(err error) string {
	return "<error: " + err.Error() + ">"
}

func childPath(v Value, name string) []string {
	if v.Name() == "" {
		return []string{name}
	}
	return []string{v.Name(), name}
}
