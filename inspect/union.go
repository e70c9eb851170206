package inspect

import (
	"fmt"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
)

const nilText = "nil"

// unionVariant resolves the active member of a tagged union. It reports false
// when a nilable union holds no value. A tag with no matching member yields an
// invalid Value carrying the diagnostic.
func (ins *Inspector) unionVariant(v Value) (Value, bool) {
	typeName := v.Type().Name()

	tag, ok := v.FieldAt(0)
	if !ok || tag.Name() != "tag" {
		return Value{}, false
	}
	n, err := tag.Unsigned(ins.target)
	if err != nil {
		return odininspect.Invalid(v.Name(), err), true
	}

	noNil := false
	if second, ok := v.FieldAt(1); ok && second.Name() == "v0" {
		noNil = true
	}
	if !noNil && n == 0 {
		return Value{}, false
	}

	name := fmt.Sprintf("v%d", n)
	variant, ok := v.Field(name)
	if !ok {
		return odininspect.Invalid(name, errors.InvalidVariant(childPath(v, "tag"), typeName, n)), true
	}
	return variant, true
}

func (ins *Inspector) unionSummary(v Value, depth int) string {
	if _, ok := v.FieldAt(0); !ok {
		return diagnostic(errors.FieldMissing(errors.PhaseDecode, []string{v.Name()}, v.Type().Name(), "tag"))
	}
	variant, ok := ins.unionVariant(v)
	if !ok {
		return nilText
	}
	if err := variant.Err(); err != nil {
		return diagnostic(err)
	}
	return DisplayType(variant.Type()) + "(" + ins.text(variant, depth+1) + ")"
}

// unionChildren mirrors the children of the active variant. A variant that
// could not be resolved is shown as its only child.
func (ins *Inspector) unionChildren(v Value) Children {
	variant, ok := ins.unionVariant(v)
	if !ok {
		return noChildren{}
	}
	if variant.Err() != nil {
		return &unionDiagnostic{v: variant}
	}
	return ins.Children(variant)
}

type unionDiagnostic struct {
	v Value
}

func (c *unionDiagnostic) HasChildren() bool { return true }
func (c *unionDiagnostic) NumChildren() int  { return 1 }
func (c *unionDiagnostic) children()         {}

func (c *unionDiagnostic) ChildAt(i int) Value {
	checkIndex(i, 1)
	return c.v
}
