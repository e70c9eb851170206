package inspect

import (
	"strconv"
	"strings"

	"github.com/wippyai/odin-inspect/errors"
)

// ParsePath parses a child path such as "0/3/1" into child indices.
// The empty path selects the value itself.
func ParsePath(s string) ([]int, error) {
	s = strings.Trim(s, "/ ")
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "/")
	path := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Detail("bad child index %q in path %q", p, s).
				Build()
		}
		path[i] = n
	}
	return path, nil
}

// Descend follows path through the synthetic children of v.
func (ins *Inspector) Descend(v Value, path []int) (Value, error) {
	names := []string{v.Name()}
	for _, i := range path {
		c := ins.Children(v)
		n := c.NumChildren()
		if i < 0 || i >= n {
			return Value{}, errors.OutOfBounds(errors.PhaseRender, names, i, n)
		}
		v = c.ChildAt(i)
		names = append(names, v.Name())
	}
	return v, nil
}
