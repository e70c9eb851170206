package snapshot

import (
	"strconv"
	"strings"

	odininspect "github.com/wippyai/odin-inspect"
	"github.com/wippyai/odin-inspect/errors"
	"github.com/wippyai/odin-inspect/types"
)

// resolver turns type expressions into descriptors, building declared types
// on first use.
type resolver struct {
	b        *types.Builder
	decls    map[string]TypeDecl
	resolved map[string]*types.Type
	visiting map[string]bool
}

func newResolver(b *types.Builder, decls map[string]TypeDecl) *resolver {
	return &resolver{
		b:        b,
		decls:    decls,
		resolved: make(map[string]*types.Type),
		visiting: make(map[string]bool),
	}
}

func (r *resolver) resolve(expr string) (*types.Type, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil, errors.InvalidInput(errors.PhaseParse, "empty type expression")
	case expr == "string":
		return r.b.String(), nil
	case expr == "rawptr":
		return r.b.RawPtr(), nil
	case strings.HasPrefix(expr, "[]"):
		elem, err := r.resolve(expr[2:])
		if err != nil {
			return nil, err
		}
		return r.b.Slice(elem), nil
	case strings.HasPrefix(expr, "[dynamic]"):
		elem, err := r.resolve(expr[len("[dynamic]"):])
		if err != nil {
			return nil, err
		}
		return r.b.DynamicArray(elem), nil
	case strings.HasPrefix(expr, "[^]"):
		elem, err := r.resolve(expr[3:])
		if err != nil {
			return nil, err
		}
		return r.b.MultiPointer(elem), nil
	case strings.HasPrefix(expr, "^"):
		pointee, err := r.resolve(expr[1:])
		if err != nil {
			return nil, err
		}
		return r.b.Pointer(pointee), nil
	case strings.HasPrefix(expr, "map["):
		return r.resolveMap(expr)
	case strings.HasPrefix(expr, "["):
		return r.resolveArray(expr)
	}

	if t, ok := r.b.Scalar(expr); ok {
		return t, nil
	}
	return r.named(expr)
}

func (r *resolver) resolveMap(expr string) (*types.Type, error) {
	end := matchingBracket(expr, len("map"))
	if end < 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "unbalanced brackets in "+expr)
	}
	key, err := r.resolve(expr[len("map["):end])
	if err != nil {
		return nil, err
	}
	value, err := r.resolve(expr[end+1:])
	if err != nil {
		return nil, err
	}
	return r.b.Map(key, value), nil
}

func (r *resolver) resolveArray(expr string) (*types.Type, error) {
	end := strings.IndexByte(expr, ']')
	if end < 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "unbalanced brackets in "+expr)
	}
	n, err := strconv.ParseUint(expr[1:end], 10, 64)
	if err != nil {
		return nil, errors.ParseFailed("array length in "+expr, err)
	}
	elem, err := r.resolve(expr[end+1:])
	if err != nil {
		return nil, err
	}
	return types.Array(elem, n), nil
}

// matchingBracket returns the index of the ']' closing the '[' at open.
func matchingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (r *resolver) named(name string) (*types.Type, error) {
	if t, ok := r.resolved[name]; ok {
		return t, nil
	}
	decl, ok := r.decls[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseParse, "type", name)
	}
	if r.visiting[name] {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Type(name).
			Detail("type refers to itself").
			Build()
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	t, err := r.build(name, decl)
	if err != nil {
		return nil, err
	}
	r.resolved[name] = t
	return t, nil
}

func (r *resolver) build(name string, decl TypeDecl) (*types.Type, error) {
	set := 0
	for _, ok := range []bool{decl.Struct != nil, decl.Union != nil, decl.Alias != "", decl.Proc != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
			Type(name).
			Detail("declare exactly one of struct, union, alias and proc").
			Build()
	}

	switch {
	case decl.Alias != "":
		t, err := r.resolve(decl.Alias)
		if err != nil {
			return nil, err
		}
		return types.Named(name, t), nil
	case decl.Union != nil:
		variants := make([]*types.Type, len(decl.Union))
		for i, expr := range decl.Union {
			v, err := r.resolve(expr)
			if err != nil {
				return nil, err
			}
			variants[i] = v
		}
		return r.b.Union(name, decl.Nilable, variants...), nil
	case decl.Proc != nil:
		return r.buildProc(decl.Proc)
	}
	return r.buildStruct(name, decl)
}

func (r *resolver) buildProc(decl *ProcDecl) (*types.Type, error) {
	params := make([]*types.Type, len(decl.Params))
	for i, expr := range decl.Params {
		p, err := r.resolve(expr)
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	var result *types.Type
	if decl.Result != "" {
		var err error
		if result, err = r.resolve(decl.Result); err != nil {
			return nil, err
		}
	}
	return r.b.ProcPointer(decl.Convention, result, params...), nil
}

func (r *resolver) buildStruct(name string, decl TypeDecl) (*types.Type, error) {
	explicit := 0
	for _, f := range decl.Struct {
		if f.Offset != nil {
			explicit++
		}
	}

	switch explicit {
	case 0:
		members := make([]types.Member, len(decl.Struct))
		for i, f := range decl.Struct {
			t, err := r.resolve(f.Type)
			if err != nil {
				return nil, err
			}
			members[i] = types.M(f.Name, t)
		}
		return types.Struct(name, members...), nil
	case len(decl.Struct):
		if decl.Size == 0 {
			return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
				Type(name).
				Detail("size is required with explicit offsets").
				Build()
		}
		fields := make([]odininspect.Field, len(decl.Struct))
		for i, f := range decl.Struct {
			t, err := r.resolve(f.Type)
			if err != nil {
				return nil, err
			}
			if *f.Offset+t.Size() > decl.Size {
				return nil, errors.New(errors.PhaseParse, errors.KindOutOfBounds).
					Path(name, f.Name).
					Detail("field ends at %d past struct size %d", *f.Offset+t.Size(), decl.Size).
					Build()
			}
			fields[i] = odininspect.Field{Name: f.Name, Offset: *f.Offset, Type: t}
		}
		return types.StructAt(name, decl.Size, decl.Align, fields...), nil
	}
	return nil, errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Type(name).
		Detail("either all or no fields set an offset").
		Build()
}
