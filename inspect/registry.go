package inspect

// Entry binds one kind to its renderers. Children is nil for kinds the host
// should expand from the raw type layout.
type Entry struct {
	Recognize func(t Type) bool
	Summary   func(v Value) string
	Children  func(v Value) Children
	Kind      Kind
}

// Registry is the table of decoders handed to a debugger host at startup.
type Registry struct {
	entries []Entry
}

// NewRegistry builds the decoder table for ins.
func NewRegistry(ins *Inspector) *Registry {
	r := &Registry{}
	for _, k := range []Kind{
		KindString,
		KindSlice,
		KindMap,
		KindProcedure,
		KindArray,
		KindUnion,
		KindStruct,
		KindPointer,
	} {
		r.entries = append(r.entries, ins.entry(k))
	}
	return r
}

func (ins *Inspector) entry(k Kind) Entry {
	e := Entry{
		Kind:      k,
		Recognize: func(t Type) bool { return Classify(t) == k },
		Summary: func(v Value) string {
			s, _ := ins.Summary(v)
			return s
		},
	}
	switch k {
	case KindSlice, KindMap, KindUnion:
		e.Children = ins.Children
	}
	return e
}

// Entries returns the registered decoders in recognition order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the decoder for t. It reports false for scalars and other
// types no decoder recognizes.
func (r *Registry) Lookup(t Type) (Entry, bool) {
	k := Classify(t)
	for _, e := range r.entries {
		if e.Kind == k {
			return e, true
		}
	}
	return Entry{}, false
}
