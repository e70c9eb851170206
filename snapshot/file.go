package snapshot

// File is the YAML layout of a snapshot.
type File struct {
	Types     map[string]TypeDecl `yaml:"types"`
	Wasm      *WasmDecl           `yaml:"wasm,omitempty"`
	Arch      string              `yaml:"arch"`
	Memory    []SegmentDecl       `yaml:"memory"`
	Variables []VariableDecl      `yaml:"variables"`
}

// TypeDecl declares a named type. Exactly one of Struct, Union, Alias and Proc
// is set.
type TypeDecl struct {
	Proc    *ProcDecl   `yaml:"proc,omitempty"`
	Alias   string      `yaml:"alias,omitempty"`
	Struct  []FieldDecl `yaml:"struct,omitempty"`
	Union   []string    `yaml:"union,omitempty"`
	Size    uint64      `yaml:"size,omitempty"`
	Align   uint64      `yaml:"align,omitempty"`
	Nilable bool        `yaml:"nilable,omitempty"`
}

// FieldDecl is a struct member. Offsets are computed unless every member of
// the struct sets one, in which case Size is required.
type FieldDecl struct {
	Offset *uint64 `yaml:"offset,omitempty"`
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
}

// ProcDecl is a procedure signature. Values of proc types are code pointers.
type ProcDecl struct {
	Convention string   `yaml:"convention,omitempty"`
	Result     string   `yaml:"result,omitempty"`
	Params     []string `yaml:"params,omitempty"`
}

// SegmentDecl fills memory at Addr. Exactly one content field is set.
type SegmentDecl struct {
	Bytes string   `yaml:"bytes,omitempty"` // hex
	Text  string   `yaml:"text,omitempty"`
	U16   []uint16 `yaml:"u16,omitempty"`
	U32   []uint32 `yaml:"u32,omitempty"`
	U64   []uint64 `yaml:"u64,omitempty"`
	Words []uint64 `yaml:"words,omitempty"` // pointer sized
	Addr  uint64   `yaml:"addr"`
	Zero  uint64   `yaml:"zero,omitempty"`
}

// VariableDecl is a value to inspect.
type VariableDecl struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Expect string `yaml:"expect,omitempty"`
	Addr   uint64 `yaml:"addr"`
}

// WasmDecl loads memory from a wasm module.
type WasmDecl struct {
	Module string   `yaml:"module"`
	Memory string   `yaml:"memory,omitempty"`
	Call   []string `yaml:"call,omitempty"`
}
