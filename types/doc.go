// Package types provides static type descriptors that implement odininspect.Type.
//
// The descriptors stand in for debug info when no debugger is attached: snapshot
// files, the wasm target and tests describe their types with this package. The
// Builder knows how the Odin compiler lays out its built-in composites for a
// given architecture:
//
//	string         struct { data: [^]u8, len: int }
//	[]T            struct { data: [^]T, len: int }
//	[dynamic]T     struct { data: [^]T, len: int, cap: int, allocator: Allocator }
//	map[K]V        struct { data: ^cells, len: uintptr, allocator: Allocator }
//	union          payload at 0, tag after the largest variant
//
// The cells of a map type expose the key, value and hash types plus the
// cache-line sized key_cell and value_cell types the runtime packs elements into.
package types
