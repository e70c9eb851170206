// Package snapshot loads inspectable program state from YAML files.
//
// A snapshot describes the types of an Odin program, the memory its values
// live in and the variables to show:
//
//	arch: amd64
//	types:
//	  main::Point:
//	    struct:
//	      - {name: x, type: i32}
//	      - {name: y, type: i32}
//	  main::Shape:
//	    union: [main::Point, f32]
//	    nilable: true
//	memory:
//	  - addr: 0x1000
//	    u64: [1, 2, 3]
//	  - addr: 0x2000
//	    words: [0x1000, 3]
//	variables:
//	  - name: xs
//	    type: "[]int"
//	    addr: 0x2000
//	    expect: "[3]{1, 2, 3}"
//
// Type expressions use Odin syntax: scalars, string, rawptr, ^T, [^]T, []T,
// [dynamic]T, [N]T, map[K]V and names declared under types.
//
// # Wasm
//
// With a wasm section the memory is the linear memory of a module compiled for
// wasm32. The module is instantiated with wazero, WASI is provided when it is
// imported, and the listed exports are called before values are read:
//
//	arch: wasm32
//	wasm:
//	  module: program.wasm
//	  call: [setup]
//
// Memory entries are then written into linear memory instead of a sparse image.
package snapshot
