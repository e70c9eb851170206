// Package odininspect decodes values of Odin programs from raw memory and type
// metadata.
//
// The library renders Odin's built-in composites the way a debugger shows
// them: slices, dynamic arrays, strings, maps, tagged unions, pointers and
// procedures. It never runs target code and never writes target memory.
//
// # Architecture Overview
//
//	odininspect/         Root package with Type, Memory, Target and Value
//	├── inspect/         Classifier, decoders and the decoder registry
//	├── types/           Static type descriptors with Odin layout rules
//	├── memory/          Segment and wazero linear memory targets
//	├── snapshot/        YAML snapshot files and wasm module loading
//	├── expect/          %PTR% / %INT% expectation matching
//	├── errors/          Structured error types for diagnostics
//	├── internal/server/ MCP tool handlers
//	└── cmd/             odinview CLI and odinview-mcp tool server
//
// # Quick Start
//
// Describe the memory and the types, then render a value:
//
//	b := types.NewBuilder(types.AMD64)
//	mem := memory.NewSegments()
//	mem.Map(0x1000, data)
//
//	ins := inspect.New(types.NewTarget(mem), nil)
//	v := odininspect.NewValue("xs", b.Slice(b.MustScalar("int")), 0x2000)
//	fmt.Println(ins.Text(v)) // [3]{1, 2, 3}
//
// # Debugger Integration
//
// A debugger host implements Target over its own debug info and process
// memory, builds an inspect.Registry once and consults it for every value it
// displays.
package odininspect
