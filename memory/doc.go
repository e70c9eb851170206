// Package memory provides read-only odininspect.Memory implementations.
//
// # Segments
//
// Segments is a sparse process image assembled from mapped byte ranges. It backs
// snapshot files and tests:
//
//	mem := memory.NewSegments()
//	mem.Map(0x1000, data)
//	v, err := mem.ReadUnsigned(0x1008, 8)
//
// # Wasm
//
// Wasm wraps a wazero api.Memory so that values living in the linear memory of
// an instantiated module can be inspected:
//
//	mem := memory.Wrap(mod.Memory())
//
// Reads outside mapped ranges fail with a read_failed error; nothing blocks.
package memory
