// Package inspect renders Odin values from raw target memory.
//
// An Inspector classifies each value by its type and hands it to the decoder
// of that kind. Decoders produce a one-line summary and, for composites, a
// synthetic child list:
//
//	ins := inspect.New(target, nil)
//	fmt.Println(ins.Text(v))         // [3]{1, 2, 3}
//	c := ins.Children(v)
//	for i := 0; i < c.NumChildren(); i++ {
//		child := c.ChildAt(i)
//		fmt.Println(child.Name(), ins.Text(child))
//	}
//
// # Kinds
//
//   - string: quoted UTF-8 text read from {data, len}
//   - []T, [dynamic]T: [len]{...}; more than Config.ChunkSize elements are
//     grouped into [start..<end] sub-arrays
//   - map[K]V: map[len]{k = v, ...}; children are interleaved keys and values
//     named by hash slot, followed by a "cap" child
//   - union: Variant(value), or nil for an empty nilable union
//   - ^T: nil, rawptr(0x...), &summary or (^T)value
//   - proc: proc "conv" (params) -> result
//
// # Errors
//
// Read failures and layout mismatches never escape a summary or child
// provider. They render as "<error: ...>" diagnostics, or as
// "<error reading string>" for string data. Only a ChildAt index outside the
// declared count panics.
//
// Requests share no state. An Inspector may be used from several goroutines
// when its Target can.
package inspect
