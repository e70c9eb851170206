// Package cell provides the storage arithmetic of Odin's runtime map.
//
// A map value holds a single header word in its data field. The low six bits of
// the word are log2 of the capacity, the remaining bits are the base address of
// the key cells:
//
//	┌────────────────────────────── 64 ─────────────────────────────┬── 6 ──┐
//	│ key cell base (64-byte aligned)                               │ log2  │
//	└───────────────────────────────────────────────────────────────┴───────┘
//
// Keys, values and hashes live in three consecutive regions, each sized for the
// full capacity:
//
//	[key cells][value cells][hash slots]
//
// # Cells
//
// Keys and values are packed into aligned cells that may hold several elements
// (structure-of-arrays packing). A Layout records the element size, the cell
// size and the number of elements per cell; Index maps a logical slot to its
// address.
//
// # Hash slots
//
// Hash slots are 8 bytes. Zero marks an empty slot, a set top bit marks a
// tombstone, anything else is a live entry.
//
// This package is internal to inspect.
package cell
