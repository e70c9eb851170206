// Package expect compares rendered values against annotated expectations.
//
// An expectation is the literal text a value should render as, with two
// wildcards for run-dependent parts:
//
//	%PTR%   a 0x-prefixed hexadecimal run, such as an address
//	%INT%   a run of decimal digits
//
// Any literal 0x... run in an expectation also matches any address. Leading
// and trailing whitespace is ignored; everything else must match byte for
// byte.
//
//	ok := expect.Match(`rawptr(%PTR%)`, "rawptr(0x00007ffd5a3c1e40)")
package expect
