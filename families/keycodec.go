// Package families implements one query builder per entity family: the
// sort-key encoding, the min/max sentinel tuples, and the <base>From /
// <base>Since store calls the timeline engine's Absolute and Identifier
// entries are bound to.
package families

// EncodeUint64 big-endian-encodes v so that byte comparison of the result
// matches numeric comparison of v.
func EncodeUint64(v uint64) []byte {
	return []byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	}
}

// EncodeInt32 encodes v with its sign bit flipped before a big-endian
// layout, so that byte comparison of the result matches signed numeric
// comparison of v (the standard two's-complement-to-unsigned ordering
// trick). Used for the transaction intra-block index tie-breaker, whose
// sentinel values include -1.
func EncodeInt32(v int32) []byte {
	u := uint32(v) ^ 0x8000_0000
	return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
}

// Concat concatenates parts into a single composite key. Each part must be
// fixed-width and order-preserving on its own (EncodeUint64, EncodeInt32,
// or a raw fixed-width identifier) so that byte comparison of the
// concatenation reproduces the lexicographic predicate over the tuple.
func Concat(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// MinID returns the all-zero n-byte sentinel for a fixed-width identifier
// field used as a tie-breaker or composite-key component.
func MinID(n int) []byte { return make([]byte, n) }

// MaxID returns the all-0xFF n-byte sentinel for a fixed-width identifier
// field used as a tie-breaker or composite-key component.
func MaxID(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
