package cmt

import "math/bits"

func BitLength32(num uint32) uint32 { return uint32(bits.Len32(num)) }

// Log2Uint32 efficiently computes log base 2 of num
func Log2Uint32(num uint32) uint32 {
	return uint32(bits.Len32(num) - 1)
}

// IsPow2 is true when num has exactly one set bit. Note that it reports true
// for zero, callers relying on that edge must check separately.
func IsPow2(num uint32) bool {
	return num&(num-1) == 0
}
