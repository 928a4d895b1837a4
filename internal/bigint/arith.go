package bigint

import "math/bits"

// AddWithCarry computes a + b + carryIn and returns the low 64 bits of the sum
// together with the outgoing carry. carryIn must be 0 or 1; carryOut is
// always 0 or 1.
func AddWithCarry(a, b, carryIn uint64) (sum, carryOut uint64) {
	return bits.Add64(a, b, carryIn)
}

// SubWithBorrow computes a - b - borrowIn modulo 2^64 and returns the outgoing
// borrow, which is 1 exactly when a < b + borrowIn. borrowIn must be 0 or 1.
func SubWithBorrow(a, b, borrowIn uint64) (diff, borrowOut uint64) {
	return bits.Sub64(a, b, borrowIn)
}

// MulAddCarry returns the 128-bit value a*b + c + d split into hi and lo
// words. The result never overflows 128 bits.
func MulAddCarry(a, b, c, d uint64) (hi, lo uint64) {
	var carry uint64
	hi, lo = bits.Mul64(a, b)
	lo, carry = bits.Add64(lo, c, 0)
	hi += carry
	lo, carry = bits.Add64(lo, d, 0)
	hi += carry
	return hi, lo
}
