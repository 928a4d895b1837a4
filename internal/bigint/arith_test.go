package bigint

import (
	"math"
	"math/big"
	"testing"
)

func TestAddWithCarry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		a, b, carryIn uint64
		sum, carryOut uint64
	}{
		{"Zero", 0, 0, 0, 0, 0},
		{"CarryInOnly", 0, 0, 1, 1, 0},
		{"NoOverflow", 40, 2, 0, 42, 0},
		{"ExactWrap", math.MaxUint64, 1, 0, 0, 1},
		{"WrapViaCarryIn", math.MaxUint64, 0, 1, 0, 1},
		{"MaxPlusMaxPlusOne", math.MaxUint64, math.MaxUint64, 1, math.MaxUint64, 1},
		{"MaxPlusMax", math.MaxUint64, math.MaxUint64, 0, math.MaxUint64 - 1, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sum, carry := AddWithCarry(tt.a, tt.b, tt.carryIn)
			if sum != tt.sum || carry != tt.carryOut {
				t.Errorf("AddWithCarry(%#x, %#x, %d) = (%#x, %d), want (%#x, %d)",
					tt.a, tt.b, tt.carryIn, sum, carry, tt.sum, tt.carryOut)
			}
		})
	}
}

func TestSubWithBorrow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		a, b, borrowIn uint64
		diff, borrow   uint64
	}{
		{"Zero", 0, 0, 0, 0, 0},
		{"NoBorrow", 44, 2, 0, 42, 0},
		{"BorrowInOnly", 0, 0, 1, math.MaxUint64, 1},
		{"EqualWithBorrowIn", 7, 7, 1, math.MaxUint64, 1},
		{"Underflow", 1, 2, 0, math.MaxUint64, 1},
		{"MaxMinusMax", math.MaxUint64, math.MaxUint64, 0, 0, 0},
		{"ZeroMinusMax", 0, math.MaxUint64, 1, 0, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			diff, borrow := SubWithBorrow(tt.a, tt.b, tt.borrowIn)
			if diff != tt.diff || borrow != tt.borrow {
				t.Errorf("SubWithBorrow(%#x, %#x, %d) = (%#x, %d), want (%#x, %d)",
					tt.a, tt.b, tt.borrowIn, diff, borrow, tt.diff, tt.borrow)
			}
		})
	}
}

func TestMulAddCarry_Max(t *testing.T) {
	t.Parallel()
	// (2^64-1)^2 + 2(2^64-1) = 2^128 - 1
	hi, lo := MulAddCarry(math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64)
	if hi != math.MaxUint64 || lo != math.MaxUint64 {
		t.Errorf("MulAddCarry(max, max, max, max) = (%#x, %#x), want (max, max)", hi, lo)
	}
}

// wordOracle evaluates a op b op c with math/big and splits the result into
// a 64-bit word and the overflow indicator.
func wordOracle(sum *big.Int) (uint64, uint64) {
	mask := new(big.Int).SetUint64(math.MaxUint64)
	low := new(big.Int).And(sum, mask).Uint64()
	return low, new(big.Int).Rsh(sum, 64).Uint64()
}

// FuzzAddWithCarry checks the carry primitive against math/big.
func FuzzAddWithCarry(f *testing.F) {
	f.Add(uint64(0), uint64(0), false)
	f.Add(uint64(math.MaxUint64), uint64(1), false)
	f.Add(uint64(math.MaxUint64), uint64(math.MaxUint64), true)
	f.Add(uint64(1<<63), uint64(1<<63), true)

	f.Fuzz(func(t *testing.T, a, b uint64, c bool) {
		var carryIn uint64
		if c {
			carryIn = 1
		}
		sum, carry := AddWithCarry(a, b, carryIn)

		want := new(big.Int).SetUint64(a)
		want.Add(want, new(big.Int).SetUint64(b))
		want.Add(want, new(big.Int).SetUint64(carryIn))
		wantSum, wantCarry := wordOracle(want)
		if sum != wantSum || carry != wantCarry {
			t.Errorf("AddWithCarry(%#x, %#x, %d) = (%#x, %d), want (%#x, %d)", a, b, carryIn, sum, carry, wantSum, wantCarry)
		}
	})
}

// FuzzSubWithBorrow checks the borrow primitive against math/big.
func FuzzSubWithBorrow(f *testing.F) {
	f.Add(uint64(0), uint64(0), false)
	f.Add(uint64(0), uint64(1), false)
	f.Add(uint64(5), uint64(5), true)
	f.Add(uint64(math.MaxUint64), uint64(math.MaxUint64), true)

	f.Fuzz(func(t *testing.T, a, b uint64, bw bool) {
		var borrowIn uint64
		if bw {
			borrowIn = 1
		}
		diff, borrow := SubWithBorrow(a, b, borrowIn)

		rhs := new(big.Int).SetUint64(b)
		rhs.Add(rhs, new(big.Int).SetUint64(borrowIn))
		lhs := new(big.Int).SetUint64(a)
		var wantBorrow uint64
		if lhs.Cmp(rhs) < 0 {
			wantBorrow = 1
			lhs.Add(lhs, new(big.Int).Lsh(big.NewInt(1), 64))
		}
		wantDiff := lhs.Sub(lhs, rhs).Uint64()
		if diff != wantDiff || borrow != wantBorrow {
			t.Errorf("SubWithBorrow(%#x, %#x, %d) = (%#x, %d), want (%#x, %d)", a, b, borrowIn, diff, borrow, wantDiff, wantBorrow)
		}
	})
}

// FuzzMulAddCarry checks the widening multiply-add against math/big.
func FuzzMulAddCarry(f *testing.F) {
	f.Add(uint64(0), uint64(0), uint64(0), uint64(0))
	f.Add(uint64(math.MaxUint64), uint64(2), uint64(1), uint64(math.MaxUint64))

	f.Fuzz(func(t *testing.T, a, b, c, d uint64) {
		hi, lo := MulAddCarry(a, b, c, d)

		want := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
		want.Add(want, new(big.Int).SetUint64(c))
		want.Add(want, new(big.Int).SetUint64(d))
		wantLo, wantHi := wordOracle(want)
		if hi != wantHi || lo != wantLo {
			t.Errorf("MulAddCarry(%#x, %#x, %#x, %#x) = (%#x, %#x), want (%#x, %#x)", a, b, c, d, hi, lo, wantHi, wantLo)
		}
	})
}
