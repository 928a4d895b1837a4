package bigint

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	apperrors "github.com/agbru/fpcore/internal/errors"
)

const (
	// NumLimbs is the number of 64-bit words in a BigInteger.
	NumLimbs = 33
	// Bits is the fixed width of a BigInteger.
	Bits = NumLimbs * 64
	// RandomBits is the width of values produced by Rand: the top limb is
	// always zero, leaving one limb of headroom.
	RandomBits = (NumLimbs - 1) * 64

	byteLen = NumLimbs * 8
)

// BigInteger is an unsigned integer in [0, 2^2112) stored as 33 limbs,
// least-significant first. The zero value is the integer 0.
type BigInteger [NumLimbs]uint64

// New returns the BigInteger whose limbs are exactly limbs.
func New(limbs [NumLimbs]uint64) BigInteger {
	return BigInteger(limbs)
}

// FromUint64 widens v into limb 0; all higher limbs are zero.
func FromUint64(v uint64) BigInteger {
	var z BigInteger
	z[0] = v
	return z
}

// Zero returns the additive identity.
func Zero() BigInteger {
	return BigInteger{}
}

// Limbs returns a copy of the limbs, least-significant first.
func (z *BigInteger) Limbs() [NumLimbs]uint64 {
	return *z
}

// IsOdd reports whether the least-significant bit is set.
func (z *BigInteger) IsOdd() bool {
	return z[0]&1 == 1
}

// IsEven reports whether the least-significant bit is clear.
func (z *BigInteger) IsEven() bool {
	return !z.IsOdd()
}

// IsZero reports whether every limb is zero.
func (z *BigInteger) IsZero() bool {
	for _, w := range z {
		if w != 0 {
			return false
		}
	}
	return true
}

// Bit returns bit i of z (0 or 1). Bits at or beyond Bits are 0.
func (z *BigInteger) Bit(i uint) uint64 {
	if i >= Bits {
		return 0
	}
	return (z[i/64] >> (i % 64)) & 1
}

// Div2 shifts z right by one bit in place. The bit shifted out of limb 0 is
// discarded and the top bit of limb 32 becomes 0.
func (z *BigInteger) Div2() {
	var t uint64
	for i := NumLimbs - 1; i >= 0; i-- {
		t2 := z[i] << 63
		z[i] = z[i]>>1 | t
		t = t2
	}
}

// Mul2 shifts z left by one bit in place, keeping the low 2112 bits. It
// reports whether a set bit was shifted out of limb 32, i.e. whether the
// doubled value no longer fits.
func (z *BigInteger) Mul2() (overflow bool) {
	var last uint64
	for i := range z {
		tmp := z[i] >> 63
		z[i] = z[i]<<1 | last
		last = tmp
	}
	return last != 0
}

// NumBits returns the bit length of z: the smallest n with z < 2^n. It is 0
// for the zero value.
func (z *BigInteger) NumBits() int {
	ret := Bits
	for i := NumLimbs - 1; i >= 0; i-- {
		leading := bits.LeadingZeros64(z[i])
		ret -= leading
		if leading != 64 {
			break
		}
	}
	return ret
}

// AddNoCarry sets z = z + x mod 2^2112 and reports whether the true sum
// overflowed the fixed width.
func (z *BigInteger) AddNoCarry(x *BigInteger) bool {
	var carry uint64
	for i := range z {
		z[i], carry = AddWithCarry(z[i], x[i], carry)
	}
	return carry != 0
}

// SubNoBorrow sets z = z - x mod 2^2112 and reports whether z was less than x
// before the subtraction.
func (z *BigInteger) SubNoBorrow(x *BigInteger) bool {
	var borrow uint64
	for i := range z {
		z[i], borrow = SubWithBorrow(z[i], x[i], borrow)
	}
	return borrow != 0
}

// Cmp compares z and x and returns -1, 0 or +1 when z is less than, equal to
// or greater than x. Limbs are compared from the most significant down.
func (z *BigInteger) Cmp(x *BigInteger) int {
	for i := NumLimbs - 1; i >= 0; i-- {
		switch {
		case z[i] < x[i]:
			return -1
		case z[i] > x[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether z and x have identical limbs.
func (z *BigInteger) Equal(x *BigInteger) bool {
	return *z == *x
}

// String renders the limbs in decimal, most-significant first, concatenated
// without separators. The form is meant for diagnostics only.
func (z BigInteger) String() string {
	var sb strings.Builder
	sb.Grow(len("BigInteger()") + NumLimbs*20)
	sb.WriteString("BigInteger(")
	for i := NumLimbs - 1; i >= 0; i-- {
		sb.WriteString(strconv.FormatUint(z[i], 10))
	}
	sb.WriteByte(')')
	return sb.String()
}

// GoString implements fmt.GoStringer so %#v prints the diagnostic form.
func (z BigInteger) GoString() string {
	return z.String()
}

// ToBig converts z to a new math/big integer.
func (z *BigInteger) ToBig() *big.Int {
	var buf [byteLen]byte
	for i, w := range z {
		binary.BigEndian.PutUint64(buf[byteLen-8*(i+1):], w)
	}
	return new(big.Int).SetBytes(buf[:])
}

// Hex returns z in lowercase hexadecimal without a prefix.
func (z *BigInteger) Hex() string {
	return z.ToBig().Text(16)
}

// FromBig converts x to a BigInteger. It fails when x is nil, negative or
// wider than 2112 bits.
func FromBig(x *big.Int) (BigInteger, error) {
	var z BigInteger
	switch {
	case x == nil:
		return z, apperrors.ValidationError{Field: "value", Message: "nil integer"}
	case x.Sign() < 0:
		return z, apperrors.ValidationError{Field: "value", Message: "negative integer"}
	case x.BitLen() > Bits:
		return z, apperrors.ValidationError{
			Field:   "value",
			Message: fmt.Sprintf("%d bits exceeds width of %d", x.BitLen(), Bits),
		}
	}
	var buf [byteLen]byte
	x.FillBytes(buf[:])
	for i := range z {
		z[i] = binary.BigEndian.Uint64(buf[byteLen-8*(i+1):])
	}
	return z, nil
}

// ParseHex parses a hexadecimal string, with or without a 0x prefix.
func ParseHex(s string) (BigInteger, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	x, ok := new(big.Int).SetString(s, 16)
	if !ok || s == "" {
		return BigInteger{}, apperrors.ValidationError{Field: "hex", Message: fmt.Sprintf("invalid hexadecimal %q", s)}
	}
	return FromBig(x)
}
