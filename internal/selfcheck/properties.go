package selfcheck

import (
	"errors"
	"fmt"

	"github.com/agbru/fpcore/internal/bigint"
	"github.com/agbru/fpcore/internal/field"
)

// Property is a single check evaluated on a pair of random operands. Check
// returns nil when the property holds.
type Property struct {
	Name  string
	Check func(o Oracle, a, b bigint.BigInteger) error
}

// Properties returns the complete battery: integer properties followed by
// field properties.
func Properties() []Property {
	return append(IntegerProperties(), FieldProperties()...)
}

func mismatch(what string, got, want any) error {
	return fmt.Errorf("%s: got %v, want %v", what, got, want)
}

// widen fills the headroom limb of a from b so that carries out of the full
// 2112-bit width are exercised; Rand alone always leaves it clear.
func widen(a, b bigint.BigInteger) bigint.BigInteger {
	a[bigint.NumLimbs-1] = b[0] ^ b[1]
	return a
}

// IntegerProperties returns the BigInteger battery.
func IntegerProperties() []Property {
	return []Property{
		{"top limb of random value is zero", func(_ Oracle, a, b bigint.BigInteger) error {
			if a[bigint.NumLimbs-1] != 0 || b[bigint.NumLimbs-1] != 0 {
				return errors.New("headroom limb set")
			}
			return nil
		}},
		{"a == a", func(_ Oracle, a, _ bigint.BigInteger) error {
			c := a
			if !a.Equal(&c) || a.Cmp(&c) != 0 {
				return errors.New("value differs from its copy")
			}
			return nil
		}},
		{"a + 0 == a", func(_ Oracle, a, _ bigint.BigInteger) error {
			z, zero := a, bigint.Zero()
			if z.AddNoCarry(&zero) || !z.Equal(&a) {
				return mismatch("a + 0", z, a)
			}
			return nil
		}},
		{"a - 0 == a", func(_ Oracle, a, _ bigint.BigInteger) error {
			z, zero := a, bigint.Zero()
			if z.SubNoBorrow(&zero) || !z.Equal(&a) {
				return mismatch("a - 0", z, a)
			}
			return nil
		}},
		{"a - a == 0", func(_ Oracle, a, _ bigint.BigInteger) error {
			z := a
			if z.SubNoBorrow(&a) || !z.IsZero() {
				return mismatch("a - a", z, bigint.Zero())
			}
			return nil
		}},
		{"a + b == b + a", func(_ Oracle, a, b bigint.BigInteger) error {
			a, b = widen(a, b), widen(b, a)
			ab, ba := a, b
			c1, c2 := ab.AddNoCarry(&b), ba.AddNoCarry(&a)
			if c1 != c2 || !ab.Equal(&ba) {
				return mismatch("a + b vs b + a", ab, ba)
			}
			return nil
		}},
		{"a + b matches oracle", func(o Oracle, a, b bigint.BigInteger) error {
			a, b = widen(a, b), widen(b, a)
			want, wantCarry := o.Add(a, b)
			z := a
			carry := z.AddNoCarry(&b)
			if carry != wantCarry {
				return mismatch("carry", carry, wantCarry)
			}
			if !z.Equal(&want) {
				return mismatch("sum", z.Hex(), want.Hex())
			}
			return nil
		}},
		{"a - b matches oracle", func(o Oracle, a, b bigint.BigInteger) error {
			a, b = widen(a, b), widen(b, a)
			want, wantBorrow := o.Sub(a, b)
			z := a
			borrow := z.SubNoBorrow(&b)
			if borrow != wantBorrow {
				return mismatch("borrow", borrow, wantBorrow)
			}
			if !z.Equal(&want) {
				return mismatch("difference", z.Hex(), want.Hex())
			}
			return nil
		}},
		{"Cmp matches oracle", func(o Oracle, a, b bigint.BigInteger) error {
			// Share the upper half so lower limbs decide the order.
			copy(b[bigint.NumLimbs/2:], a[bigint.NumLimbs/2:])
			for _, pair := range [][2]bigint.BigInteger{{a, b}, {b, a}, {a, a}} {
				x, y := pair[0], pair[1]
				if got, want := x.Cmp(&y), o.Cmp(x, y); got != want {
					return mismatch("Cmp", got, want)
				}
			}
			return nil
		}},
		{"NumBits matches oracle", func(o Oracle, a, b bigint.BigInteger) error {
			// Clear a random number of high limbs to vary the bit length.
			for i := int(b[0] % bigint.NumLimbs); i < bigint.NumLimbs; i++ {
				a[i] = 0
			}
			if got, want := a.NumBits(), o.BitLen(a); got != want {
				return mismatch("NumBits", got, want)
			}
			return nil
		}},
		{"Div2(Mul2(a)) == a", func(_ Oracle, a, _ bigint.BigInteger) error {
			z := a
			if z.Mul2() {
				return errors.New("Mul2 overflowed a value with a clear headroom limb")
			}
			z.Div2()
			if !z.Equal(&a) {
				return mismatch("Div2(Mul2(a))", z, a)
			}
			return nil
		}},
		{"NumBits is monotone", func(_ Oracle, a, b bigint.BigInteger) error {
			if a.Cmp(&b) > 0 {
				a, b = b, a
			}
			if a.NumBits() > b.NumBits() {
				return mismatch("NumBits(min) <= NumBits(max)", a.NumBits(), b.NumBits())
			}
			return nil
		}},
	}
}

// FieldProperties returns the Fp battery.
func FieldProperties() []Property {
	return []Property{
		{"Fp additive laws", func(_ Oracle, x, y bigint.BigInteger) error {
			a, b := field.FromBigInteger(&x), field.FromBigInteger(&y)
			zero := field.Zero()
			switch {
			case !a.Add(zero).Equal(a):
				return errors.New("a + 0 != a")
			case !a.Sub(a).IsZero():
				return errors.New("a - a != 0")
			case !zero.Sub(a).Equal(a.Neg()):
				return errors.New("0 - a != -a")
			case !a.Double().Equal(a.Add(a)):
				return errors.New("2a != a + a")
			case !a.Add(b).Equal(b.Add(a)):
				return errors.New("a + b != b + a")
			case !a.Sub(b).Equal(b.Sub(a).Neg()):
				return errors.New("a - b != -(b - a)")
			}
			return nil
		}},
		{"Fp mul matches oracle", func(o Oracle, x, y bigint.BigInteger) error {
			a, b := field.FromBigInteger(&x), field.FromBigInteger(&y)
			got := a.Mul(b).BigInteger()
			want := o.MulMod(a.BigInteger(), b.BigInteger(), field.Modulus)
			if !got.Equal(&want) {
				return mismatch("a * b", got.Hex(), want.Hex())
			}
			return nil
		}},
		{"Fp a * a^-1 == 1", func(_ Oracle, x, _ bigint.BigInteger) error {
			a := field.FromBigInteger(&x)
			inv, ok := a.Inverse()
			if a.IsZero() {
				if ok {
					return errors.New("zero reported an inverse")
				}
				return nil
			}
			if !ok || !a.Mul(inv).IsOne() {
				return errors.New("a * a^-1 != 1")
			}
			return nil
		}},
	}
}
