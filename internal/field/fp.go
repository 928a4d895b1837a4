// Package field implements Fp, the prime-field element type built on
// bigint.BigInteger. Elements are kept in Montgomery form with R = 2^2112 and
// are always fully reduced below Modulus.
package field

import (
	"fmt"

	"github.com/agbru/fpcore/internal/bigint"
)

// Fp is an element of the prime field of order Modulus. The zero value is the
// additive identity.
type Fp struct {
	mont bigint.BigInteger
}

// Zero returns the additive identity.
func Zero() Fp { return Fp{} }

// One returns the multiplicative identity.
func One() Fp { return Fp{mont: rModP} }

// FromUint64 returns v as a field element.
func FromUint64(v uint64) Fp {
	x := bigint.FromUint64(v)
	return FromBigInteger(&x)
}

// FromBigInteger reduces x modulo Modulus. Any 2112-bit value is accepted.
func FromBigInteger(x *bigint.BigInteger) Fp {
	return Fp{mont: montMul(x, &r2ModP)}
}

// BigInteger returns the canonical representative in [0, Modulus).
func (a Fp) BigInteger() bigint.BigInteger {
	one := bigint.FromUint64(1)
	return montMul(&a.mont, &one)
}

// Rand returns a uniformly distributed element. It rejects samples at or
// above Modulus, which happens with probability below 2^-1000.
func Rand(src bigint.Source) Fp {
	for {
		x := bigint.Rand(src)
		if x.Cmp(&Modulus) < 0 {
			return FromBigInteger(&x)
		}
	}
}

// IsZero reports whether a is the additive identity.
func (a Fp) IsZero() bool { return a.mont.IsZero() }

// IsOne reports whether a is the multiplicative identity.
func (a Fp) IsOne() bool { return a.mont.Equal(&rModP) }

// Equal reports whether a and b are the same element.
func (a Fp) Equal(b Fp) bool { return a.mont.Equal(&b.mont) }

// Add returns a + b.
func (a Fp) Add(b Fp) Fp {
	a.mont.AddNoCarry(&b.mont)
	a.reduceOnce()
	return a
}

// Sub returns a - b.
func (a Fp) Sub(b Fp) Fp {
	if a.mont.SubNoBorrow(&b.mont) {
		a.mont.AddNoCarry(&Modulus)
	}
	return a
}

// Neg returns -a.
func (a Fp) Neg() Fp {
	if a.IsZero() {
		return a
	}
	p := Modulus
	p.SubNoBorrow(&a.mont)
	return Fp{mont: p}
}

// Double returns 2a.
func (a Fp) Double() Fp {
	a.mont.Mul2()
	a.reduceOnce()
	return a
}

// Mul returns a * b.
func (a Fp) Mul(b Fp) Fp {
	return Fp{mont: montMul(&a.mont, &b.mont)}
}

// Square returns a * a.
func (a Fp) Square() Fp {
	return a.Mul(a)
}

// Pow returns a^e where e is given as little-endian 64-bit limbs.
func (a Fp) Pow(e []uint64) Fp {
	res := One()
	for i := len(e) - 1; i >= 0; i-- {
		for bit := 63; bit >= 0; bit-- {
			res = res.Square()
			if (e[i]>>uint(bit))&1 == 1 {
				res = res.Mul(a)
			}
		}
	}
	return res
}

// Inverse returns a^-1. ok is false only when a is zero.
func (a Fp) Inverse() (inv Fp, ok bool) {
	if a.IsZero() {
		return Fp{}, false
	}
	return a.Pow(pMinus2[:]), true
}

// String renders the canonical value in hexadecimal.
func (a Fp) String() string {
	v := a.BigInteger()
	return fmt.Sprintf("Fp(0x%s)", v.Hex())
}

// reduceOnce subtracts Modulus when a is in [Modulus, 2*Modulus).
func (a *Fp) reduceOnce() {
	if a.mont.Cmp(&Modulus) >= 0 {
		a.mont.SubNoBorrow(&Modulus)
	}
}

// montMul returns x*y*R^-1 mod Modulus using the coarsely integrated operand
// scanning method. It requires x < R and y < Modulus; the result is fully
// reduced.
func montMul(x, y *bigint.BigInteger) bigint.BigInteger {
	const n = bigint.NumLimbs
	var t [n + 2]uint64
	for i := 0; i < n; i++ {
		var c uint64
		for j := 0; j < n; j++ {
			c, t[j] = bigint.MulAddCarry(x[j], y[i], t[j], c)
		}
		t[n], c = bigint.AddWithCarry(t[n], c, 0)
		t[n+1] = c

		m := t[0] * inv
		c, _ = bigint.MulAddCarry(m, Modulus[0], t[0], 0)
		for j := 1; j < n; j++ {
			c, t[j-1] = bigint.MulAddCarry(m, Modulus[j], t[j], c)
		}
		t[n-1], c = bigint.AddWithCarry(t[n], c, 0)
		t[n] = t[n+1] + c
	}

	var z bigint.BigInteger
	copy(z[:], t[:n])
	if t[n] != 0 || z.Cmp(&Modulus) >= 0 {
		z.SubNoBorrow(&Modulus)
	}
	return z
}
