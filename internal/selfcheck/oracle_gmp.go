//go:build gmp

package selfcheck

import (
	"fmt"
	"math/big"

	"github.com/agbru/fpcore/internal/bigint"
	"github.com/ncw/gmp"
)

func init() {
	RegisterOracle(GMPOracle{})
}

var gmpWrapModulus = new(gmp.Int).Lsh(gmp.NewInt(1), bigint.Bits)

// GMPOracle is the reference implementation backed by the GNU Multiple
// Precision library. It is only built with the gmp tag.
type GMPOracle struct{}

// Name implements Oracle.
func (GMPOracle) Name() string { return "gmp" }

func toGMP(a bigint.BigInteger) *gmp.Int {
	return new(gmp.Int).SetBytes(a.ToBig().Bytes())
}

func fromGMP(x *gmp.Int) bigint.BigInteger {
	z, err := bigint.FromBig(new(big.Int).SetBytes(x.Bytes()))
	if err != nil {
		panic(fmt.Sprintf("selfcheck: gmp oracle produced unrepresentable value: %v", err))
	}
	return z
}

// Add implements Oracle.
func (GMPOracle) Add(a, b bigint.BigInteger) (bigint.BigInteger, bool) {
	sum := new(gmp.Int).Add(toGMP(a), toGMP(b))
	carry := sum.Cmp(gmpWrapModulus) >= 0
	return fromGMP(sum.Mod(sum, gmpWrapModulus)), carry
}

// Sub implements Oracle.
func (GMPOracle) Sub(a, b bigint.BigInteger) (bigint.BigInteger, bool) {
	x, y := toGMP(a), toGMP(b)
	borrow := x.Cmp(y) < 0
	diff := x.Sub(x, y)
	return fromGMP(diff.Mod(diff, gmpWrapModulus)), borrow
}

// Cmp implements Oracle.
func (GMPOracle) Cmp(a, b bigint.BigInteger) int {
	return toGMP(a).Cmp(toGMP(b))
}

// BitLen implements Oracle.
func (GMPOracle) BitLen(a bigint.BigInteger) int {
	return toGMP(a).BitLen()
}

// MulMod implements Oracle.
func (GMPOracle) MulMod(a, b, m bigint.BigInteger) bigint.BigInteger {
	prod := new(gmp.Int).Mul(toGMP(a), toGMP(b))
	return fromGMP(prod.Mod(prod, toGMP(m)))
}
