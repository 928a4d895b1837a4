package selfcheck

import (
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/agbru/fpcore/internal/bigint"
)

// Oracle evaluates reference results with an arbitrary precision library.
type Oracle interface {
	Name() string
	// Add returns (a + b) mod 2^2112 and whether the true sum overflowed.
	Add(a, b bigint.BigInteger) (bigint.BigInteger, bool)
	// Sub returns (a - b) mod 2^2112 and whether a < b.
	Sub(a, b bigint.BigInteger) (bigint.BigInteger, bool)
	Cmp(a, b bigint.BigInteger) int
	BitLen(a bigint.BigInteger) int
	// MulMod returns a * b mod m.
	MulMod(a, b, m bigint.BigInteger) bigint.BigInteger
}

var (
	oraclesMu sync.RWMutex
	oracles   = map[string]Oracle{}
)

// RegisterOracle makes o available under its name.
func RegisterOracle(o Oracle) {
	oraclesMu.Lock()
	defer oraclesMu.Unlock()
	oracles[o.Name()] = o
}

// LookupOracle returns the oracle registered under name.
func LookupOracle(name string) (Oracle, error) {
	oraclesMu.RLock()
	defer oraclesMu.RUnlock()
	o, ok := oracles[name]
	if !ok {
		return nil, fmt.Errorf("unknown oracle %q (available: %v)", name, oracleNamesLocked())
	}
	return o, nil
}

// OracleNames lists the registered oracles in sorted order.
func OracleNames() []string {
	oraclesMu.RLock()
	defer oraclesMu.RUnlock()
	return oracleNamesLocked()
}

func oracleNamesLocked() []string {
	names := make([]string, 0, len(oracles))
	for name := range oracles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterOracle(BigOracle{})
}

var wrapModulus = new(big.Int).Lsh(big.NewInt(1), bigint.Bits)

// BigOracle is the math/big reference implementation.
type BigOracle struct{}

// Name implements Oracle.
func (BigOracle) Name() string { return "big" }

// Add implements Oracle.
func (BigOracle) Add(a, b bigint.BigInteger) (bigint.BigInteger, bool) {
	sum := new(big.Int).Add(a.ToBig(), b.ToBig())
	carry := sum.Cmp(wrapModulus) >= 0
	return mustFromBig(sum.Mod(sum, wrapModulus)), carry
}

// Sub implements Oracle.
func (BigOracle) Sub(a, b bigint.BigInteger) (bigint.BigInteger, bool) {
	x, y := a.ToBig(), b.ToBig()
	borrow := x.Cmp(y) < 0
	diff := x.Sub(x, y)
	return mustFromBig(diff.Mod(diff, wrapModulus)), borrow
}

// Cmp implements Oracle.
func (BigOracle) Cmp(a, b bigint.BigInteger) int {
	return a.ToBig().Cmp(b.ToBig())
}

// BitLen implements Oracle.
func (BigOracle) BitLen(a bigint.BigInteger) int {
	return a.ToBig().BitLen()
}

// MulMod implements Oracle.
func (BigOracle) MulMod(a, b, m bigint.BigInteger) bigint.BigInteger {
	prod := new(big.Int).Mul(a.ToBig(), b.ToBig())
	return mustFromBig(prod.Mod(prod, m.ToBig()))
}

// mustFromBig converts a value already reduced below 2^2112.
func mustFromBig(x *big.Int) bigint.BigInteger {
	z, err := bigint.FromBig(x)
	if err != nil {
		panic(fmt.Sprintf("selfcheck: oracle produced unrepresentable value: %v", err))
	}
	return z
}
