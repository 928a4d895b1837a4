//go:generate mockgen -source=rand.go -destination=mocks/mock_source.go -package=mocks

package bigint

import (
	"crypto/rand"
	"encoding/binary"
)

// Source supplies uniformly distributed 64-bit words. *math/rand.Rand and the
// math/rand/v2 generators satisfy it. Implementations need not be safe for
// concurrent use; callers own that discipline.
type Source interface {
	Uint64() uint64
}

// Rand draws every limb from src and then clears limb 32, so the result lies
// in [0, 2^2048).
func Rand(src Source) BigInteger {
	var z BigInteger
	for i := range z {
		z[i] = src.Uint64()
	}
	z[NumLimbs-1] = 0
	return z
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand. It is safe for
// concurrent use.
func NewCryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error and crashes the program
	// irrecoverably if the system source fails.
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
