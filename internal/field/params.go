package field

import "github.com/agbru/fpcore/internal/bigint"

// Modulus is the 2048-bit safe prime of the RFC 3526 group 14 MODP group.
// Its top limb is zero, so every reduced element keeps the BigInteger
// headroom limb clear and doubling a reduced element never overflows.
var Modulus = bigint.New([bigint.NumLimbs]uint64{
	0xffffffffffffffff, 0x15728e5a8aacaa68, 0x15d2261898fa0510,
	0x3995497cea956ae5, 0xde2bcbf695581718, 0xb5c55df06f4c52c9,
	0x9b2783a2ec07a28f, 0xe39e772c180e8603, 0x32905e462e36ce3b,
	0xf1746c08ca18217c, 0x670c354e4abc9804, 0x9ed529077096966d,
	0x1c62f356208552bb, 0x83655d23dca3ad96, 0x69163fa8fd24cf5f,
	0x98da48361c55d39a, 0xc2007cb8a163bf05, 0x49286651ece45b3d,
	0xae9f24117c4b1fe6, 0xee386bfb5a899fa5, 0x0bff5cb6f406b7ed,
	0xf44c42e9a637ed6b, 0xe485b576625e7ec6, 0x4fe1356d6d51c245,
	0x302b0a6df25f1437, 0xef9519b3cd3a431b, 0x514a08798e3404dd,
	0x020bbea63b139b22, 0x29024e088a67cc74, 0xc4c6628b80dc1cd1,
	0xc90fdaa22168c234, 0xffffffffffffffff, 0x0000000000000000,
})

// Montgomery constants for R = 2^2112.
var (
	// inv is -Modulus^-1 mod 2^64.
	inv = negInverse64(Modulus[0])
	// rModP is R mod Modulus, the Montgomery form of 1.
	rModP = doubleMod(bigint.FromUint64(1), bigint.Bits)
	// r2ModP is R^2 mod Modulus, used to enter Montgomery form.
	r2ModP = doubleMod(rModP, bigint.Bits)
	// pMinus2 is the Fermat exponent used by Inverse.
	pMinus2 = func() bigint.BigInteger {
		e, two := Modulus, bigint.FromUint64(2)
		e.SubNoBorrow(&two)
		return e
	}()
)

// negInverse64 returns -x^-1 mod 2^64 for odd x by Newton iteration; each
// step doubles the number of correct low bits.
func negInverse64(x uint64) uint64 {
	y := x // correct to 3 bits for odd x
	for i := 0; i < 5; i++ {
		y *= 2 - x*y
	}
	return -y
}

// doubleMod returns x * 2^n mod Modulus for x < Modulus.
func doubleMod(x bigint.BigInteger, n int) bigint.BigInteger {
	for i := 0; i < n; i++ {
		x.Mul2()
		if x.Cmp(&Modulus) >= 0 {
			x.SubNoBorrow(&Modulus)
		}
	}
	return x
}
