package bigint

import (
	"math/rand"
	"testing"

	"github.com/agbru/fpcore/internal/bigint/mocks"
	"github.com/golang/mock/gomock"
)

func TestRand_DrawsEveryLimbAndClearsTop(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	src := mocks.NewMockSource(ctrl)
	var next uint64
	src.EXPECT().Uint64().DoAndReturn(func() uint64 {
		next++
		return next
	}).Times(NumLimbs)

	z := Rand(src)
	for i := 0; i < NumLimbs-1; i++ {
		if z[i] != uint64(i+1) {
			t.Errorf("limb %d = %d, want %d", i, z[i], i+1)
		}
	}
	if z[NumLimbs-1] != 0 {
		t.Errorf("top limb = %d, want 0", z[NumLimbs-1])
	}
}

func TestRand_TopLimbAlwaysZero(t *testing.T) {
	t.Parallel()
	sources := map[string]Source{
		"math/rand": rand.New(rand.NewSource(42)),
		"crypto":    NewCryptoSource(),
	}

	for name, src := range sources {
		src := src
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			for i := 0; i < 500; i++ {
				z := Rand(src)
				if z[NumLimbs-1] != 0 {
					t.Fatalf("sample %d: top limb = %#x", i, z[NumLimbs-1])
				}
				if z.NumBits() > RandomBits {
					t.Fatalf("sample %d: %d bits exceeds %d", i, z.NumBits(), RandomBits)
				}
			}
		})
	}
}

func TestRand_Deterministic(t *testing.T) {
	t.Parallel()
	a := Rand(rand.New(rand.NewSource(7)))
	b := Rand(rand.New(rand.NewSource(7)))
	if !a.Equal(&b) {
		t.Error("same seed should produce the same value")
	}
	c := Rand(rand.New(rand.NewSource(8)))
	if a.Equal(&c) {
		t.Error("different seeds produced the same value")
	}
}
