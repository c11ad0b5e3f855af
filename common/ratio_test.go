package common

import (
	"sync/atomic"
	"testing"

	"github.com/bnbchain/ptau-setup/internal/testutil"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameRatio(t *testing.T) {
	assert.True(t, SameRatio(testutil.G1(3), testutil.G1(21), testutil.G2(5), testutil.G2(35)))
	assert.False(t, SameRatio(testutil.G1(3), testutil.G1(21), testutil.G2(5), testutil.G2(36)))
}

func TestPowerPairs(t *testing.T) {
	g1 := make([]bls12381.G1Affine, 10)
	g2 := make([]bls12381.G2Affine, 10)
	k := int64(1)
	for i := range g1 {
		g1[i] = testutil.G1(k)
		g2[i] = testutil.G2(k)
		k *= 3
	}

	L1, L2, err := PowerPairsG1(g1)
	require.NoError(t, err)
	assert.True(t, SameRatio(L1, L2, testutil.G2(1), testutil.G2(3)))

	M1, M2, err := PowerPairsG2(g2)
	require.NoError(t, err)
	assert.True(t, SameRatio(testutil.G1(1), testutil.G1(3), M1, M2))

	g1[6] = testutil.G1(1)
	L1, L2, err = PowerPairsG1(g1)
	require.NoError(t, err)
	assert.False(t, SameRatio(L1, L2, testutil.G2(1), testutil.G2(3)))
}

func TestParallelize(t *testing.T) {
	for _, n := range []int{1, 7, 1000} {
		seen := make([]int32, n)
		var calls int32
		err := Parallelize(n, func(start, end int) error {
			atomic.AddInt32(&calls, 1)
			for i := start; i < end; i++ {
				seen[i]++
			}
			return nil
		}, 4)
		require.NoError(t, err)
		for i := range seen {
			assert.Equal(t, int32(1), seen[i], "index %d", i)
		}
		assert.LessOrEqual(t, int(calls), 4)
	}

	err := Parallelize(10, func(start, end int) error {
		if start == 0 {
			return ErrNotOnCurve
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrNotOnCurve)
}
