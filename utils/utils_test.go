package utils

import (
	"bytes"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowers(t *testing.T) {
	var a, b fr.Element
	a.SetUint64(3)
	b.SetUint64(2)
	p := Powers(a, b, 5)
	require.Len(t, p, 5)
	for i, want := range []uint64{3, 6, 12, 24, 48} {
		var w fr.Element
		w.SetUint64(want)
		assert.True(t, p[i].Equal(&w), "index %d", i)
	}
	assert.Nil(t, Powers(a, b, 0))
}

func TestPow(t *testing.T) {
	var b, want fr.Element
	b.SetUint64(14)
	want.SetUint64(14 * 14 * 14)
	got := Pow(b, 3)
	assert.True(t, got.Equal(&want))

	got = Pow(b, 0)
	assert.True(t, got.IsOne())
}

func TestRandomScalar(t *testing.T) {
	seed := bytes.Repeat([]byte{0xAB}, 128)
	s1, err := RandomScalar(bytes.NewReader(seed))
	require.NoError(t, err)
	s2, err := RandomScalar(bytes.NewReader(seed))
	require.NoError(t, err)
	assert.True(t, s1.Equal(&s2))
	assert.False(t, s1.IsZero())

	// zero is rejected and the next 64 bytes are used
	zeros := append(make([]byte, 64), seed[:64]...)
	s3, err := RandomScalar(bytes.NewReader(zeros))
	require.NoError(t, err)
	assert.True(t, s3.Equal(&s1))

	_, err = RandomScalar(bytes.NewReader(seed[:10]))
	assert.Error(t, err)
}
