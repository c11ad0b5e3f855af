package common

import (
	"testing"

	"github.com/bnbchain/ptau-setup/internal/testutil"
	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripG1(t *testing.T) {
	for _, k := range []int64{1, 2, 7, 1 << 40} {
		p := testutil.G1(k)
		for _, c := range []parameters.UseCompression{parameters.Compressed, parameters.Uncompressed} {
			buf := EncodeG1(&p, c)
			q, err := DecodeG1(buf, c, parameters.Check)
			require.NoError(t, err)
			assert.True(t, p.Equal(&q))
			assert.Equal(t, buf, EncodeG1(&q, c))
		}
	}
}

func TestRoundTripG2(t *testing.T) {
	for _, k := range []int64{1, 3, 1 << 33} {
		p := testutil.G2(k)
		for _, c := range []parameters.UseCompression{parameters.Compressed, parameters.Uncompressed} {
			buf := EncodeG2(&p, c)
			q, err := DecodeG2(buf, c, parameters.Check)
			require.NoError(t, err)
			assert.True(t, p.Equal(&q))
			assert.Equal(t, buf, EncodeG2(&q, c))
		}
	}
}

func TestDecodeRejectsWrongLengthAndFlag(t *testing.T) {
	p := testutil.G1(5)
	compressed := EncodeG1(&p, parameters.Compressed)
	raw := EncodeG1(&p, parameters.Uncompressed)

	_, err := DecodeG1(compressed[:47], parameters.Compressed, parameters.NoCheck)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	// right length but wrong flag
	padded := append(append([]byte{}, compressed...), compressed...)
	_, err = DecodeG1(padded, parameters.Uncompressed, parameters.NoCheck)
	assert.ErrorIs(t, err, ErrInvalidEncoding)

	_, err = DecodeG1(raw, parameters.Compressed, parameters.NoCheck)
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestDecodeChecks(t *testing.T) {
	bad := testutil.NonSubgroupG1()
	buf := EncodeG1(&bad, parameters.Uncompressed)

	// accepted as long as nobody asks
	_, err := DecodeG1(buf, parameters.Uncompressed, parameters.NoCheck)
	require.NoError(t, err)

	_, err = DecodeG1(buf, parameters.Uncompressed, parameters.Check)
	assert.ErrorIs(t, err, ErrNotInSubgroup)

	off := testutil.OffCurveG1()
	_, err = DecodeG1(EncodeG1(&off, parameters.Uncompressed), parameters.Uncompressed, parameters.Check)
	assert.ErrorIs(t, err, ErrNotOnCurve)

	var inf1 bls12381.G1Affine
	_, err = DecodeG1(EncodeG1(&inf1, parameters.Compressed), parameters.Compressed, parameters.Check)
	assert.ErrorIs(t, err, ErrPointAtInfinity)
	_, err = DecodeG1(EncodeG1(&inf1, parameters.Compressed), parameters.Compressed, parameters.NoCheck)
	assert.NoError(t, err)

	var inf2 bls12381.G2Affine
	_, err = DecodeG2(EncodeG2(&inf2, parameters.Uncompressed), parameters.Uncompressed, parameters.Check)
	assert.ErrorIs(t, err, ErrPointAtInfinity)
}
