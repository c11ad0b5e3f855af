package common

import (
	"bytes"
	"fmt"

	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// most significant bit of the first byte flags a compressed point
const maskCompressed = 0b100 << 5

// checkLength rejects buffers whose size or compression flag disagree with the
// encoding the caller expects, so a compressed point is never silently read
// from an uncompressed file and the other way around
func checkLength(buf []byte, size int64, c parameters.UseCompression) error {
	if int64(len(buf)) != size {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, size, len(buf))
	}
	if (buf[0]&maskCompressed != 0) != bool(c) {
		return fmt.Errorf("%w: expected a %s point", ErrInvalidEncoding, c)
	}
	return nil
}

// DecodeG1 reads a single G₁ point. With check enabled the point must be on the
// curve, in the r-torsion subgroup and different from the identity.
func DecodeG1(buf []byte, c parameters.UseCompression, check parameters.CheckForCorrectness) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	size := int64(bls12381.SizeOfG1AffineUncompressed)
	if c {
		size = bls12381.SizeOfG1AffineCompressed
	}
	if err := checkLength(buf, size, c); err != nil {
		return p, err
	}
	dec := bls12381.NewDecoder(bytes.NewReader(buf), bls12381.NoSubgroupChecks())
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if check {
		if err := ValidateG1(&p); err != nil {
			return p, err
		}
	}
	return p, nil
}

// DecodeG2 reads a single G₂ point, see DecodeG1
func DecodeG2(buf []byte, c parameters.UseCompression, check parameters.CheckForCorrectness) (bls12381.G2Affine, error) {
	var p bls12381.G2Affine
	size := int64(bls12381.SizeOfG2AffineUncompressed)
	if c {
		size = bls12381.SizeOfG2AffineCompressed
	}
	if err := checkLength(buf, size, c); err != nil {
		return p, err
	}
	dec := bls12381.NewDecoder(bytes.NewReader(buf), bls12381.NoSubgroupChecks())
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if check {
		if err := ValidateG2(&p); err != nil {
			return p, err
		}
	}
	return p, nil
}

func ValidateG1(p *bls12381.G1Affine) error {
	if p.IsInfinity() {
		return ErrPointAtInfinity
	}
	if !p.IsOnCurve() {
		return ErrNotOnCurve
	}
	if !p.IsInSubGroup() {
		return ErrNotInSubgroup
	}
	return nil
}

func ValidateG2(p *bls12381.G2Affine) error {
	if p.IsInfinity() {
		return ErrPointAtInfinity
	}
	if !p.IsOnCurve() {
		return ErrNotOnCurve
	}
	if !p.IsInSubGroup() {
		return ErrNotInSubgroup
	}
	return nil
}

// EncodeG1 returns the compressed or uncompressed encoding of p
func EncodeG1(p *bls12381.G1Affine, c parameters.UseCompression) []byte {
	if c {
		b := p.Bytes()
		return b[:]
	}
	b := p.RawBytes()
	return b[:]
}

// EncodeG2 returns the compressed or uncompressed encoding of p
func EncodeG2(p *bls12381.G2Affine, c parameters.UseCompression) []byte {
	if c {
		b := p.Bytes()
		return b[:]
	}
	b := p.RawBytes()
	return b[:]
}
