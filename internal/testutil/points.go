// Package testutil builds curve points with known discrete logs, and invalid
// ones, for tests.
package testutil

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// G1 returns [k]₁
func G1(k int64) bls12381.G1Affine {
	_, _, g1, _ := bls12381.Generators()
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1, big.NewInt(k))
	return p
}

// G2 returns [k]₂
func G2(k int64) bls12381.G2Affine {
	_, _, _, g2 := bls12381.Generators()
	var p bls12381.G2Affine
	p.ScalarMultiplication(&g2, big.NewInt(k))
	return p
}

// G1Scalar returns [s]₁
func G1Scalar(s fr.Element) bls12381.G1Affine {
	_, _, g1, _ := bls12381.Generators()
	var sBi big.Int
	s.BigInt(&sBi)
	var p bls12381.G1Affine
	p.ScalarMultiplication(&g1, &sBi)
	return p
}

// NonSubgroupG1 returns a point on the curve y² = x³ + 4 which is not in the
// r-torsion subgroup
func NonSubgroupG1() bls12381.G1Affine {
	var b fp.Element
	b.SetUint64(4)
	var p bls12381.G1Affine
	for x := uint64(1); ; x++ {
		var rhs, y fp.Element
		p.X.SetUint64(x)
		rhs.Square(&p.X).Mul(&rhs, &p.X).Add(&rhs, &b)
		if y.Sqrt(&rhs) == nil {
			continue
		}
		p.Y = y
		if p.IsOnCurve() && !p.IsInSubGroup() {
			return p
		}
	}
}

// OffCurveG1 returns a pair of coordinates that doesn't satisfy the curve equation
func OffCurveG1() bls12381.G1Affine {
	_, _, g1, _ := bls12381.Generators()
	var one fp.Element
	one.SetOne()
	p := g1
	p.Y.Add(&p.Y, &one)
	return p
}
