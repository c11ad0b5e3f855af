package common

import (
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// SameRatio checks that (a₁, b₁) in G₁ and (a₂, b₂) in G₂ are related by the
// same exponent, i.e. e(a₁, b₂) = e(b₁, a₂)
func SameRatio(a1, b1 bls12381.G1Affine, a2, b2 bls12381.G2Affine) bool {
	var nb1 bls12381.G1Affine
	nb1.Neg(&b1)
	res, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{a1, nb1},
		[]bls12381.G2Affine{b2, a2})
	if err != nil {
		panic(err)
	}
	return res
}

func randomize(r []fr.Element) error {
	return Parallelize(len(r), func(start, end int) error {
		for i := start; i < end; i++ {
			if _, err := r[i].SetRandom(); err != nil {
				return err
			}
		}
		return nil
	})
}

// PowerPairsG1 compresses consecutive pairs (vᵢ, vᵢ₊₁) into a single pair
// (Σ rᵢvᵢ, Σ rᵢvᵢ₊₁) with fresh random rᵢ. If every vᵢ₊₁ = x·vᵢ, the two
// results share the ratio x; otherwise they don't with overwhelming probability.
func PowerPairsG1(v []bls12381.G1Affine) (bls12381.G1Affine, bls12381.G1Affine, error) {
	var L1, L2 bls12381.G1Affine
	n := len(v)
	if n < 2 {
		return L1, L2, nil
	}
	r := make([]fr.Element, n-1)
	if err := randomize(r); err != nil {
		return L1, L2, err
	}
	if _, err := L1.MultiExp(v[:n-1], r, ecc.MultiExpConfig{}); err != nil {
		return L1, L2, err
	}
	if _, err := L2.MultiExp(v[1:], r, ecc.MultiExpConfig{}); err != nil {
		return L1, L2, err
	}
	return L1, L2, nil
}

// PowerPairsG2 is PowerPairsG1 for G₂ points
func PowerPairsG2(v []bls12381.G2Affine) (bls12381.G2Affine, bls12381.G2Affine, error) {
	var L1, L2 bls12381.G2Affine
	n := len(v)
	if n < 2 {
		return L1, L2, nil
	}
	r := make([]fr.Element, n-1)
	if err := randomize(r); err != nil {
		return L1, L2, err
	}
	if _, err := L1.MultiExp(v[:n-1], r, ecc.MultiExpConfig{}); err != nil {
		return L1, L2, err
	}
	if _, err := L2.MultiExp(v[1:], r, ecc.MultiExpConfig{}); err != nil {
		return L1, L2, err
	}
	return L1, L2, nil
}
