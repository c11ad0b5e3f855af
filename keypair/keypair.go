// Package keypair implements the per-round proof of knowledge of the toxic
// parameters τ, α and β. A public key is bound to the hash of the accumulator
// it was computed against and can be verified without learning the secrets.
package keypair

import (
	"errors"
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/bnbchain/ptau-setup/utils"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"
)

// Personalization bytes separate the three proofs of knowledge
const (
	PersonalizationTau   byte = 0
	PersonalizationAlpha byte = 1
	PersonalizationBeta  byte = 2
)

// G2DST is the domain separation tag used to hash into G₂
const G2DST = "PTAU_BLS12381G2_XMD:SHA-256_SSWU_RO_"

var ErrInvalidDigest = errors.New("digest must be 64 bytes")

// PrivateKey holds the toxic parameters of a single round. It must never be
// persisted and is destroyed right after the transformation.
type PrivateKey struct {
	Tau, Alpha, Beta fr.Element
}

// Destroy overwrites the secrets
func (sk *PrivateKey) Destroy() {
	sk.Tau.SetZero()
	sk.Alpha.SetZero()
	sk.Beta.SetZero()
}

// PublicKey proves knowledge of τ, α, β: each G₁ pair is (s, sˣ) for a fresh
// random s, and each G₂ point is x times a base hashed from the pair and the
// accumulator digest.
type PublicKey struct {
	TauG1   [2]bls12381.G1Affine
	AlphaG1 [2]bls12381.G1Affine
	BetaG1  [2]bls12381.G1Affine
	TauG2   bls12381.G2Affine
	AlphaG2 bls12381.G2Affine
	BetaG2  bls12381.G2Affine
}

// Generate samples the toxic parameters from rng and computes the matching
// public key for the accumulator whose hash is digest
func Generate(rng io.Reader, digest []byte) (*PublicKey, *PrivateKey, error) {
	var sk PrivateKey
	var err error
	if sk.Tau, err = utils.RandomScalar(rng); err != nil {
		return nil, nil, err
	}
	if sk.Alpha, err = utils.RandomScalar(rng); err != nil {
		return nil, nil, err
	}
	if sk.Beta, err = utils.RandomScalar(rng); err != nil {
		return nil, nil, err
	}
	pk, err := sk.PublicKey(rng, digest)
	if err != nil {
		return nil, nil, err
	}
	return pk, &sk, nil
}

// PublicKey derives the public key of sk. The G₁ bases are sampled from rng.
func (sk *PrivateKey) PublicKey(rng io.Reader, digest []byte) (*PublicKey, error) {
	if len(digest) != parameters.HashSize {
		return nil, ErrInvalidDigest
	}
	var pk PublicKey
	var err error
	if pk.TauG1, pk.TauG2, err = proveKnowledge(rng, digest, &sk.Tau, PersonalizationTau); err != nil {
		return nil, err
	}
	if pk.AlphaG1, pk.AlphaG2, err = proveKnowledge(rng, digest, &sk.Alpha, PersonalizationAlpha); err != nil {
		return nil, err
	}
	if pk.BetaG1, pk.BetaG2, err = proveKnowledge(rng, digest, &sk.Beta, PersonalizationBeta); err != nil {
		return nil, err
	}
	return &pk, nil
}

func proveKnowledge(rng io.Reader, digest []byte, x *fr.Element, personalization byte) ([2]bls12381.G1Affine, bls12381.G2Affine, error) {
	var pair [2]bls12381.G1Affine
	var xG2 bls12381.G2Affine
	_, _, g1, _ := bls12381.Generators()

	// sample a random g^s, never the identity since s ≠ 0
	s, err := utils.RandomScalar(rng)
	if err != nil {
		return pair, xG2, err
	}
	pair[0].ScalarMultiplication(&g1, utils.BigInt(&s))

	// compute g^{s·x}
	xBi := utils.BigInt(x)
	pair[1].ScalarMultiplication(&pair[0], xBi)

	sp, err := ComputeG2S(digest, pair[0], pair[1], personalization)
	if err != nil {
		return pair, xG2, err
	}
	xG2.ScalarMultiplication(&sp, xBi)
	return pair, xG2, nil
}

// ComputeG2S hashes BLAKE2b(personalization ‖ digest ‖ gˢ ‖ gˢˣ) into G₂. The
// contributor and every verifier must derive the same base.
func ComputeG2S(digest []byte, s, sx bls12381.G1Affine, personalization byte) (bls12381.G2Affine, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	rawS, rawSX := s.RawBytes(), sx.RawBytes()
	h.Write([]byte{personalization})
	h.Write(digest)
	h.Write(rawS[:])
	h.Write(rawSX[:])
	return bls12381.HashToG2(h.Sum(nil), []byte(G2DST))
}

// G2Bases recomputes the three G₂ bases the public key was derived from
func (pk *PublicKey) G2Bases(digest []byte) (tau, alpha, beta bls12381.G2Affine, err error) {
	if len(digest) != parameters.HashSize {
		err = ErrInvalidDigest
		return
	}
	if tau, err = ComputeG2S(digest, pk.TauG1[0], pk.TauG1[1], PersonalizationTau); err != nil {
		return
	}
	if alpha, err = ComputeG2S(digest, pk.AlphaG1[0], pk.AlphaG1[1], PersonalizationAlpha); err != nil {
		return
	}
	beta, err = ComputeG2S(digest, pk.BetaG1[0], pk.BetaG1[1], PersonalizationBeta)
	return
}

// Verify checks the three proofs of knowledge e(s, x·G₂ˢ) = e(sˣ, G₂ˢ) against
// the accumulator digest the key claims to be bound to
func (pk *PublicKey) Verify(digest []byte) error {
	tauSP, alphaSP, betaSP, err := pk.G2Bases(digest)
	if err != nil {
		return err
	}
	checks := []struct {
		name string
		g1   [2]bls12381.G1Affine
		sp   bls12381.G2Affine
		g2   bls12381.G2Affine
	}{
		{"τ", pk.TauG1, tauSP, pk.TauG2},
		{"α", pk.AlphaG1, alphaSP, pk.AlphaG2},
		{"β", pk.BetaG1, betaSP, pk.BetaG2},
	}
	for _, c := range checks {
		if c.g1[0].IsInfinity() || c.g1[1].IsInfinity() {
			return fmt.Errorf("%w: public key of %s has a point at infinity", common.ErrRatioCheckFailed, c.name)
		}
		if !common.SameRatio(c.g1[0], c.g1[1], c.sp, c.g2) {
			return fmt.Errorf("%w: couldn't verify knowledge of %s", common.ErrRatioCheckFailed, c.name)
		}
	}
	return nil
}
