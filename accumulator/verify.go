package accumulator

import (
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/keypair"
	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark/logger"
)

// VerifyTransform audits a contribution: pk must prove knowledge of τ, α, β
// for the accumulator whose hash is digest, after must be before updated with
// exactly those secrets, and every vector of after must be a geometric
// progression in the same τ.
func VerifyTransform(before, after io.ReaderAt, pk *keypair.PublicKey, digest []byte, p *parameters.CeremonyParameters, inC, outC parameters.UseCompression, checkIn, checkOut parameters.CheckForCorrectness) error {
	log := logger.Logger().With().Str("op", "verify").Logger()

	// proofs of knowledge
	tauSP, alphaSP, betaSP, err := pk.G2Bases(digest)
	if err != nil {
		return err
	}
	if err := pk.Verify(digest); err != nil {
		return err
	}
	log.Debug().Msg("proofs of knowledge verified")

	// the first points of both accumulators
	prev, next := Empty(p), Empty(p)
	if err := prev.ReadChunk(0, 2, inC, checkIn, before); err != nil {
		return fmt.Errorf("before: %w", err)
	}
	if err := next.ReadChunk(0, 2, outC, checkOut, after); err != nil {
		return fmt.Errorf("after: %w", err)
	}

	_, _, g1, g2 := bls12381.Generators()
	if !next.TauPowersG1[0].Equal(&g1) {
		return fmt.Errorf("%w: [τ⁰]₁ is not the generator", common.ErrRatioCheckFailed)
	}
	if !next.TauPowersG2[0].Equal(&g2) {
		return fmt.Errorf("%w: [τ⁰]₂ is not the generator", common.ErrRatioCheckFailed)
	}

	// the update used the secrets of the public key
	if !common.SameRatio(prev.TauPowersG1[1], next.TauPowersG1[1], tauSP, pk.TauG2) {
		return fmt.Errorf("%w: [τ]₁ wasn't updated with τ", common.ErrRatioCheckFailed)
	}
	if !common.SameRatio(prev.AlphaTauPowersG1[0], next.AlphaTauPowersG1[0], alphaSP, pk.AlphaG2) {
		return fmt.Errorf("%w: [α]₁ wasn't updated with α", common.ErrRatioCheckFailed)
	}
	if !common.SameRatio(prev.BetaTauPowersG1[0], next.BetaTauPowersG1[0], betaSP, pk.BetaG2) {
		return fmt.Errorf("%w: [β]₁ wasn't updated with β", common.ErrRatioCheckFailed)
	}
	if !common.SameRatio(prev.BetaTauPowersG1[0], next.BetaTauPowersG1[0], prev.BetaG2, next.BetaG2) {
		return fmt.Errorf("%w: [β]₂ wasn't updated with β", common.ErrRatioCheckFailed)
	}
	if !common.SameRatio(prev.TauPowersG1[1], next.TauPowersG1[1], prev.TauPowersG2[1], next.TauPowersG2[1]) {
		return fmt.Errorf("%w: [τ]₂ wasn't updated with τ", common.ErrRatioCheckFailed)
	}
	log.Debug().Msg("update ratios verified")

	// [τ⁰]₂, [τ¹]₂ and [τ⁰]₁, [τ¹]₁ anchor the power checks of every chunk
	tauG2 := [2]bls12381.G2Affine{next.TauPowersG2[0], next.TauPowersG2[1]}
	tauG1 := [2]bls12381.G1Affine{next.TauPowersG1[0], next.TauPowersG1[1]}

	// consecutive chunks overlap by one point so every pair is covered
	for start := 0; ; start += p.BatchSize - 1 {
		count := window(start, p.BatchSize, p.TauPowersG1Length)
		if err := next.ReadChunk(start, count, outC, checkOut, after); err != nil {
			return fmt.Errorf("after: %w", err)
		}
		if err := next.checkPowers(tauG1, tauG2); err != nil {
			return fmt.Errorf("chunk [%d, %d): %w", start, start+count, err)
		}
		log.Debug().Int("start", start).Int("count", count).Msg("chunk verified")
		if start+count >= p.TauPowersG1Length {
			break
		}
	}
	log.Info().Msg("contribution verified")
	return nil
}

// checkPowers verifies that every vector of the window is a geometric
// progression of ratio τ, given [1]₁, [τ]₁ and [1]₂, [τ]₂
func (acc *BatchedAccumulator) checkPowers(tauG1 [2]bls12381.G1Affine, tauG2 [2]bls12381.G2Affine) error {
	g1Vectors := []struct {
		name   string
		points []bls12381.G1Affine
	}{
		{"[τⁱ]₁", acc.TauPowersG1},
		{"α[τⁱ]₁", acc.AlphaTauPowersG1},
		{"β[τⁱ]₁", acc.BetaTauPowersG1},
	}
	for _, v := range g1Vectors {
		if len(v.points) < 2 {
			continue
		}
		L1, L2, err := common.PowerPairsG1(v.points)
		if err != nil {
			return err
		}
		if !common.SameRatio(L1, L2, tauG2[0], tauG2[1]) {
			return fmt.Errorf("%w: %s are not powers of τ", common.ErrRatioCheckFailed, v.name)
		}
	}
	if len(acc.TauPowersG2) >= 2 {
		L1, L2, err := common.PowerPairsG2(acc.TauPowersG2)
		if err != nil {
			return err
		}
		if !common.SameRatio(tauG1[0], tauG1[1], L1, L2) {
			return fmt.Errorf("%w: [τⁱ]₂ are not powers of τ", common.ErrRatioCheckFailed)
		}
	}
	return nil
}
