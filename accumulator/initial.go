package accumulator

import (
	"io"

	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark/logger"
)

// GenerateInitial writes the genesis accumulator to dst: the blank hash
// followed by every power equal to its generator, i.e. τ = α = β = 1
func GenerateInitial(dst io.WriterAt, p *parameters.CeremonyParameters, c parameters.UseCompression) error {
	log := logger.Logger().With().Str("op", "generate").Stringer("encoding", c).Logger()
	if err := WriteHash(dst, BlankHash()); err != nil {
		return err
	}

	_, _, g1, g2 := bls12381.Generators()
	acc := Empty(p)
	acc.BetaG2 = g2
	for start := 0; start < p.TauPowersG1Length; start += p.BatchSize {
		n1 := window(start, p.BatchSize, p.TauPowersG1Length)
		n2 := window(start, p.BatchSize, p.TauPowersLength)
		acc.TauPowersG1 = fillG1(acc.TauPowersG1, n1, g1)
		acc.TauPowersG2 = fillG2(acc.TauPowersG2, n2, g2)
		acc.AlphaTauPowersG1 = fillG1(acc.AlphaTauPowersG1, n2, g1)
		acc.BetaTauPowersG1 = fillG1(acc.BetaTauPowersG1, n2, g1)
		if err := acc.WriteChunk(start, c, dst); err != nil {
			return err
		}
		log.Debug().Int("start", start).Int("count", n1).Msg("chunk written")
	}
	log.Info().Int("power", p.Power).Msg("genesis accumulator written")
	return nil
}

func fillG1(points []bls12381.G1Affine, n int, g bls12381.G1Affine) []bls12381.G1Affine {
	if cap(points) < n {
		points = make([]bls12381.G1Affine, n)
	}
	points = points[:n]
	for i := range points {
		points[i] = g
	}
	return points
}

func fillG2(points []bls12381.G2Affine, n int, g bls12381.G2Affine) []bls12381.G2Affine {
	if cap(points) < n {
		points = make([]bls12381.G2Affine, n)
	}
	points = points[:n]
	for i := range points {
		points[i] = g
	}
	return points
}
