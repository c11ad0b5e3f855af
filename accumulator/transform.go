package accumulator

import (
	"io"
	"math/big"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/keypair"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/bnbchain/ptau-setup/utils"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/logger"
)

// Transform multiplies every power of the accumulator read from src by the
// secrets of sk and writes the result to dst, possibly changing the encoding.
// The header hash of dst is left to the caller. Chunks are read and written
// in index order; only the arithmetic inside a chunk runs in parallel.
func Transform(src io.ReaderAt, dst io.WriterAt, p *parameters.CeremonyParameters, inC, outC parameters.UseCompression, check parameters.CheckForCorrectness, sk *keypair.PrivateKey) error {
	log := logger.Logger().With().Str("op", "transform").Stringer("input", inC).Stringer("output", outC).Logger()
	acc := Empty(p)
	for start := 0; start < p.TauPowersG1Length; start += p.BatchSize {
		count := window(start, p.BatchSize, p.TauPowersG1Length)
		if err := acc.ReadChunk(start, count, inC, check, src); err != nil {
			return err
		}
		if err := acc.apply(start, sk); err != nil {
			return err
		}
		if err := acc.WriteChunk(start, outC, dst); err != nil {
			return err
		}
		log.Debug().Int("start", start).Int("count", count).Msg("chunk transformed")
	}
	log.Info().Int("power", p.Power).Msg("accumulator transformed")
	return nil
}

// apply multiplies the window starting at start: [τʲ]₁ and [τʲ]₂ by τʲ, α[τʲ]₁
// by α·τʲ, β[τʲ]₁ by β·τʲ and, on the first window only, [β]₂ by β
func (acc *BatchedAccumulator) apply(start int, sk *keypair.PrivateKey) error {
	nbG2 := len(acc.TauPowersG2)
	err := common.Parallelize(len(acc.TauPowersG1), func(from, to int) error {
		// one exponentiation per range, successive multiplications within
		first := utils.Pow(sk.Tau, uint64(start+from))
		scalars := utils.Powers(first, sk.Tau, to-from)

		var bi, ai, bei big.Int
		var alphaTau, betaTau fr.Element
		for k, i := 0, from; i < to; k, i = k+1, i+1 {
			scalars[k].BigInt(&bi)
			acc.TauPowersG1[i].ScalarMultiplication(&acc.TauPowersG1[i], &bi)
			if i >= nbG2 {
				continue
			}
			acc.TauPowersG2[i].ScalarMultiplication(&acc.TauPowersG2[i], &bi)

			alphaTau.Mul(&scalars[k], &sk.Alpha)
			alphaTau.BigInt(&ai)
			acc.AlphaTauPowersG1[i].ScalarMultiplication(&acc.AlphaTauPowersG1[i], &ai)

			betaTau.Mul(&scalars[k], &sk.Beta)
			betaTau.BigInt(&bei)
			acc.BetaTauPowersG1[i].ScalarMultiplication(&acc.BetaTauPowersG1[i], &bei)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if start == 0 {
		acc.BetaG2.ScalarMultiplication(&acc.BetaG2, utils.BigInt(&sk.Beta))
	}
	return nil
}
