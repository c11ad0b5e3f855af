package accumulator

import (
	"io"

	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/consensys/gnark/logger"
)

// Decompress rewrites the accumulator region of a compressed response to dst
// uncompressed, so it can serve as the next challenge. The header hash and the
// public key are not copied.
func Decompress(src io.ReaderAt, dst io.WriterAt, p *parameters.CeremonyParameters, check parameters.CheckForCorrectness) error {
	log := logger.Logger().With().Str("op", "decompress").Logger()
	acc := Empty(p)
	for start := 0; start < p.TauPowersG1Length; start += p.BatchSize {
		count := window(start, p.BatchSize, p.TauPowersG1Length)
		if err := acc.ReadChunk(start, count, parameters.Compressed, check, src); err != nil {
			return err
		}
		if err := acc.WriteChunk(start, parameters.Uncompressed, dst); err != nil {
			return err
		}
		log.Debug().Int("start", start).Int("count", count).Msg("chunk decompressed")
	}
	return nil
}
