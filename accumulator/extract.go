package accumulator

import (
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/consensys/gnark/logger"
)

// ExtractByteSize is the size of an extraction of n powers:
// [hash][τⁱ]₁ × n | [τⁱ]₂ × n | α[τⁱ]₁ × n | β[τⁱ]₁ × n | [β]₂, all compressed
func ExtractByteSize(n int) int64 {
	g1, g2 := int64(parameters.G1CompressedByteSize), int64(parameters.G2CompressedByteSize)
	return parameters.HashSize + int64(n)*(3*g1+g2) + g2
}

// Extract copies the chain hash and the first n powers of every vector of the
// accumulator in src to dst, compressed. n is at most 2ᴾ.
func Extract(src io.ReaderAt, dst io.WriterAt, p *parameters.CeremonyParameters, n int, c parameters.UseCompression, check parameters.CheckForCorrectness) error {
	log := logger.Logger().With().Str("op", "extract").Int("n", n).Logger()
	if n < 1 || n > p.TauPowersLength {
		return fmt.Errorf("%w: can't extract %d powers out of %d", parameters.ErrOutOfRange, n, p.TauPowersLength)
	}
	hash, err := ReadHash(src)
	if err != nil {
		return err
	}
	if _, err := dst.WriteAt(hash, 0); err != nil {
		return err
	}

	g1, g2 := int64(parameters.G1CompressedByteSize), int64(parameters.G2CompressedByteSize)
	N := int64(n)
	tauG1Offset := int64(parameters.HashSize)
	tauG2Offset := tauG1Offset + N*g1
	alphaOffset := tauG2Offset + N*g2
	betaOffset := alphaOffset + N*g1
	betaG2Offset := betaOffset + N*g1

	acc := Empty(p)
	for start := 0; start < n; start += p.BatchSize {
		count := window(start, p.BatchSize, n)
		if err := acc.ReadChunk(start, count, c, check, src); err != nil {
			return err
		}
		var buf []byte
		for i := range acc.TauPowersG1 {
			buf = append(buf, common.EncodeG1(&acc.TauPowersG1[i], parameters.Compressed)...)
		}
		if _, err := dst.WriteAt(buf, tauG1Offset+int64(start)*g1); err != nil {
			return err
		}
		buf = buf[:0]
		for i := range acc.TauPowersG2 {
			buf = append(buf, common.EncodeG2(&acc.TauPowersG2[i], parameters.Compressed)...)
		}
		if _, err := dst.WriteAt(buf, tauG2Offset+int64(start)*g2); err != nil {
			return err
		}
		buf = buf[:0]
		for i := range acc.AlphaTauPowersG1 {
			buf = append(buf, common.EncodeG1(&acc.AlphaTauPowersG1[i], parameters.Compressed)...)
		}
		if _, err := dst.WriteAt(buf, alphaOffset+int64(start)*g1); err != nil {
			return err
		}
		buf = buf[:0]
		for i := range acc.BetaTauPowersG1 {
			buf = append(buf, common.EncodeG1(&acc.BetaTauPowersG1[i], parameters.Compressed)...)
		}
		if _, err := dst.WriteAt(buf, betaOffset+int64(start)*g1); err != nil {
			return err
		}
		if start == 0 {
			if _, err := dst.WriteAt(common.EncodeG2(&acc.BetaG2, parameters.Compressed), betaG2Offset); err != nil {
				return err
			}
		}
		log.Debug().Int("start", start).Int("count", count).Msg("chunk extracted")
	}
	log.Info().Msg("powers extracted")
	return nil
}
