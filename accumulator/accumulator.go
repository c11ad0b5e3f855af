// Package accumulator streams the power vectors of a ceremony between memory
// and a flat challenge or response buffer, one bounded chunk at a time.
package accumulator

import (
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// BatchedAccumulator holds a window [start, start+count) of every power vector.
// Vectors of length L2 are clipped at the end of their section, so a window
// past 2ᴾ only carries [τⁱ]₁. BetaG2 is only meaningful for windows starting
// at 0.
type BatchedAccumulator struct {
	// [τ⁰]₁, [τ¹]₁, …, [τ²ᴺ⁻²]₁
	TauPowersG1 []bls12381.G1Affine
	// [τ⁰]₂, [τ¹]₂, …, [τᴺ⁻¹]₂
	TauPowersG2 []bls12381.G2Affine
	// α[τ⁰]₁, α[τ¹]₁, …, α[τᴺ⁻¹]₁
	AlphaTauPowersG1 []bls12381.G1Affine
	// β[τ⁰]₁, β[τ¹]₁, …, β[τᴺ⁻¹]₁
	BetaTauPowersG1 []bls12381.G1Affine
	// [β]₂
	BetaG2 bls12381.G2Affine

	params *parameters.CeremonyParameters
}

// Empty returns an accumulator with zero-length vectors
func Empty(p *parameters.CeremonyParameters) *BatchedAccumulator {
	return &BatchedAccumulator{params: p}
}

// window returns how many points of a section of the given length fall in
// [start, start+count)
func window(start, count, length int) int {
	if start >= length {
		return 0
	}
	if start+count > length {
		return length - start
	}
	return count
}

// ReadChunk replaces the vectors with the window [start, start+count) read
// from src, and BetaG2 too when start is 0
func (acc *BatchedAccumulator) ReadChunk(start, count int, c parameters.UseCompression, check parameters.CheckForCorrectness, src io.ReaderAt) error {
	p := acc.params
	if count > p.BatchSize {
		return fmt.Errorf("%w: %d points requested, at most %d", common.ErrExhaustedChunkBound, count, p.BatchSize)
	}
	if start < 0 || count < 0 {
		return fmt.Errorf("%w: window [%d, %d)", parameters.ErrOutOfRange, start, start+count)
	}
	var err error
	n1 := window(start, count, p.TauPowersG1Length)
	if acc.TauPowersG1, err = readG1(src, p, parameters.TauG1, start, n1, c, check, acc.TauPowersG1); err != nil {
		return err
	}
	n2 := window(start, count, p.TauPowersLength)
	if acc.TauPowersG2, err = readG2(src, p, parameters.TauG2, start, n2, c, check, acc.TauPowersG2); err != nil {
		return err
	}
	if acc.AlphaTauPowersG1, err = readG1(src, p, parameters.AlphaG1, start, n2, c, check, acc.AlphaTauPowersG1); err != nil {
		return err
	}
	if acc.BetaTauPowersG1, err = readG1(src, p, parameters.BetaG1, start, n2, c, check, acc.BetaTauPowersG1); err != nil {
		return err
	}
	if start == 0 {
		points, err := readG2(src, p, parameters.BetaG2, 0, 1, c, check, nil)
		if err != nil {
			return err
		}
		acc.BetaG2 = points[0]
	}
	return nil
}

// WriteChunk writes the current vectors to dst at the window starting at
// start, and BetaG2 too when start is 0
func (acc *BatchedAccumulator) WriteChunk(start int, c parameters.UseCompression, dst io.WriterAt) error {
	p := acc.params
	if err := writeG1(dst, p, parameters.TauG1, start, acc.TauPowersG1, c); err != nil {
		return err
	}
	if err := writeG2(dst, p, parameters.TauG2, start, acc.TauPowersG2, c); err != nil {
		return err
	}
	if err := writeG1(dst, p, parameters.AlphaG1, start, acc.AlphaTauPowersG1, c); err != nil {
		return err
	}
	if err := writeG1(dst, p, parameters.BetaG1, start, acc.BetaTauPowersG1, c); err != nil {
		return err
	}
	if start == 0 {
		return writeG2(dst, p, parameters.BetaG2, 0, []bls12381.G2Affine{acc.BetaG2}, c)
	}
	return nil
}

// readSection reads n encoded points of a section starting at index start
func readSection(src io.ReaderAt, p *parameters.CeremonyParameters, e parameters.ElementType, start, n int, size int64, c parameters.UseCompression) ([]byte, error) {
	offset, err := p.Position(e, start, c)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, int64(n)*size)
	if _, err := io.ReadFull(io.NewSectionReader(src, offset, int64(len(buf))), buf); err != nil {
		return nil, fmt.Errorf("reading %s[%d:%d]: %w", e, start, start+n, err)
	}
	return buf, nil
}

func readG1(src io.ReaderAt, p *parameters.CeremonyParameters, e parameters.ElementType, start, n int, c parameters.UseCompression, check parameters.CheckForCorrectness, points []bls12381.G1Affine) ([]bls12381.G1Affine, error) {
	if cap(points) < n {
		points = make([]bls12381.G1Affine, n)
	}
	points = points[:n]
	if n == 0 {
		return points, nil
	}
	size := p.G1Size(c)
	buf, err := readSection(src, p, e, start, n, size, c)
	if err != nil {
		return nil, err
	}
	err = common.Parallelize(n, func(from, to int) error {
		for i := from; i < to; i++ {
			var err error
			if points[i], err = common.DecodeG1(buf[int64(i)*size:int64(i+1)*size], c, check); err != nil {
				return &common.DecodeError{Element: e, Index: start + i, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func readG2(src io.ReaderAt, p *parameters.CeremonyParameters, e parameters.ElementType, start, n int, c parameters.UseCompression, check parameters.CheckForCorrectness, points []bls12381.G2Affine) ([]bls12381.G2Affine, error) {
	if cap(points) < n {
		points = make([]bls12381.G2Affine, n)
	}
	points = points[:n]
	if n == 0 {
		return points, nil
	}
	size := p.G2Size(c)
	buf, err := readSection(src, p, e, start, n, size, c)
	if err != nil {
		return nil, err
	}
	err = common.Parallelize(n, func(from, to int) error {
		for i := from; i < to; i++ {
			var err error
			if points[i], err = common.DecodeG2(buf[int64(i)*size:int64(i+1)*size], c, check); err != nil {
				return &common.DecodeError{Element: e, Index: start + i, Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return points, nil
}

func writeG1(dst io.WriterAt, p *parameters.CeremonyParameters, e parameters.ElementType, start int, points []bls12381.G1Affine, c parameters.UseCompression) error {
	if len(points) == 0 {
		return nil
	}
	offset, err := p.Position(e, start, c)
	if err != nil {
		return err
	}
	if start+len(points) > p.Length(e) {
		return fmt.Errorf("%w: %s[%d:%d]", parameters.ErrOutOfRange, e, start, start+len(points))
	}
	size := p.G1Size(c)
	buf := make([]byte, int64(len(points))*size)
	err = common.Parallelize(len(points), func(from, to int) error {
		for i := from; i < to; i++ {
			copy(buf[int64(i)*size:], common.EncodeG1(&points[i], c))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := dst.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("writing %s[%d:%d]: %w", e, start, start+len(points), err)
	}
	return nil
}

func writeG2(dst io.WriterAt, p *parameters.CeremonyParameters, e parameters.ElementType, start int, points []bls12381.G2Affine, c parameters.UseCompression) error {
	if len(points) == 0 {
		return nil
	}
	offset, err := p.Position(e, start, c)
	if err != nil {
		return err
	}
	if start+len(points) > p.Length(e) {
		return fmt.Errorf("%w: %s[%d:%d]", parameters.ErrOutOfRange, e, start, start+len(points))
	}
	size := p.G2Size(c)
	buf := make([]byte, int64(len(points))*size)
	err = common.Parallelize(len(points), func(from, to int) error {
		for i := from; i < to; i++ {
			copy(buf[int64(i)*size:], common.EncodeG2(&points[i], c))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if _, err := dst.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("writing %s[%d:%d]: %w", e, start, start+len(points), err)
	}
	return nil
}
