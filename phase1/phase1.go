// Package phase1 runs the rounds of a powers of tau ceremony over files: the
// genesis challenge, a contribution turning a challenge into a response, the
// audit of a response which yields the next challenge, and the extraction of
// the final powers.
package phase1

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/accumulator"
	"github.com/bnbchain/ptau-setup/keypair"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/bnbchain/ptau-setup/storage"
	"github.com/consensys/gnark/logger"
)

var ErrHashMismatch = errors.New("response isn't based on the challenge")

// Options selects the encodings of the files of a round
type Options struct {
	InputCompression  parameters.UseCompression
	OutputCompression parameters.UseCompression
	CheckInput        parameters.CheckForCorrectness
}

// Initialize writes the genesis challenge and returns its hash
func Initialize(outputPath string, p *parameters.CeremonyParameters, c parameters.UseCompression) ([]byte, error) {
	log := logger.Logger()
	log.Info().Int("power", p.Power).Int("constraints", p.TauPowersLength).Msg("creating genesis challenge")

	size := p.AccumulatorByteSize(c)
	out, err := storage.Create(outputPath, size)
	if err != nil {
		return nil, err
	}
	defer out.Abort()

	if err := accumulator.GenerateInitial(out, p, c); err != nil {
		return nil, err
	}
	hash, err := accumulator.CalculateHash(out, size)
	if err != nil {
		return nil, err
	}
	if err := out.Commit(); err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(hash)).Msg("initialization has been completed successfully")
	return hash, nil
}

// Contribute transforms the challenge with secrets drawn from rng and writes
// the response: the challenge hash, the updated accumulator and the public
// key. It returns the hash of the response. Nothing is left at responsePath
// on failure.
func Contribute(challengePath, responsePath string, p *parameters.CeremonyParameters, opts Options, rng io.Reader) ([]byte, error) {
	log := logger.Logger()

	in, err := storage.Open(challengePath, p.AccumulatorByteSize(opts.InputCompression))
	if err != nil {
		return nil, err
	}
	defer in.Close()

	digest, err := accumulator.CalculateHash(in, in.Size())
	if err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(digest)).Msg("challenge hash")

	size := p.ResponseByteSize(opts.OutputCompression)
	out, err := storage.Create(responsePath, size)
	if err != nil {
		return nil, err
	}
	defer out.Abort()

	if err := accumulator.WriteHash(out, digest); err != nil {
		return nil, err
	}

	log.Info().Msg("sampling toxic parameters τ, α and β")
	pk, sk, err := keypair.Generate(rng, digest)
	if err != nil {
		return nil, err
	}
	defer sk.Destroy()

	if err := accumulator.Transform(in, out, p, opts.InputCompression, opts.OutputCompression, opts.CheckInput, sk); err != nil {
		return nil, err
	}
	sk.Destroy()

	if err := pk.Write(out, p, opts.OutputCompression); err != nil {
		return nil, err
	}
	hash, err := accumulator.CalculateHash(out, size)
	if err != nil {
		return nil, err
	}
	if err := out.Commit(); err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(hash)).Msg("contribution has been successful")
	return hash, nil
}

// Verify audits the response against its challenge and, if it is valid,
// writes the next challenge: the hash of the response followed by its
// accumulator uncompressed. It returns the hash of the new challenge.
func Verify(challengePath, responsePath, newChallengePath string, p *parameters.CeremonyParameters, opts Options) ([]byte, error) {
	log := logger.Logger()

	challenge, err := storage.Open(challengePath, p.AccumulatorByteSize(opts.InputCompression))
	if err != nil {
		return nil, err
	}
	defer challenge.Close()
	response, err := storage.Open(responsePath, p.ResponseByteSize(opts.OutputCompression))
	if err != nil {
		return nil, err
	}
	defer response.Close()

	digest, err := accumulator.CalculateHash(challenge, challenge.Size())
	if err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(digest)).Msg("challenge hash")

	header, err := accumulator.ReadHash(response)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(header, digest) {
		return nil, fmt.Errorf("%w: response header is %s", ErrHashMismatch, hex.EncodeToString(header))
	}

	pk, err := keypair.Read(response, p, opts.OutputCompression)
	if err != nil {
		return nil, err
	}
	err = accumulator.VerifyTransform(challenge, response, pk, digest, p,
		opts.InputCompression, opts.OutputCompression, opts.CheckInput, parameters.Check)
	if err != nil {
		return nil, err
	}

	responseHash, err := accumulator.CalculateHash(response, response.Size())
	if err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(responseHash)).Msg("response hash")

	size := p.AccumulatorByteSize(parameters.Uncompressed)
	out, err := storage.Create(newChallengePath, size)
	if err != nil {
		return nil, err
	}
	defer out.Abort()

	if err := accumulator.WriteHash(out, responseHash); err != nil {
		return nil, err
	}
	if opts.OutputCompression == parameters.Compressed {
		// the points were just validated
		err = accumulator.Decompress(response, out, p, parameters.NoCheck)
	} else {
		region := io.NewSectionReader(response, parameters.HashSize, size-parameters.HashSize)
		_, err = io.Copy(io.NewOffsetWriter(out, parameters.HashSize), region)
	}
	if err != nil {
		return nil, err
	}

	hash, err := accumulator.CalculateHash(out, size)
	if err != nil {
		return nil, err
	}
	if err := out.Commit(); err != nil {
		return nil, err
	}
	log.Info().Str("hash", hex.EncodeToString(hash)).Msg("verification has been successful, new challenge written")
	return hash, nil
}

// Extract writes the chain hash and the first n powers of every vector of the
// challenge, compressed
func Extract(challengePath, outputPath string, p *parameters.CeremonyParameters, n int, c parameters.UseCompression, check parameters.CheckForCorrectness) error {
	if n < 1 || n > p.TauPowersLength {
		return fmt.Errorf("%w: can't extract %d powers out of %d", parameters.ErrOutOfRange, n, p.TauPowersLength)
	}
	in, err := storage.Open(challengePath, p.AccumulatorByteSize(c))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := storage.Create(outputPath, accumulator.ExtractByteSize(n))
	if err != nil {
		return err
	}
	defer out.Abort()

	if err := accumulator.Extract(in, out, p, n, c, check); err != nil {
		return err
	}
	return out.Commit()
}
