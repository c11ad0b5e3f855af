package accumulator

import (
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/parameters"
	"golang.org/x/crypto/blake2b"
)

const hashChunkSize = 1 << 20

// BlankHash is the header of the genesis challenge: BLAKE2b-512 of nothing
func BlankHash() []byte {
	h := blake2b.Sum512(nil)
	return h[:]
}

// CalculateHash returns the BLAKE2b-512 digest of the first size bytes of r.
// It only depends on those bytes, so a compressed and an uncompressed file
// hash differently but two identical files always hash the same.
func CalculateHash(r io.ReaderAt, size int64) ([]byte, error) {
	h, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, hashChunkSize)
	if _, err := io.CopyBuffer(h, io.NewSectionReader(r, 0, size), buf); err != nil {
		return nil, fmt.Errorf("hashing: %w", err)
	}
	return h.Sum(nil), nil
}

// ReadHash returns the 64-byte header of a challenge or response
func ReadHash(r io.ReaderAt) ([]byte, error) {
	hash := make([]byte, parameters.HashSize)
	if _, err := io.ReadFull(io.NewSectionReader(r, 0, parameters.HashSize), hash); err != nil {
		return nil, fmt.Errorf("reading hash: %w", err)
	}
	return hash, nil
}

// WriteHash writes the 64-byte header of a challenge or response
func WriteHash(w io.WriterAt, hash []byte) error {
	if len(hash) != parameters.HashSize {
		return fmt.Errorf("%w: hash must be %d bytes, got %d", parameters.ErrSizeMismatch, parameters.HashSize, len(hash))
	}
	_, err := w.WriteAt(hash, 0)
	return err
}
