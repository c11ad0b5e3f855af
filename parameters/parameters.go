// Package parameters holds the ceremony constants and the byte layout of the
// challenge and response files derived from them.
package parameters

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

const (
	// HashSize is the size of the BLAKE2b-512 digest heading every file
	HashSize = 64

	G1CompressedByteSize   = bls12381.SizeOfG1AffineCompressed
	G1UncompressedByteSize = bls12381.SizeOfG1AffineUncompressed
	G2CompressedByteSize   = bls12381.SizeOfG2AffineCompressed
	G2UncompressedByteSize = bls12381.SizeOfG2AffineUncompressed

	// PublicKeySize is the size of the contribution public key, which is
	// always written uncompressed: three (s, sˣ) pairs in G₁ and three G₂ points
	PublicKeySize = 3*G2UncompressedByteSize + 6*G1UncompressedByteSize

	DefaultPower     = 27
	DefaultBatchSize = 1 << 21
	MaxPower         = 28
)

var (
	ErrSizeMismatch   = errors.New("size mismatch")
	ErrInvalidPower   = errors.New("invalid power")
	ErrInvalidBatch   = errors.New("invalid batch size")
	ErrOutOfRange     = errors.New("element index out of range")
	ErrUnknownElement = errors.New("unknown element type")
)

// UseCompression selects the point encoding of a file
type UseCompression bool

const (
	Uncompressed UseCompression = false
	Compressed   UseCompression = true
)

func (c UseCompression) String() string {
	if c {
		return "compressed"
	}
	return "uncompressed"
}

// CheckForCorrectness enables curve and subgroup validation of decoded points
type CheckForCorrectness bool

const (
	NoCheck CheckForCorrectness = false
	Check   CheckForCorrectness = true
)

// ElementType names the sections of an accumulator
type ElementType int

const (
	TauG1 ElementType = iota
	TauG2
	AlphaG1
	BetaG1
	BetaG2
)

func (e ElementType) String() string {
	switch e {
	case TauG1:
		return "TauG1"
	case TauG2:
		return "TauG2"
	case AlphaG1:
		return "AlphaTauG1"
	case BetaG1:
		return "BetaTauG1"
	case BetaG2:
		return "BetaG2"
	default:
		return fmt.Sprintf("ElementType(%d)", int(e))
	}
}

// IsG1 reports whether the section holds G₁ points
func (e ElementType) IsG1() bool {
	return e == TauG1 || e == AlphaG1 || e == BetaG1
}

// CeremonyParameters is derived once from the required power and never mutated
type CeremonyParameters struct {
	Power int
	// TauPowersLength is 2ᴾ, the length of the G₂ and α/β vectors
	TauPowersLength int
	// TauPowersG1Length is 2ᴾ⁺¹-1, the length of [τⁱ]₁
	TauPowersG1Length int
	// BatchSize bounds the number of points held in memory per section
	BatchSize int
}

type Option func(*CeremonyParameters)

// WithBatchSize overrides the maximum chunk size
func WithBatchSize(size int) Option {
	return func(p *CeremonyParameters) {
		p.BatchSize = size
	}
}

func New(power int, opts ...Option) (*CeremonyParameters, error) {
	if power < 1 || power > MaxPower {
		return nil, fmt.Errorf("%w: %d is not in [1, %d]", ErrInvalidPower, power, MaxPower)
	}
	p := &CeremonyParameters{
		Power:             power,
		TauPowersLength:   1 << power,
		TauPowersG1Length: (1 << (power + 1)) - 1,
		BatchSize:         DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.BatchSize < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatch, p.BatchSize)
	}
	return p, nil
}

func (p *CeremonyParameters) G1Size(c UseCompression) int64 {
	if c {
		return G1CompressedByteSize
	}
	return G1UncompressedByteSize
}

func (p *CeremonyParameters) G2Size(c UseCompression) int64 {
	if c {
		return G2CompressedByteSize
	}
	return G2UncompressedByteSize
}

// AccumulatorByteSize is the size of the hash followed by every section
func (p *CeremonyParameters) AccumulatorByteSize(c UseCompression) int64 {
	g1, g2 := p.G1Size(c), p.G2Size(c)
	l1, l2 := int64(p.TauPowersG1Length), int64(p.TauPowersLength)
	return HashSize + l1*g1 + l2*g2 + 2*l2*g1 + g2
}

// ResponseByteSize is the size of an accumulator followed by a public key
func (p *CeremonyParameters) ResponseByteSize(c UseCompression) int64 {
	return p.AccumulatorByteSize(c) + PublicKeySize
}

// PublicKeyOffset is where the public key starts in a response
func (p *CeremonyParameters) PublicKeyOffset(c UseCompression) int64 {
	return p.AccumulatorByteSize(c)
}

// Length returns the number of points of a section
func (p *CeremonyParameters) Length(e ElementType) int {
	switch e {
	case TauG1:
		return p.TauPowersG1Length
	case TauG2, AlphaG1, BetaG1:
		return p.TauPowersLength
	case BetaG2:
		return 1
	default:
		return 0
	}
}

// Position returns the byte offset of the index-th point of a section.
// Sections are laid out as
// [hash][τ]₁ × L1 | [τ]₂ × L2 | α[τ]₁ × L2 | β[τ]₁ × L2 | [β]₂
func (p *CeremonyParameters) Position(e ElementType, index int, c UseCompression) (int64, error) {
	if index < 0 || index >= p.Length(e) {
		return 0, fmt.Errorf("%w: %s[%d]", ErrOutOfRange, e, index)
	}
	g1, g2 := p.G1Size(c), p.G2Size(c)
	l1, l2 := int64(p.TauPowersG1Length), int64(p.TauPowersLength)
	i := int64(index)

	switch e {
	case TauG1:
		return HashSize + i*g1, nil
	case TauG2:
		return HashSize + l1*g1 + i*g2, nil
	case AlphaG1:
		return HashSize + l1*g1 + l2*g2 + i*g1, nil
	case BetaG1:
		return HashSize + l1*g1 + l2*g2 + l2*g1 + i*g1, nil
	case BetaG2:
		return HashSize + l1*g1 + l2*g2 + 2*l2*g1, nil
	}
	return 0, ErrUnknownElement
}

// CheckFileSize is the only pre-flight check: it compares an on-disk length with
// the one computed from the parameters before any expensive work starts
func CheckFileSize(name string, actual, expected int64) error {
	if actual != expected {
		return fmt.Errorf("%w: %s should be %d bytes, but it is %d", ErrSizeMismatch, name, expected, actual)
	}
	return nil
}
