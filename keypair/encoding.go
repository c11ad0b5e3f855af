package keypair

import (
	"fmt"
	"io"

	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/parameters"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Bytes returns the uncompressed encoding of the public key:
// (s, sᵗ) ‖ (s, sᵃ) ‖ (s, sᵇ) in G₁ followed by τ, α, β in G₂
func (pk *PublicKey) Bytes() []byte {
	res := make([]byte, 0, parameters.PublicKeySize)
	for _, pair := range []*[2]bls12381.G1Affine{&pk.TauG1, &pk.AlphaG1, &pk.BetaG1} {
		res = append(res, common.EncodeG1(&pair[0], parameters.Uncompressed)...)
		res = append(res, common.EncodeG1(&pair[1], parameters.Uncompressed)...)
	}
	for _, p := range []*bls12381.G2Affine{&pk.TauG2, &pk.AlphaG2, &pk.BetaG2} {
		res = append(res, common.EncodeG2(p, parameters.Uncompressed)...)
	}
	return res
}

// SetBytes decodes a public key written by Bytes. Every point is checked to be
// a valid non-identity subgroup element.
func (pk *PublicKey) SetBytes(buf []byte) error {
	if len(buf) != parameters.PublicKeySize {
		return fmt.Errorf("%w: public key must be %d bytes, got %d", parameters.ErrSizeMismatch, parameters.PublicKeySize, len(buf))
	}
	const g1, g2 = parameters.G1UncompressedByteSize, parameters.G2UncompressedByteSize
	var err error
	offset := 0
	for _, pair := range []*[2]bls12381.G1Affine{&pk.TauG1, &pk.AlphaG1, &pk.BetaG1} {
		for j := range pair {
			if pair[j], err = common.DecodeG1(buf[offset:offset+g1], parameters.Uncompressed, parameters.Check); err != nil {
				return fmt.Errorf("public key: %w", err)
			}
			offset += g1
		}
	}
	for _, p := range []*bls12381.G2Affine{&pk.TauG2, &pk.AlphaG2, &pk.BetaG2} {
		if *p, err = common.DecodeG2(buf[offset:offset+g2], parameters.Uncompressed, parameters.Check); err != nil {
			return fmt.Errorf("public key: %w", err)
		}
		offset += g2
	}
	return nil
}

// Write stores the public key right after the accumulator of a response
func (pk *PublicKey) Write(w io.WriterAt, p *parameters.CeremonyParameters, c parameters.UseCompression) error {
	_, err := w.WriteAt(pk.Bytes(), p.PublicKeyOffset(c))
	return err
}

// Read loads the public key stored in a response
func Read(r io.ReaderAt, p *parameters.CeremonyParameters, c parameters.UseCompression) (*PublicKey, error) {
	buf := make([]byte, parameters.PublicKeySize)
	section := io.NewSectionReader(r, p.PublicKeyOffset(c), parameters.PublicKeySize)
	if _, err := io.ReadFull(section, buf); err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	var pk PublicKey
	if err := pk.SetBytes(buf); err != nil {
		return nil, err
	}
	return &pk, nil
}
