package utils

import (
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Returns [a, ab, ab², ..., abⁿ⁻¹ ]
func Powers(a, b fr.Element, n int) []fr.Element {
	if n <= 0 {
		return nil
	}
	result := make([]fr.Element, n)
	result[0].Set(&a)
	for i := 1; i < n; i++ {
		result[i].Mul(&result[i-1], &b)
	}
	return result
}

// Pow returns bᵏ
func Pow(b fr.Element, k uint64) fr.Element {
	var res fr.Element
	res.Exp(b, new(big.Int).SetUint64(k))
	return res
}

// RandomScalar samples a uniform non-zero scalar from r. 64 bytes are reduced
// modulo the group order so the bias is negligible.
func RandomScalar(r io.Reader) (fr.Element, error) {
	var buf [64]byte
	var res fr.Element
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return res, fmt.Errorf("sampling scalar: %w", err)
		}
		v := new(big.Int).SetBytes(buf[:])
		v.Mod(v, fr.Modulus())
		res.SetBigInt(v)
		if !res.IsZero() {
			return res, nil
		}
	}
}

// BigInt returns the canonical integer of a scalar, as used by scalar multiplication
func BigInt(s *fr.Element) *big.Int {
	var res big.Int
	s.BigInt(&res)
	return &res
}
