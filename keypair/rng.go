package keypair

import (
	"golang.org/x/crypto/chacha20"
)

// RNG is a deterministic stream of bytes derived from a 32-byte seed. Two RNGs
// built from the same seed produce the same keypair for the same digest.
type RNG struct {
	cipher *chacha20.Cipher
}

func NewRNG(seed [32]byte) *RNG {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(seed[:], nonce[:])
	if err != nil {
		// key and nonce sizes are fixed by the types above
		panic(err)
	}
	return &RNG{cipher: c}
}

// Read fills p with the next bytes of the ChaCha20 key stream
func (r *RNG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
