package main

import (
	"bufio"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/consensys/gnark/logger"
	"golang.org/x/crypto/blake2b"
)

const (
	systemEntropySize       = 1024
	beaconHashSize          = 32
	defaultBeaconIterations = 10
	maxBeaconIterations     = 63
	beaconCheckpointsLog    = 10
)

var ErrInvalidBeacon = errors.New("invalid beacon")

func promptEntropy(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "Type some random text and press [ENTER] to provide additional entropy...")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// systemSeed mixes operating system randomness with user provided entropy
func systemSeed(entropy []byte) ([32]byte, error) {
	var seed [32]byte
	system := make([]byte, systemEntropySize)
	if _, err := io.ReadFull(rand.Reader, system); err != nil {
		return seed, fmt.Errorf("reading system randomness: %w", err)
	}
	h, err := blake2b.New512(nil)
	if err != nil {
		return seed, err
	}
	h.Write(system)
	h.Write(entropy)
	copy(seed[:], h.Sum(nil))
	return seed, nil
}

// beaconSeed hashes the beacon value 2^iterations times with SHA-256, so that
// the seed can't be known before the beacon is published and the delay has
// elapsed
func beaconSeed(beaconHex string, iterations uint) ([32]byte, error) {
	var seed [32]byte
	value, err := hex.DecodeString(beaconHex)
	if err != nil {
		return seed, fmt.Errorf("%w: %v", ErrInvalidBeacon, err)
	}
	if len(value) != beaconHashSize {
		return seed, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidBeacon, beaconHashSize, len(value))
	}
	if iterations > maxBeaconIterations {
		return seed, fmt.Errorf("%w: 2^%d iterations", ErrInvalidBeacon, iterations)
	}
	copy(seed[:], value)

	log := logger.Logger()
	seed = hashBeacon(seed, iterations, func(i uint64, h [32]byte) {
		log.Info().Uint64("iteration", i).Str("hash", hex.EncodeToString(h[:])).Msg("beacon checkpoint")
	})
	log.Info().Str("seed", hex.EncodeToString(seed[:])).Msg("beacon seed")
	return seed, nil
}

// hashBeacon applies SHA-256 2^iterations times. checkpoint receives the
// state before iterations 0, 2ᵏ⁻¹⁰, 2·2ᵏ⁻¹⁰, …: 1024 states in total (every
// state when k < 10) from which the chain can be checked in parallel.
func hashBeacon(seed [32]byte, iterations uint, checkpoint func(i uint64, h [32]byte)) [32]byte {
	n := uint64(1) << iterations
	interval := uint64(1)
	if iterations > beaconCheckpointsLog {
		interval = uint64(1) << (iterations - beaconCheckpointsLog)
	}
	for i := uint64(0); i < n; i++ {
		if i%interval == 0 {
			checkpoint(i, seed)
		}
		seed = sha256.Sum256(seed[:])
	}
	return seed
}
