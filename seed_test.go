package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeaconSeed(t *testing.T) {
	value := strings.Repeat("ab", 32)
	seed, err := beaconSeed(value, 2)
	require.NoError(t, err)

	raw, _ := hex.DecodeString(value)
	expected := sha256.Sum256(raw)
	for i := 0; i < 3; i++ {
		expected = sha256.Sum256(expected[:])
	}
	assert.Equal(t, expected, seed)

	_, err = beaconSeed("abcd", 2)
	assert.ErrorIs(t, err, ErrInvalidBeacon)
	_, err = beaconSeed("zz", 2)
	assert.ErrorIs(t, err, ErrInvalidBeacon)
	_, err = beaconSeed(value, 64)
	assert.ErrorIs(t, err, ErrInvalidBeacon)
}

func TestSystemSeed(t *testing.T) {
	a, err := systemSeed([]byte("entropy"))
	require.NoError(t, err)
	b, err := systemSeed([]byte("entropy"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPromptEntropy(t *testing.T) {
	var out bytes.Buffer
	entropy, err := promptEntropy(strings.NewReader("  some text \nignored"), &out)
	require.NoError(t, err)
	assert.Equal(t, "some text", entropy)
	assert.Contains(t, out.String(), "random text")
}

func TestHashBeaconCheckpoints(t *testing.T) {
	var start [32]byte
	start[0] = 1

	var checkpoints []uint64
	var states [][32]byte
	end := hashBeacon(start, 12, func(i uint64, h [32]byte) {
		checkpoints = append(checkpoints, i)
		states = append(states, h)
	})
	require.Len(t, checkpoints, 1024)
	assert.Equal(t, uint64(0), checkpoints[0])
	assert.Equal(t, uint64(4), checkpoints[1])
	assert.Equal(t, start, states[0])

	// each segment between checkpoints can be replayed independently
	h := states[1]
	for i := 0; i < 4; i++ {
		h = sha256.Sum256(h[:])
	}
	assert.Equal(t, states[2], h)

	h = states[1023]
	for i := 0; i < 4; i++ {
		h = sha256.Sum256(h[:])
	}
	assert.Equal(t, end, h)

	// below 2^10 iterations every state is a checkpoint
	count := 0
	hashBeacon(start, 3, func(uint64, [32]byte) { count++ })
	assert.Equal(t, 8, count)
}
