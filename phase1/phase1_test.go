package phase1

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnbchain/ptau-setup/accumulator"
	"github.com/bnbchain/ptau-setup/common"
	"github.com/bnbchain/ptau-setup/keypair"
	"github.com/bnbchain/ptau-setup/parameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ceremony(t *testing.T) (*parameters.CeremonyParameters, string) {
	p, err := parameters.New(3, parameters.WithBatchSize(4))
	require.NoError(t, err)
	return p, t.TempDir()
}

func TestInitialize(t *testing.T) {
	p, dir := ceremony(t)
	path := filepath.Join(dir, "challenge")
	hash, err := Initialize(path, p, parameters.Uncompressed)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, data, int(p.AccumulatorByteSize(parameters.Uncompressed)))
	assert.Equal(t, accumulator.BlankHash(), data[:parameters.HashSize])

	expected, err := accumulator.CalculateHash(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, expected, hash)
}

func TestRounds(t *testing.T) {
	p, dir := ceremony(t)
	challenge := filepath.Join(dir, "challenge")
	_, err := Initialize(challenge, p, parameters.Uncompressed)
	require.NoError(t, err)

	for i, outC := range []parameters.UseCompression{parameters.Compressed, parameters.Uncompressed, parameters.Compressed} {
		opts := Options{
			InputCompression:  parameters.Uncompressed,
			OutputCompression: outC,
			CheckInput:        parameters.Check,
		}
		response := filepath.Join(dir, "response")
		next := filepath.Join(dir, "new_challenge")

		responseHash, err := Contribute(challenge, response, p, opts, keypair.NewRNG([32]byte{byte(i)}))
		require.NoError(t, err, "round %d", i)

		_, err = Verify(challenge, response, next, p, opts)
		require.NoError(t, err, "round %d", i)

		// the next challenge is chained to the response
		data, err := os.ReadFile(next)
		require.NoError(t, err)
		assert.Equal(t, responseHash, data[:parameters.HashSize])

		require.NoError(t, os.Rename(next, challenge))
		require.NoError(t, os.Remove(response))
	}

	extracted := filepath.Join(dir, "extracted")
	require.NoError(t, Extract(challenge, extracted, p, 4, parameters.Uncompressed, parameters.Check))
	info, err := os.Stat(extracted)
	require.NoError(t, err)
	assert.Equal(t, accumulator.ExtractByteSize(4), info.Size())

	err = Extract(challenge, extracted, p, 9, parameters.Uncompressed, parameters.Check)
	assert.ErrorIs(t, err, parameters.ErrOutOfRange)

	// an existing output is never overwritten
	err = Extract(challenge, extracted, p, 4, parameters.Uncompressed, parameters.Check)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestContributeRejectsWrongSize(t *testing.T) {
	p, dir := ceremony(t)
	challenge := filepath.Join(dir, "challenge")
	_, err := Initialize(challenge, p, parameters.Compressed)
	require.NoError(t, err)

	response := filepath.Join(dir, "response")
	opts := Options{InputCompression: parameters.Uncompressed, CheckInput: parameters.Check}
	_, err = Contribute(challenge, response, p, opts, keypair.NewRNG([32]byte{}))
	assert.ErrorIs(t, err, parameters.ErrSizeMismatch)

	_, err = os.Stat(response)
	assert.True(t, os.IsNotExist(err))
}

func TestVerifyRejectsForeignResponse(t *testing.T) {
	p, dir := ceremony(t)
	opts := Options{InputCompression: parameters.Uncompressed, OutputCompression: parameters.Compressed, CheckInput: parameters.Check}

	challenge := filepath.Join(dir, "challenge")
	_, err := Initialize(challenge, p, parameters.Uncompressed)
	require.NoError(t, err)
	response := filepath.Join(dir, "response")
	_, err = Contribute(challenge, response, p, opts, keypair.NewRNG([32]byte{1}))
	require.NoError(t, err)

	// a second, different challenge
	next := filepath.Join(dir, "next")
	_, err = Verify(challenge, response, next, p, opts)
	require.NoError(t, err)

	_, err = Verify(next, response, filepath.Join(dir, "other"), p, Options{
		InputCompression:  parameters.Uncompressed,
		OutputCompression: parameters.Compressed,
		CheckInput:        parameters.Check,
	})
	assert.ErrorIs(t, err, ErrHashMismatch)
	_, err = os.Stat(filepath.Join(dir, "other"))
	assert.True(t, os.IsNotExist(err))
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	p, dir := ceremony(t)
	opts := Options{InputCompression: parameters.Uncompressed, OutputCompression: parameters.Uncompressed, CheckInput: parameters.Check}

	challenge := filepath.Join(dir, "challenge")
	_, err := Initialize(challenge, p, parameters.Uncompressed)
	require.NoError(t, err)
	response := filepath.Join(dir, "response")
	_, err = Contribute(challenge, response, p, opts, keypair.NewRNG([32]byte{1}))
	require.NoError(t, err)

	// swap [τ²]₁ and [τ³]₁
	data, err := os.ReadFile(response)
	require.NoError(t, err)
	a, err := p.Position(parameters.TauG1, 2, parameters.Uncompressed)
	require.NoError(t, err)
	b, err := p.Position(parameters.TauG1, 3, parameters.Uncompressed)
	require.NoError(t, err)
	size := p.G1Size(parameters.Uncompressed)
	tmp := append([]byte(nil), data[a:a+size]...)
	copy(data[a:a+size], data[b:b+size])
	copy(data[b:b+size], tmp)
	require.NoError(t, os.WriteFile(response, data, 0o644))

	_, err = Verify(challenge, response, filepath.Join(dir, "next"), p, opts)
	assert.ErrorIs(t, err, common.ErrRatioCheckFailed)
}
