package codec

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase58RoundTrip(t *testing.T) {
	allValues := make([]byte, 256)
	for i := range allValues {
		allValues[i] = byte(i)
	}

	rng := rand.New(rand.NewSource(42))
	large := make([]byte, 32*1024)
	rng.Read(large)

	cases := [][]byte{
		{0},
		{0, 0, 0, 0},
		{0xFF, 0xFF, 0xFF},
		{0, 0, 1, 2, 3},
		allValues,
		large,
	}
	for _, input := range cases {
		decoded, err := Base58Decode(Base58Encode(input))
		require.NoError(t, err)
		require.True(t, bytes.Equal(input, decoded), "round trip lost data for %d bytes", len(input))
	}
}

func TestBase58ZeroPoint(t *testing.T) {
	assert.Equal(t, "1", Base58Encode(nil))
	assert.Equal(t, "1", Base58Encode([]byte{}))

	decoded, err := Base58Decode("")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, decoded)
}

func TestBase58LeadingZeros(t *testing.T) {
	encoded := Base58Encode([]byte{0, 0, 0, 1})
	assert.Equal(t, "1112", encoded)
}

func TestBase58DecodeInvalidCharacters(t *testing.T) {
	for _, input := range []string{"0", "O", "I", "l", "abc0def", "hello world"} {
		_, err := Base58Decode(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrInvalidEncoding), "input %q", input)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	large := make([]byte, 48*1024)
	rng.Read(large)

	cases := [][]byte{
		nil,
		{0},
		{0xFF, 0xFF},
		large,
	}
	for _, input := range cases {
		decoded, err := Base64Decode(Base64Encode(input))
		require.NoError(t, err)
		assert.True(t, bytes.Equal(input, decoded))
	}
}

func TestBase64Vectors(t *testing.T) {
	assert.Equal(t, "", Base64Encode(nil))
	assert.Equal(t, "aGVsbG8=", Base64Encode([]byte("hello")))

	decoded, err := Base64Decode("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), decoded)

	decoded, err = Base64Decode("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestBase64DecodeInvalid(t *testing.T) {
	for _, input := range []string{"aGVsbG8", "a", "%%%%", "aGVs bG8="} {
		_, err := Base64Decode(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrInvalidEncoding), "input %q", input)
	}
}
