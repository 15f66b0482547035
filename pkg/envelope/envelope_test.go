package envelope

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("steganography "), 200)
	tests := []struct {
		name    string
		payload []byte
		comp    Compression
	}{
		{"none", []byte("short and raw"), None},
		{"lz4", compressible, LZ4},
		{"zstd", compressible, Zstd},
		{"empty payload", nil, Zstd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sealed, err := Seal(tt.payload, "passphrase", tt.comp)
			require.NoError(t, err)
			assert.True(t, IsSealed(sealed))

			got, err := Open(sealed, "passphrase")
			require.NoError(t, err)
			assert.Equal(t, tt.payload, append([]byte(nil), got...))
		})
	}
}

func TestSealCompressionShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte("aaaa"), 4096)
	sealed, err := Seal(payload, "k", Zstd)
	require.NoError(t, err)
	assert.Less(t, len(sealed), len(payload), "compressible payload did not shrink")
}

func TestSealIncompressibleFallsBack(t *testing.T) {
	// High-entropy data cannot shrink; Seal must fall back to the None
	// tag rather than store an enlarged body.
	payload := make([]byte, 512)
	rand.New(rand.NewSource(1)).Read(payload)
	for _, comp := range []Compression{LZ4, Zstd} {
		sealed, err := Seal(payload, "k", comp)
		require.NoError(t, err)
		assert.Equal(t, None, Compression(sealed[5]), "compression %s did not fall back", comp)

		got, err := Open(sealed, "k")
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

func TestOpenWrongPassphrase(t *testing.T) {
	sealed, err := Seal([]byte("secret"), "right", Zstd)
	require.NoError(t, err)

	_, err = Open(sealed, "wrong")
	require.ErrorIs(t, err, ErrChecksum)
}

func TestOpenCorrupted(t *testing.T) {
	sealed, err := Seal([]byte("fragile"), "k", None)
	require.NoError(t, err)

	// Flip one payload bit.
	sealed[len(sealed)-1] ^= 0x01
	_, err = Open(sealed, "k")
	require.ErrorIs(t, err, ErrChecksum)
}

func TestOpenNotAnEnvelope(t *testing.T) {
	_, err := Open([]byte("just some raw payload bytes, nothing sealed"), "k")
	require.ErrorIs(t, err, ErrNotEnvelope)

	_, err = Open([]byte("GV"), "k")
	require.ErrorIs(t, err, ErrNotEnvelope)

	// Right magic, wrong version.
	sealed, err := Seal([]byte("x"), "k", None)
	require.NoError(t, err)
	sealed[4] = 99
	_, err = Open(sealed, "k")
	require.ErrorIs(t, err, ErrNotEnvelope)
}

func TestParseCompression(t *testing.T) {
	for name, want := range map[string]Compression{
		"none": None, "lz4": LZ4, "zstd": Zstd, "auto": Zstd, "": Zstd,
	} {
		got, err := ParseCompression(name)
		require.NoError(t, err, "ParseCompression(%q)", name)
		assert.Equal(t, want, got, "ParseCompression(%q)", name)
	}

	_, err := ParseCompression("brotli")
	assert.Error(t, err)
}
