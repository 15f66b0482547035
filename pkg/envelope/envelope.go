// Package envelope wraps payloads before they enter the embedding engine.
//
// A sealed payload carries a magic marker, a compression tag, and a keyed
// BLAKE3 checksum of the plaintext. The checksum is keyed off the same
// passphrase the engine embeds under, so opening with a wrong passphrase or
// from a damaged carrier fails loudly instead of yielding silent garbage.
// This is integrity detection, not encryption: the payload bytes are merely
// compressed, never enciphered.
//
// To the engine the sealed envelope is opaque bytes; sealing is optional
// and raw payloads stay fully supported.
package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// Sentinel errors. Callers match with errors.Is.
var (
	// ErrNotEnvelope is returned by Open when the input does not start
	// with the envelope magic or carries an unknown version - typically
	// a raw payload extracted with the -raw convention mismatched.
	ErrNotEnvelope = errors.New("envelope: not a sealed payload")

	// ErrChecksum is returned when the keyed checksum does not match:
	// wrong passphrase, or the payload bytes were corrupted in transit.
	ErrChecksum = errors.New("envelope: checksum mismatch")
)

// Wire layout: magic (4) | version (1) | compression tag (1) |
// plaintext size, big-endian uint32 (4) | keyed BLAKE3 of plaintext (32) |
// body. These are format constants; changing them breaks every sealed
// payload in the wild.
const (
	magic      = "GVLE"
	version    = 1
	headerSize = 4 + 1 + 1 + 4 + 32
)

// checksumContext is the BLAKE3 key-derivation context for the payload
// checksum key. Domain separation keeps this key unrelated to anything
// else ever derived from the same passphrase.
const checksumContext = "GoVeil 2026-06-01 payload checksum"

// Compression identifies the compression applied to the envelope body.
type Compression uint8

const (
	// None stores the payload uncompressed. Seal also falls back to
	// None whenever compression fails to shrink the payload.
	None Compression = 0

	// LZ4 uses LZ4 block compression: fast, modest ratio.
	LZ4 Compression = 1

	// Zstd uses zstd at its default level: better ratios on text-like
	// payloads.
	Zstd Compression = 2
)

// String returns the tag's human-readable name.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as used by CLI flags and
// profile files. "auto" means zstd with fallback to none.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "auto", "":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("envelope: unknown compression %q (use auto, none, lz4 or zstd)", name)
	}
}

// zstdEncoder and zstdDecoder are shared across calls; both are safe for
// concurrent use via EncodeAll/DecodeAll.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("envelope: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("envelope: zstd decoder initialization failed: " + err.Error())
	}
}

// Seal wraps payload for embedding: compress with the requested algorithm
// (falling back to None when compression does not shrink the payload),
// then prepend header and keyed checksum.
func Seal(payload []byte, passphrase string, comp Compression) ([]byte, error) {
	if len(payload) > 0xFFFFFFFF {
		return nil, fmt.Errorf("envelope: payload of %d bytes exceeds the 32-bit size field", len(payload))
	}

	body, tag, err := compress(payload, comp)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize+len(body))
	copy(out[0:4], magic)
	out[4] = version
	out[5] = byte(tag)
	binary.BigEndian.PutUint32(out[6:10], uint32(len(payload)))
	sum := checksum(payload, passphrase)
	copy(out[10:42], sum[:])
	copy(out[headerSize:], body)
	return out, nil
}

// Open unwraps a sealed payload: verify magic and version, decompress, and
// check the keyed checksum against the passphrase.
func Open(sealed []byte, passphrase string) ([]byte, error) {
	if len(sealed) < headerSize || string(sealed[0:4]) != magic {
		return nil, ErrNotEnvelope
	}
	if sealed[4] != version {
		return nil, fmt.Errorf("%w: version %d", ErrNotEnvelope, sealed[4])
	}

	tag := Compression(sealed[5])
	size := int(binary.BigEndian.Uint32(sealed[6:10]))
	var declared [32]byte
	copy(declared[:], sealed[10:42])

	payload, err := decompress(sealed[headerSize:], tag, size)
	if err != nil {
		return nil, err
	}

	if checksum(payload, passphrase) != declared {
		return nil, ErrChecksum
	}
	return payload, nil
}

// checksum computes the keyed BLAKE3 digest of payload under a key derived
// from the passphrase.
func checksum(payload []byte, passphrase string) [32]byte {
	var key [32]byte
	blake3.DeriveKey(checksumContext, []byte(passphrase), key[:])

	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails on a wrong key length, which the fixed
		// array rules out.
		panic("envelope: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}

func compress(payload []byte, comp Compression) ([]byte, Compression, error) {
	switch comp {
	case None:
		return payload, None, nil

	case LZ4:
		bound := lz4.CompressBlockBound(len(payload))
		dst := make([]byte, bound)
		written, err := lz4.CompressBlock(payload, dst, nil)
		if err != nil {
			return nil, 0, fmt.Errorf("envelope: lz4 compress: %w", err)
		}
		// written == 0 means lz4 judged the data incompressible.
		if written == 0 || written >= len(payload) {
			return payload, None, nil
		}
		return dst[:written], LZ4, nil

	case Zstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed) >= len(payload) {
			return payload, None, nil
		}
		return compressed, Zstd, nil

	default:
		return nil, 0, fmt.Errorf("envelope: unsupported compression tag: %d", comp)
	}
}

func decompress(body []byte, tag Compression, size int) ([]byte, error) {
	switch tag {
	case None:
		if len(body) != size {
			return nil, fmt.Errorf("%w: body is %d bytes, header declares %d", ErrNotEnvelope, len(body), size)
		}
		return body, nil

	case LZ4:
		dst := make([]byte, size)
		read, err := lz4.UncompressBlock(body, dst)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %v", ErrNotEnvelope, err)
		}
		if read != size {
			return nil, fmt.Errorf("%w: lz4 yielded %d bytes, header declares %d", ErrNotEnvelope, read, size)
		}
		return dst, nil

	case Zstd:
		result, err := zstdDecoder.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrNotEnvelope, err)
		}
		if len(result) != size {
			return nil, fmt.Errorf("%w: zstd yielded %d bytes, header declares %d", ErrNotEnvelope, len(result), size)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression tag %d", ErrNotEnvelope, tag)
	}
}

// IsSealed reports whether data looks like a sealed envelope. Used by the
// CLI to warn when -raw and sealed payloads are likely mixed up.
func IsSealed(data []byte) bool {
	return len(data) >= headerSize && bytes.Equal(data[0:4], []byte(magic))
}
