// example.go - Example profile generation for goveil init.
package profile

// ExampleTOML returns a commented starter profile for goveil init.
func ExampleTOML() string {
	return `# GoVeil profile. Share this file with the receiving side: embedding and
# extraction must run identical engine options.

[engine]
# Linear congruential generator parameters for position selection.
# prng_increment must be odd and prng_multiplier must be 1 mod 4.
prng_multiplier = 1103515245
prng_increment = 12345

# Width of the local complexity window (odd, at least 3).
complexity_window = 3

# Minimum local complexity score, exclusive. Lower values accept more
# slots (more capacity, weaker cover); below 0 accepts every interior
# slot. Run "goveil inspect" to visualize the effect on a carrier.
complexity_threshold = 20

# Width of the payload length header in bits (1-64).
length_header_bits = 32

[envelope]
# Payload compression: "auto", "none", "lz4" or "zstd". "auto" picks
# zstd and falls back to none for incompressible payloads.
compression = "auto"

# Set true to embed the payload bytes as-is, without the envelope's
# compression and checksum. Extraction then cannot detect a wrong
# passphrase.
raw = false
`
}
