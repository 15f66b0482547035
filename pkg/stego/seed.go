// seed.go - Passphrase to seed derivation.
package stego

// DeriveSeed folds a passphrase into the 32-bit seed that drives the
// position sequence. Deliberately not a cryptographic hash: the seed only
// has to be deterministic and passphrase-sensitive, and the folding keeps
// distinct passphrases on distinct seeds with high probability. An empty
// passphrase is rejected with ErrInvalidKey.
func DeriveSeed(passphrase string) (uint32, error) {
	if passphrase == "" {
		return 0, ErrInvalidKey
	}
	var seed uint32
	for i := 0; i < len(passphrase); i++ {
		seed ^= uint32(passphrase[i]) << (i % 24)
	}
	return seed, nil
}
