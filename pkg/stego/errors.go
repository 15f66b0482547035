// errors.go - Error kinds shared across the engine and its collaborators.
package stego

import "errors"

var (
	// ErrInvalidKey is returned when the passphrase is empty. A seed
	// cannot be derived from nothing, and a silently defaulted seed
	// would embed payloads any reader could recover.
	ErrInvalidKey = errors.New("stego: invalid key: passphrase is empty")

	// ErrCapacityExceeded is returned by embedding when every slot in
	// the carrier has been visited before all payload bits were placed.
	ErrCapacityExceeded = errors.New("stego: carrier capacity exceeded")

	// ErrTruncatedPayload is returned by extraction when the carrier
	// runs out of slots before the length declared in the header is
	// satisfied. It usually means a wrong passphrase, the wrong image,
	// or a carrier that was recompressed lossily.
	ErrTruncatedPayload = errors.New("stego: truncated payload")

	// ErrUnsupportedFormat is returned by image collaborators for
	// carriers in a format the engine cannot process. Defined here so
	// callers can match one error vocabulary for the whole pipeline.
	ErrUnsupportedFormat = errors.New("stego: unsupported carrier format")
)
