// options.go - Engine tuning knobs.
package stego

// Defaults for Options. The LCG constants are the classic glibc pair; the
// threshold default was picked empirically against photographic carriers.
const (
	DefaultMultiplier = 1103515245
	DefaultIncrement  = 12345
	DefaultWindow     = 3
	DefaultThreshold  = 20
	DefaultHeaderBits = 32
)

// Options tunes the embedding engine. Values are validated by New, not
// defaulted: start from DefaultOptions and override fields explicitly.
type Options struct {
	// Multiplier and Increment parameterize the position generator's
	// LCG. Full-period behavior mod 2^32 requires Increment odd and
	// Multiplier congruent to 1 mod 4 (Hull-Dobell); the generator's
	// exhaustion detection relies on the full period, so New rejects
	// anything else.
	Multiplier uint32
	Increment  uint32

	// Window is the width of the complexity window (odd, at least 3).
	Window int

	// Threshold is the minimum local complexity score, exclusive: a
	// slot is used iff its score exceeds Threshold. Any value below
	// zero accepts every interior slot.
	Threshold int

	// HeaderBits is the width of the big-endian payload byte count
	// prepended to the payload bits (1-64).
	HeaderBits int
}

// DefaultOptions returns the options both sides use when nothing else
// was agreed on.
func DefaultOptions() Options {
	return Options{
		Multiplier: DefaultMultiplier,
		Increment:  DefaultIncrement,
		Window:     DefaultWindow,
		Threshold:  DefaultThreshold,
		HeaderBits: DefaultHeaderBits,
	}
}
