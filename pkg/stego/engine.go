// Package stego hides an arbitrary byte payload inside a lossless raster image.
//
// Slot selection is driven by a passphrase-derived seed: a deterministic
// pseudo-random walk proposes (pixel, channel) slots, a local-complexity
// filter keeps only slots in visually noisy regions, and each payload bit is
// written by a ±1 adjustment of the channel value (LSB matching) rather than
// a direct bit overwrite. Extraction replays the identical walk and filter
// with the same passphrase and options.
//
// The engine works on a caller-owned PixelGrid and never touches file bytes;
// decoding and encoding carriers is the pkg/carrier layer's job. Carriers
// must survive a lossless round trip - any lossy recompression destroys the
// embedded bits.
//
// A caveat on thresholds: the filter scores the carrier as it looks at read
// time. One embedded bit moves a channel by at most 1, which can shift a
// neighboring slot's score by up to 4 per window ring. A threshold sitting
// within that margin of a slot's pristine score can make the filter decide
// differently during extraction than it did during embedding. Thresholds
// comfortably below the scores of the regions being used (or accept-all
// thresholds for synthetic carriers) avoid this entirely.
package stego

import "fmt"

// Engine embeds and extracts payloads under one fixed set of options.
// Engines are stateless and safe for concurrent use; every operation
// creates its own generator cursor and scratch state.
type Engine struct {
	opts Options
}

// New creates an engine after validating opts. Both sides of an exchange
// must construct their engine from identical options.
func New(opts Options) (*Engine, error) {
	if opts.Increment%2 == 0 {
		return nil, fmt.Errorf("stego: prng increment %d must be odd", opts.Increment)
	}
	if opts.Multiplier%4 != 1 {
		return nil, fmt.Errorf("stego: prng multiplier %d must be 1 mod 4", opts.Multiplier)
	}
	if opts.Window < 3 || opts.Window%2 == 0 {
		return nil, fmt.Errorf("stego: complexity window %d must be odd and at least 3", opts.Window)
	}
	if opts.HeaderBits < 1 || opts.HeaderBits > 64 {
		return nil, fmt.Errorf("stego: length header width %d outside 1-64 bits", opts.HeaderBits)
	}
	return &Engine{opts: opts}, nil
}

// NewDefault creates an engine with DefaultOptions.
func NewDefault() *Engine {
	e, err := New(DefaultOptions())
	if err != nil {
		panic("stego: default options failed validation: " + err.Error())
	}
	return e
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}
