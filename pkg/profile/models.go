// Package profile provides TOML-driven option profiles for embedding runs.
//
// A profile bundles the engine options and envelope preferences one party
// shares with the other; both sides must run the same profile or extraction
// replays a different walk. Profiles resolve by builtin name first, then as
// a TOML file path.
package profile

import (
	"github.com/xob0t/GoVeil/pkg/envelope"
	"github.com/xob0t/GoVeil/pkg/stego"
)

// Profile is the top-level structure of a profile TOML file.
type Profile struct {
	Engine   Engine   `toml:"engine"`
	Envelope Envelope `toml:"envelope"`
}

// Engine carries the recognized engine options. Zero values (nil for the
// threshold, whose zero is meaningful) fall back to the engine defaults.
type Engine struct {
	Multiplier uint32 `toml:"prng_multiplier"`
	Increment  uint32 `toml:"prng_increment"`
	Window     int    `toml:"complexity_window"`
	Threshold  *int   `toml:"complexity_threshold"`
	HeaderBits int    `toml:"length_header_bits"`
}

// Envelope carries payload envelope preferences.
type Envelope struct {
	Compression string `toml:"compression"` // "auto", "none", "lz4", "zstd"
	Raw         bool   `toml:"raw"`         // skip the envelope entirely
}

// Options resolves the profile into validated-ready engine options,
// defaulting every unset field.
func (p *Profile) Options() stego.Options {
	opts := stego.DefaultOptions()
	if p.Engine.Multiplier != 0 {
		opts.Multiplier = p.Engine.Multiplier
	}
	if p.Engine.Increment != 0 {
		opts.Increment = p.Engine.Increment
	}
	if p.Engine.Window != 0 {
		opts.Window = p.Engine.Window
	}
	if p.Engine.Threshold != nil {
		opts.Threshold = *p.Engine.Threshold
	}
	if p.Engine.HeaderBits != 0 {
		opts.HeaderBits = p.Engine.HeaderBits
	}
	return opts
}

// Compression resolves the envelope compression preference; unset means
// "auto".
func (p *Profile) Compression() (envelope.Compression, error) {
	return envelope.ParseCompression(p.Envelope.Compression)
}

func intPtr(v int) *int { return &v }

// Builtins maps builtin profile names to their settings.
var Builtins = map[string]Profile{
	// Everything at engine defaults.
	"default": {},

	// Lower threshold: more slots accepted, more capacity, weaker cover.
	"dense": {
		Engine: Engine{Threshold: intPtr(8)},
	},

	// Higher threshold over a wider window: bits land only in strongly
	// textured regions.
	"cautious": {
		Engine: Engine{Threshold: intPtr(48), Window: 5},
	},
}
