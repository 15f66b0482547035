// validator.go - Advisory checks on loaded profiles.
package profile

import (
	"fmt"

	"github.com/xob0t/GoVeil/pkg/envelope"
)

// Validate returns warnings (never fatal errors) for profile values that
// are legal but likely not what the user wants.
func Validate(p *Profile) []string {
	var warnings []string

	if p.Envelope.Compression != "" {
		if _, err := envelope.ParseCompression(p.Envelope.Compression); err != nil {
			warnings = append(warnings, fmt.Sprintf("%v; using auto", err))
		}
	}

	if p.Engine.Threshold != nil && *p.Engine.Threshold < 0 {
		warnings = append(warnings,
			"complexity_threshold below 0 accepts every interior slot, including flat regions where embedding is easiest to detect")
	}

	if p.Engine.HeaderBits != 0 && p.Engine.HeaderBits < 16 {
		warnings = append(warnings,
			fmt.Sprintf("length_header_bits %d caps payloads at %d bytes", p.Engine.HeaderBits, (uint64(1)<<p.Engine.HeaderBits)-1))
	}

	return warnings
}
