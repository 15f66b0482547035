// loader.go - Resolve profile names and parse profile TOML files.
package profile

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Load resolves nameOrPath: a builtin profile name first, otherwise a TOML
// file path. Unknown keys and questionable values come back as warnings,
// never errors - strict validation of the engine options happens when the
// engine is constructed.
func Load(nameOrPath string) (*Profile, []string, error) {
	if p, ok := Builtins[nameOrPath]; ok {
		return &p, nil, nil
	}

	var p Profile
	meta, err := toml.DecodeFile(nameOrPath, &p)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile %s: %w", nameOrPath, err)
	}

	var warnings []string
	for _, key := range meta.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("profile %s: unknown key %q ignored", nameOrPath, key.String()))
	}
	warnings = append(warnings, Validate(&p)...)

	return &p, warnings, nil
}
