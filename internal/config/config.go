// Package config holds the small set of toolchain-wide settings nyxc
// reads at startup: the minimum language version a source tree declares
// it requires, checked against this build's version the same way the
// teacher's package manager checks a dependency's version range.
package config

import (
	"fmt"

	semver "github.com/Masterminds/semver/v3"
)

// ToolchainVersion is this build's own version, bumped by hand at
// release time. There is no build-time injection step in this repo.
const ToolchainVersion = "0.1.0"

// Manifest is the minimal subset of a project manifest nyxc consults.
// A real manifest format (TOML, JSON, ...) is out of scope; callers
// build a Manifest from whatever front end they have (flags, a fixture
// file, a future config file) and pass it to CheckVersion.
type Manifest struct {
	// MinVersion is a semver constraint string, e.g. ">= 0.1.0" or
	// "^0.1.0". Empty means no constraint is declared.
	MinVersion string
}

// CheckVersion reports whether this build's ToolchainVersion satisfies
// m.MinVersion. An empty constraint always succeeds.
func CheckVersion(m Manifest) error {
	if m.MinVersion == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.MinVersion)
	if err != nil {
		return fmt.Errorf("config: invalid min-version constraint %q: %w", m.MinVersion, err)
	}

	built, err := semver.NewVersion(ToolchainVersion)
	if err != nil {
		return fmt.Errorf("config: invalid toolchain version %q: %w", ToolchainVersion, err)
	}

	if !constraint.Check(built) {
		return fmt.Errorf("config: this build is nyxc %s, which does not satisfy %q", ToolchainVersion, m.MinVersion)
	}

	return nil
}
