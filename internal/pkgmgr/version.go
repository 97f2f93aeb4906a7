package pkgmgr

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Minimum versions checked during probing.
var (
	// MinNpmVersion is the oldest npm that supports the install flags we pass.
	MinNpmVersion = semver.MustParse("5.0.0")
	// MinYarnPnpVersion is the oldest yarn that understands --enable-pnp.
	MinYarnPnpVersion = semver.MustParse("1.12.0")
	// MinRuntimeVersion is the oldest Node.js the generated projects support.
	MinRuntimeVersion = semver.MustParse("14.0.0")
)

// suffixPattern matches a pre-release or build suffix after the version core.
var suffixPattern = regexp.MustCompile(`^(.+?)[-+].+$`)

// Minimum returns the version threshold checked for the manager.
func (k Kind) Minimum() *semver.Version {
	if k == Yarn {
		return MinYarnPnpVersion
	}
	return MinNpmVersion
}

// ParseVersion parses the first line of a --version output. A leading "v"
// and any pre-release or build suffix are dropped, so "1.12.0-rc1" parses
// as 1.12.0.
func ParseVersion(raw string) (*semver.Version, error) {
	v := strings.TrimSpace(raw)
	if i := strings.IndexByte(v, '\n'); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	v = strings.TrimPrefix(v, "v")
	v = suffixPattern.ReplaceAllString(v, "$1")
	if v == "" {
		return nil, fmt.Errorf("empty version string")
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", raw, err)
	}
	return parsed, nil
}

// MeetsMinimum reports whether version is at or above min. Unparseable
// versions never meet the minimum.
func MeetsMinimum(version string, min *semver.Version) bool {
	v, err := ParseVersion(version)
	if err != nil {
		return false
	}
	return !v.LessThan(min)
}
