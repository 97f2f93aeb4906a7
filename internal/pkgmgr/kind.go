package pkgmgr

// Kind identifies a package manager.
type Kind int

const (
	// Npm is the primary manager, assumed always available.
	Npm Kind = iota
	// Yarn is the secondary manager, used when present unless npm is forced.
	Yarn
)

// Command returns the executable name used to invoke the manager.
func (k Kind) Command() string {
	if k == Yarn {
		return "yarnpkg"
	}
	return "npm"
}

// Lockfile returns the lockfile name the manager writes into the project root.
func (k Kind) Lockfile() string {
	if k == Yarn {
		return "yarn.lock"
	}
	return "package-lock.json"
}

// RunScript returns the prefix used to run a package script, e.g. "yarn "
// or "npm run ".
func (k Kind) RunScript() string {
	if k == Yarn {
		return "yarn "
	}
	return "npm run "
}

// String returns a human-readable name for the manager.
func (k Kind) String() string {
	switch k {
	case Npm:
		return "npm"
	case Yarn:
		return "yarn"
	default:
		return "unknown"
	}
}
