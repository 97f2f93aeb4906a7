package pkgmgr

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/agentx-labs/create-app/internal/errutils"
	"github.com/agentx-labs/create-app/internal/logger"
)

// Dependency is a package specifier passed to the manager.
type Dependency struct {
	Name string
	// Version is a version or range. Empty and "*" mean latest.
	Version string
}

// String renders the specifier as the manager expects it: the bare name
// when any version is acceptable, name@version otherwise.
func (d Dependency) String() string {
	if d.Version == "" || d.Version == "*" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}

// ParseDependency splits "name@version" into its parts. Scoped names such
// as "@scope/pkg@1.0.0" keep their leading "@".
func ParseDependency(spec string) Dependency {
	spec = strings.TrimSpace(spec)
	search := spec
	offset := 0
	if strings.HasPrefix(spec, "@") {
		search = spec[1:]
		offset = 1
	}
	if i := strings.LastIndex(search, "@"); i > 0 {
		return Dependency{Name: spec[:i+offset], Version: spec[i+offset+1:]}
	}
	return Dependency{Name: spec}
}

// DependenciesFromMap converts a manifest dependency map into specifiers
// sorted by name.
func DependenciesFromMap(m map[string]string) []Dependency {
	deps := make([]Dependency, 0, len(m))
	for name, version := range m {
		deps = append(deps, Dependency{Name: name, Version: version})
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].Name < deps[j].Name })
	return deps
}

// Request describes one package-manager invocation. Build a fresh Request
// for each call.
type Request struct {
	Root         string
	Manager      Kind
	PlugAndPlay  bool
	Dependencies []Dependency
	Verbose      bool
	Online       bool
	Dev          bool
}

// Args builds the argument vector for the request, excluding the executable.
func Args(req Request) []string {
	var args []string

	switch req.Manager {
	case Yarn:
		args = append(args, "add", "--exact")
		if req.Dev {
			args = append(args, "--dev")
		}
		if !req.Online {
			args = append(args, "--offline")
		}
		if req.PlugAndPlay {
			args = append(args, "--enable-pnp")
		}
		args = append(args, specifiers(req.Dependencies)...)
		// yarn add does not reliably honor the process working directory.
		args = append(args, "--cwd", req.Root)
	default:
		save := "--save"
		if req.Dev {
			save = "--save-dev"
		}
		args = append(args, "install", "--no-audit", save, "--save-exact", "--loglevel", "error")
		args = append(args, specifiers(req.Dependencies)...)
	}

	if req.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

// CommandLine renders the full command for diagnostics. Arguments containing
// whitespace are quoted so the line can be pasted back into a shell.
func CommandLine(req Request) string {
	parts := []string{req.Manager.Command()}
	for _, a := range Args(req) {
		if strings.ContainsAny(a, " \t\n\"'") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func specifiers(deps []Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.String())
	}
	return out
}

// Installer runs install requests.
type Installer struct {
	Runner Runner
	// Warn receives non-fatal warnings. Nil logs them instead.
	Warn func(msg string)
}

// Install runs the request and waits for the manager to exit. A request
// without dependencies is a no-op. Plug-and-play is dropped with a warning
// when the manager is npm. A non-zero exit is returned as
// *errutils.InstallError.
func (i *Installer) Install(ctx context.Context, req Request) error {
	if len(req.Dependencies) == 0 {
		logger.Debug("nothing to install", logger.Fields{"root": req.Root, "dev": req.Dev})
		return nil
	}

	if req.PlugAndPlay && req.Manager != Yarn {
		i.warn("--use-pnp has no effect with npm; installing without Plug'n'Play.")
		req.PlugAndPlay = false
	}

	line := CommandLine(req)
	logger.Debug("running install", logger.Fields{"command": line})

	if err := i.Runner.Run(ctx, req.Root, req.Manager.Command(), Args(req)...); err != nil {
		return &errutils.InstallError{Command: line, Err: err}
	}
	return nil
}

func (i *Installer) warn(msg string) {
	if i.Warn != nil {
		i.Warn(msg)
		return
	}
	logger.Warn(msg)
}
