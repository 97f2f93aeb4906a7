package pkgmgr

import (
	"context"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/create-app/internal/logger"
)

// DefaultRegistryHost is resolved by ProbeOnline when yarn is in use.
const DefaultRegistryHost = "registry.yarnpkg.com"

// cwdPrefix introduces the working-directory line in `npm config list`.
const cwdPrefix = "; cwd = "

// Resolver looks up hostnames. *net.Resolver satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Info describes the package manager selected for a run.
type Info struct {
	Kind Kind
	// Version is the trimmed --version output, empty when unknown.
	Version string
	// MeetsMinimum reports whether Version is at or above Kind.Minimum().
	MeetsMinimum bool
}

// Prober inspects the package-manager environment.
type Prober struct {
	Runner       Runner
	Resolver     Resolver
	Getenv       func(string) string
	RegistryHost string
}

// NewProber returns a Prober using the system resolver and environment.
func NewProber(r Runner) *Prober {
	return &Prober{
		Runner:       r,
		Resolver:     net.DefaultResolver,
		Getenv:       os.Getenv,
		RegistryHost: DefaultRegistryHost,
	}
}

// Detect selects yarn when `yarnpkg --version` succeeds, npm otherwise.
// forcePrimary selects npm without probing.
func (p *Prober) Detect(ctx context.Context, forcePrimary bool) Kind {
	if forcePrimary {
		return Npm
	}
	if _, err := p.Runner.Output(ctx, "", Yarn.Command(), "--version"); err != nil {
		logger.Debug("yarn not available", logger.Fields{"error": err.Error()})
		return Npm
	}
	return Yarn
}

// ProbeVersion queries the manager's version. Failures produce an Info with
// an empty Version that does not meet the minimum; they are never fatal.
func (p *Prober) ProbeVersion(ctx context.Context, kind Kind) Info {
	info := Info{Kind: kind}

	out, err := p.Runner.Output(ctx, "", kind.Command(), "--version")
	if err != nil {
		logger.Debug("version probe failed", logger.Fields{"manager": kind.String(), "error": err.Error()})
		return info
	}

	v, err := ParseVersion(out)
	if err != nil {
		logger.Debug("unparseable manager version", logger.Fields{"manager": kind.String(), "output": out})
		return info
	}

	info.Version = strings.TrimSpace(out)
	info.MeetsMinimum = !v.LessThan(kind.Minimum())
	return info
}

// ProbeOnline reports whether the registry looks reachable. With npm it
// returns true without touching the network; npm's own install surfaces
// connectivity failures. With yarn it resolves the registry host and, if
// that fails, the configured HTTPS proxy's host.
func (p *Prober) ProbeOnline(ctx context.Context, kind Kind) bool {
	if kind != Yarn {
		return true
	}

	if p.resolves(ctx, p.registryHost()) {
		return true
	}

	proxy := p.proxy(ctx)
	if proxy == "" {
		return false
	}
	host := proxyHost(proxy)
	if host == "" {
		logger.Debug("could not parse proxy host", logger.Fields{"proxy": proxy})
		return false
	}
	return p.resolves(ctx, host)
}

// ProbeCwdConsistency runs `npm config list` in root and compares the
// working directory npm reports against root. A shell wrapper that changes
// directories shows up as a mismatch. When the reported directory cannot be
// determined the result is consistent.
func (p *Prober) ProbeCwdConsistency(ctx context.Context, root string) (bool, string) {
	out, err := p.Runner.Output(ctx, root, Npm.Command(), "config", "list")
	if err != nil {
		logger.Debug("npm config list failed", logger.Fields{"error": err.Error()})
		return true, ""
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, cwdPrefix) {
			continue
		}
		reported := strings.TrimSpace(strings.TrimPrefix(line, cwdPrefix))
		if reported == "" {
			return true, ""
		}
		return samePath(reported, root), reported
	}
	return true, ""
}

// ProbeRuntime returns the installed Node.js version without the leading "v".
func (p *Prober) ProbeRuntime(ctx context.Context) (string, error) {
	out, err := p.Runner.Output(ctx, "", "node", "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(strings.TrimSpace(out), "v"), nil
}

func (p *Prober) resolves(ctx context.Context, host string) bool {
	if p.Resolver == nil || host == "" {
		return false
	}
	addrs, err := p.Resolver.LookupHost(ctx, host)
	if err != nil {
		logger.Debug("dns lookup failed", logger.Fields{"host": host, "error": err.Error()})
		return false
	}
	return len(addrs) > 0
}

func (p *Prober) registryHost() string {
	if p.RegistryHost == "" {
		return DefaultRegistryHost
	}
	return p.RegistryHost
}

// proxy returns the HTTPS proxy from the environment, falling back to
// `npm config get https-proxy`. Empty means no proxy is configured.
func (p *Prober) proxy(ctx context.Context) string {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range []string{"https_proxy", "HTTPS_PROXY"} {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}

	out, err := p.Runner.Output(ctx, "", Npm.Command(), "config", "get", "https-proxy")
	if err != nil {
		return ""
	}
	v := strings.TrimSpace(out)
	if v == "null" || v == "undefined" {
		return ""
	}
	return v
}

func proxyHost(proxy string) string {
	if !strings.Contains(proxy, "://") {
		proxy = "http://" + proxy
	}
	u, err := url.Parse(proxy)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// samePath compares two directories after cleaning and, where possible,
// resolving symlinks (macOS temp dirs live behind /var -> /private/var).
func samePath(a, b string) bool {
	return canonical(a) == canonical(b)
}

func canonical(p string) string {
	p = filepath.Clean(p)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved
	}
	return p
}
