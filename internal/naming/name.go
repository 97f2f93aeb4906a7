package naming

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/agentx-labs/create-app/internal/errutils"
)

const maxNameLength = 214

var (
	scopedPattern  = regexp.MustCompile(`^(?:@([^/]+?)/)?([^/]+?)$`)
	specialPattern = regexp.MustCompile(`[~'!()*]`)
)

// blacklist holds names npm refuses outright.
var blacklist = map[string]bool{
	"node_modules": true,
	"favicon.ico":  true,
}

// builtinModules are Node core modules; a package may not shadow them.
var builtinModules = map[string]bool{
	"assert": true, "buffer": true, "child_process": true, "cluster": true,
	"console": true, "constants": true, "crypto": true, "dgram": true,
	"dns": true, "domain": true, "events": true, "fs": true, "http": true,
	"http2": true, "https": true, "inspector": true, "module": true,
	"net": true, "os": true, "path": true, "perf_hooks": true,
	"process": true, "punycode": true, "querystring": true, "readline": true,
	"repl": true, "stream": true, "string_decoder": true, "sys": true,
	"timers": true, "tls": true, "trace_events": true, "tty": true,
	"url": true, "util": true, "v8": true, "vm": true, "wasi": true,
	"worker_threads": true, "zlib": true,
}

// Result is the outcome of ValidateName.
type Result struct {
	// ValidForNewPackages is false when Errors or Warnings is non-empty.
	ValidForNewPackages bool
	Errors              []string
	Warnings            []string
}

// Problems returns errors followed by warnings.
func (r Result) Problems() []string {
	return append(append([]string{}, r.Errors...), r.Warnings...)
}

// ValidateName checks name against the npm package-name rules.
func ValidateName(name string) Result {
	var res Result

	if name == "" {
		res.Errors = append(res.Errors, "name length must be greater than zero")
		return res
	}
	if strings.HasPrefix(name, ".") {
		res.Errors = append(res.Errors, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		res.Errors = append(res.Errors, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		res.Errors = append(res.Errors, "name cannot contain leading or trailing spaces")
	}
	if blacklist[strings.ToLower(name)] {
		res.Errors = append(res.Errors, fmt.Sprintf("%s is a blacklisted name", name))
	}

	if builtinModules[strings.ToLower(name)] {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s is a core module name", name))
	}
	if len(name) > maxNameLength {
		res.Warnings = append(res.Warnings, fmt.Sprintf("name can no longer contain more than %d characters", maxNameLength))
	}
	if strings.ToLower(name) != name {
		res.Warnings = append(res.Warnings, "name can no longer contain capital letters")
	}
	if specialPattern.MatchString(lastSegment(name)) {
		res.Warnings = append(res.Warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !urlSafe(name) {
		res.Errors = append(res.Errors, "name can only contain URL-friendly characters")
	}

	res.ValidForNewPackages = len(res.Errors) == 0 && len(res.Warnings) == 0
	return res
}

// urlSafe accepts names that survive URL escaping unchanged, treating a
// scoped name's "@scope/" prefix as a unit.
func urlSafe(name string) bool {
	if url.PathEscape(name) == name {
		return true
	}
	m := scopedPattern.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	scope, pkg := m[1], m[2]
	if strings.HasPrefix(pkg, ".") {
		return false
	}
	return url.PathEscape(scope) == scope && url.PathEscape(pkg) == pkg
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[i+1:]
	}
	return name
}

// CheckName validates name and returns ErrInvalidProjectName listing every
// problem when it is not usable for a new package.
func CheckName(name string) error {
	res := ValidateName(name)
	if res.ValidForNewPackages {
		return nil
	}
	return fmt.Errorf("%w %q because of npm naming restrictions:\n  * %s",
		errutils.ErrInvalidProjectName, name, strings.Join(res.Problems(), "\n  * "))
}

// CheckCollision rejects a project name equal to one of the reserved
// dependency names; npm refuses to install a package into a project of the
// same name.
func CheckCollision(name string, reserved []string) error {
	for _, r := range reserved {
		if r == name {
			return fmt.Errorf("%w: %q, choose a different project name (reserved: %s)",
				errutils.ErrNameCollidesWithDependency, name, strings.Join(reserved, ", "))
		}
	}
	return nil
}
