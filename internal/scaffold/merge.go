package scaffold

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/agentx-labs/create-app/internal/manifest"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
)

// reservedKeys in template.json never overwrite the project manifest.
var reservedKeys = map[string]bool{
	"name":            true,
	"version":         true,
	"private":         true,
	"description":     true,
	"main":            true,
	"bin":             true,
	"files":           true,
	"dependencies":    true,
	"devDependencies": true,
	"scripts":         true,
}

// npmRunPattern matches npm at the start of a command or after a shell
// separator, so paths and names that merely end in "npm" are left alone.
var npmRunPattern = regexp.MustCompile(`(^|[\s;&|(])npm (?:run )?`)

// MergeOptions controls MergeManifest.
type MergeOptions struct {
	Manager         pkgmgr.Kind
	TemplatePackage string
}

// MergeManifest folds the template manifest into root/package.json. The
// template's scripts replace the project's scripts outright; under yarn,
// "npm run x" and "npm x" become "yarn x". Other non-reserved template keys
// are copied verbatim. The template package itself is dropped from
// dependencies since the project does not need it once copied.
func MergeManifest(root string, tm *manifest.TemplateManifest, opts MergeOptions) error {
	path := filepath.Join(root, manifest.PackageFile)
	pkg, err := manifest.ReadPackage(path)
	if err != nil {
		return err
	}

	if tm != nil {
		if len(tm.Scripts) > 0 {
			scripts := make(map[string]string, len(tm.Scripts))
			for name, cmd := range tm.Scripts {
				scripts[name] = RewriteScript(cmd, opts.Manager)
			}
			pkg.SetStringMap("scripts", scripts)
		}

		for key, raw := range tm.Extra {
			if reservedKeys[key] {
				continue
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("decoding template key %q: %w", key, err)
			}
			pkg[key] = v
		}
	}

	if opts.TemplatePackage != "" {
		name := pkgmgr.ParseDependency(opts.TemplatePackage).Name
		deps := pkg.StringMap("dependencies")
		if _, ok := deps[name]; ok {
			delete(deps, name)
			pkg.SetStringMap("dependencies", deps)
		}
	}

	return manifest.WritePackage(path, pkg)
}

// RewriteScript converts npm script invocations to the manager's syntax.
// Only yarn needs a rewrite.
func RewriteScript(cmd string, kind pkgmgr.Kind) string {
	if kind != pkgmgr.Yarn {
		return cmd
	}
	return npmRunPattern.ReplaceAllString(cmd, "${1}"+kind.RunScript())
}
