package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentx-labs/create-app/internal/errutils"
)

// allowedEntries may exist in the target directory before scaffolding.
var allowedEntries = map[string]bool{
	".DS_Store":      true,
	".git":           true,
	".gitattributes": true,
	".gitignore":     true,
	".gitlab-ci.yml": true,
	".hg":            true,
	".hgcheck":       true,
	".hgignore":      true,
	".idea":          true,
	".npmignore":     true,
	".travis.yml":    true,
	"docs":           true,
	"LICENSE":        true,
	"README.md":      true,
	"mkdocs.yml":     true,
	"Thumbs.db":      true,
}

// logFilePrefixes identify leftovers from an earlier failed install.
var logFilePrefixes = []string{
	"npm-debug.log",
	"yarn-error.log",
	"yarn-debug.log",
}

func isLogFile(name string) bool {
	for _, p := range logFilePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// isAllowed also accepts IntelliJ *.iml module files.
func isAllowed(name string) bool {
	return allowedEntries[name] || strings.HasSuffix(name, ".iml") || isLogFile(name)
}

// Conflicts lists entries in root that could clash with generated files.
// A missing root has no conflicts. Directories are suffixed with "/".
func Conflicts(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errutils.Wrapf(err, "reading %s", root)
	}

	var conflicts []string
	for _, e := range entries {
		if isAllowed(e.Name()) {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		conflicts = append(conflicts, name)
	}
	sort.Strings(conflicts)
	return conflicts, nil
}

// CheckSafeDirectory fails with ErrUnsafeTargetDirectory when root holds
// conflicting entries. When it is safe, installer log files from a previous
// attempt are removed.
func CheckSafeDirectory(root string) error {
	conflicts, err := Conflicts(root)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: the directory %s contains files that could conflict:\n  %s\n"+
			"either try using a new directory name, or remove the files listed above",
			errutils.ErrUnsafeTargetDirectory, filepath.Base(root), strings.Join(conflicts, "\n  "))
	}
	return removeLogFiles(root)
}

func removeLogFiles(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errutils.Wrapf(err, "reading %s", root)
	}
	for _, e := range entries {
		if !isLogFile(e.Name()) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return errutils.Wrapf(err, "removing stale log %s", e.Name())
		}
	}
	return nil
}
