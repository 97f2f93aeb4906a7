package scaffold

import (
	"errors"
	"os"
	"path/filepath"
)

// excludedNames are never copied out of a template.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// manifestFile is written by the creator and merged with template.json, so a
// copy shipped at the top of a template is ignored.
const manifestFile = "package.json"

// copyDir recursively copies src into dst and returns the copied files
// relative to dst. Existing files in dst are overwritten; every write is
// recorded in journal first.
func copyDir(src, dst string, journal *Journal) ([]string, error) {
	var files []string
	if err := copyTree(src, dst, "", &files, journal); err != nil {
		return files, err
	}
	return files, nil
}

func copyTree(src, dst, rel string, files *[]string, journal *Journal) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dst, srcInfo.Mode().Perm()|0700); err != nil {
			return err
		}
		journal.record(change{kind: createdDir, path: dst})
	} else if err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if shouldExclude(entry.Name()) || (rel == "" && entry.Name() == manifestFile) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := filepath.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := copyTree(srcPath, dstPath, relPath, files, journal); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := journal.beforeWrite(dstPath); err != nil {
				return err
			}
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			*files = append(*files, filepath.ToSlash(relPath))
		}
		// Skip symlinks and other special files during copy.
	}

	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}

// shouldExclude returns true if the name should be excluded during copy.
func shouldExclude(name string) bool {
	return excludedNames[name]
}
