package create

import (
	"os"
	"path/filepath"

	"github.com/agentx-labs/create-app/internal/errutils"
)

// generatedFiles is the fixed set of entries a failed run may delete from
// the project root. Names are matched exactly.
var generatedFiles = map[string]bool{
	"package.json":      true,
	"yarn.lock":         true,
	"package-lock.json": true,
	"node_modules":      true,
}

// RollbackResult reports what Rollback removed.
type RollbackResult struct {
	// Deleted lists removed entries of root, sorted.
	Deleted []string
	// RemovedRoot is set when root was left empty and deleted.
	RemovedRoot bool
}

// Rollback deletes the generated entries directly under root and then
// removes root itself if nothing else is left in it. Every other entry is
// left untouched. A missing root is not an error.
func Rollback(root string) (*RollbackResult, error) {
	result := &RollbackResult{}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, errutils.Wrapf(err, "reading %s", root)
	}

	for _, e := range entries {
		if !generatedFiles[e.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(root, e.Name())); err != nil {
			return result, errutils.Wrapf(err, "deleting %s", e.Name())
		}
		result.Deleted = append(result.Deleted, e.Name())
	}

	remaining, err := os.ReadDir(root)
	if err != nil {
		return result, errutils.Wrapf(err, "reading %s", root)
	}
	if len(remaining) == 0 {
		if err := os.Remove(root); err != nil {
			return result, errutils.Wrapf(err, "removing %s", root)
		}
		result.RemovedRoot = true
	}
	return result, nil
}
