package scaffold

import (
	"errors"
	"os"

	"github.com/agentx-labs/create-app/internal/errutils"
)

type changeKind int

const (
	createdFile changeKind = iota
	createdDir
	replacedFile
	renamedFile
)

type change struct {
	kind changeKind
	path string
	// from is the original path of a renamed file.
	from string
	// data and mode hold the original content of a replaced file.
	data []byte
	mode os.FileMode
}

// Journal records every filesystem change Materialize makes so a failed
// run can put the project directory back the way it found it. A nil
// Journal records nothing.
type Journal struct {
	changes []change
}

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Len returns the number of recorded changes.
func (j *Journal) Len() int {
	if j == nil {
		return 0
	}
	return len(j.changes)
}

func (j *Journal) record(c change) {
	if j != nil {
		j.changes = append(j.changes, c)
	}
}

// beforeWrite snapshots path ahead of a write: an existing file is saved
// for restoration, a missing one is recorded as created.
func (j *Journal) beforeWrite(path string) error {
	if j == nil {
		return nil
	}
	info, err := os.Lstat(path)
	if errors.Is(err, os.ErrNotExist) {
		j.record(change{kind: createdFile, path: path})
		return nil
	}
	if err != nil {
		return errutils.Wrapf(err, "inspecting %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errutils.Wrapf(err, "reading %s", path)
	}
	j.record(change{kind: replacedFile, path: path, data: data, mode: info.Mode().Perm()})
	return nil
}

// Undo reverts the recorded changes, newest first. It keeps going past
// individual failures and returns them joined.
func (j *Journal) Undo() error {
	if j == nil {
		return nil
	}
	var errs []error
	for i := len(j.changes) - 1; i >= 0; i-- {
		if err := j.changes[i].revert(); err != nil {
			errs = append(errs, err)
		}
	}
	j.changes = nil
	return errors.Join(errs...)
}

func (c change) revert() error {
	switch c.kind {
	case createdFile:
		if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return errutils.Wrapf(err, "removing %s", c.path)
		}
	case createdDir:
		// Left in place when something this run did not create is inside.
		_ = os.Remove(c.path)
	case replacedFile:
		if err := os.WriteFile(c.path, c.data, c.mode); err != nil {
			return errutils.Wrapf(err, "restoring %s", c.path)
		}
	case renamedFile:
		if err := os.Rename(c.path, c.from); err != nil {
			return errutils.Wrapf(err, "renaming %s back to %s", c.path, c.from)
		}
	}
	return nil
}
