// Package errutils defines the error taxonomy shared by the scaffolding
// workflow. Fatal conditions are sentinel values wrapped with context via
// fmt.Errorf("...: %w"); callers classify them with errors.Is. A failed
// package-manager invocation is reported as *InstallError, which carries the
// exact command line so the user can replay it.
package errutils

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedRuntimeVersion is returned when the JavaScript runtime is
	// older than a strict language choice requires.
	ErrUnsupportedRuntimeVersion = errors.New("unsupported runtime version")

	// ErrInvalidProjectName is returned when the project name is not a legal
	// package name.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrNameCollidesWithDependency is returned when the project name equals
	// one of the reserved dependency names.
	ErrNameCollidesWithDependency = errors.New("project name collides with a dependency")

	// ErrUnsafeTargetDirectory is returned when the target directory holds
	// files that could conflict with the generated project.
	ErrUnsafeTargetDirectory = errors.New("target directory contains conflicting files")

	// ErrCwdMismatch is returned when npm reports a working directory other
	// than the one it was started in, usually due to a shell wrapper.
	ErrCwdMismatch = errors.New("package manager working directory mismatch")

	// ErrTemplateNotFound is returned when the resolved template directory
	// does not exist in the installed template package.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrTemplateInvalid is returned when template.json fails schema validation.
	ErrTemplateInvalid = errors.New("invalid template manifest")

	// ErrManifestMissing is returned when the project's package.json is absent.
	ErrManifestMissing = errors.New("package.json not found")

	// ErrInstallFailed is matched by every *InstallError.
	ErrInstallFailed = errors.New("install failed")
)

// InstallError reports a package-manager invocation that exited non-zero.
type InstallError struct {
	// Command is the full command line that was run.
	Command string
	Err     error
}

func (e *InstallError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s has failed", e.Command)
	}
	return fmt.Sprintf("%s has failed: %v", e.Command, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Is reports ErrInstallFailed as a match so callers need not know the type.
func (e *InstallError) Is(target error) bool { return target == ErrInstallFailed }

// Wrap wraps an error with additional context. If the error is nil, Wrap
// returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context. If the error is
// nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsFatalValidation reports whether err is one of the pre-install validation
// failures. These abort the run before anything is written to disk.
func IsFatalValidation(err error) bool {
	for _, target := range []error{
		ErrUnsupportedRuntimeVersion,
		ErrInvalidProjectName,
		ErrNameCollidesWithDependency,
		ErrUnsafeTargetDirectory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
