package scaffold

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/create-app/internal/errutils"
	"github.com/agentx-labs/create-app/internal/manifest"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
)

const (
	templateDirName = "template"
	gitignoreSource = "gitignore"
	gitignoreTarget = ".gitignore"
	readmeFile      = "README.md"
	readmeBackup    = "README.old.md"
)

// Ref names a template inside a template package.
type Ref struct {
	Type     string
	Language string
}

// Segment returns the template's path inside the package,
// "templates/<type>/<language>". No existence check is made.
func (r Ref) Segment() string {
	return filepath.Join("templates", r.Type, r.Language)
}

// Dir returns the template's directory once templatePackage is installed
// under root. A version suffix on templatePackage is ignored.
func (r Ref) Dir(root, templatePackage string) string {
	name := pkgmgr.ParseDependency(templatePackage).Name
	return filepath.Join(root, "node_modules", filepath.FromSlash(name), r.Segment())
}

func (r Ref) String() string {
	return r.Type + "/" + r.Language
}

// Result holds the outcome of Materialize.
type Result struct {
	OutputDir string
	// Files lists copied files relative to OutputDir, sorted.
	Files []string
	// Template is the parsed template.json, nil when the template has none.
	Template *manifest.TemplateManifest
	Warnings []string
}

// Materialize copies the template referenced by ref from the installed
// templatePackage into root. A pre-existing README.md is kept as
// README.old.md when the template ships its own; the template's gitignore
// file becomes (or is appended to) .gitignore. Every change to root is
// recorded in journal, which may be nil, including changes made before an
// error is returned.
func Materialize(root string, ref Ref, templatePackage string, journal *Journal) (*Result, error) {
	tmplRoot := ref.Dir(root, templatePackage)
	srcDir := filepath.Join(tmplRoot, templateDirName)

	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s has no %s template (looked in %s)",
			errutils.ErrTemplateNotFound, templatePackage, ref, srcDir)
	}

	tm, _, err := manifest.ReadTemplate(filepath.Join(tmplRoot, manifest.TemplateFile))
	if err != nil {
		return nil, err
	}

	result := &Result{
		OutputDir: root,
		Template:  tm,
	}

	if exists(filepath.Join(srcDir, manifestFile)) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("The %s template ships a %s; it is ignored in favour of %s", ref, manifestFile, manifest.TemplateFile))
	}

	if exists(filepath.Join(srcDir, readmeFile)) && exists(filepath.Join(root, readmeFile)) {
		readme, backup := filepath.Join(root, readmeFile), filepath.Join(root, readmeBackup)
		if err := journal.beforeWrite(backup); err != nil {
			return nil, err
		}
		if err := os.Rename(readme, backup); err != nil {
			return nil, errutils.Wrapf(err, "backing up existing %s", readmeFile)
		}
		journal.record(change{kind: renamedFile, path: backup, from: readme})
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("You had a %s file, we renamed it to %s", readmeFile, readmeBackup))
	}

	files, err := copyDir(srcDir, root, journal)
	if err != nil {
		return nil, errutils.Wrapf(err, "copying template %s", ref)
	}

	renamed, err := installGitignore(root, journal)
	if err != nil {
		return nil, err
	}
	if renamed {
		for i, f := range files {
			if f == gitignoreSource {
				files[i] = gitignoreTarget
			}
		}
	}

	sort.Strings(files)
	result.Files = files
	return result, nil
}

// installGitignore turns root/gitignore into root/.gitignore, appending to
// an existing .gitignore instead of replacing it. Reports whether a
// gitignore file was present.
func installGitignore(root string, journal *Journal) (bool, error) {
	src := filepath.Join(root, gitignoreSource)
	dst := filepath.Join(root, gitignoreTarget)

	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errutils.Wrapf(err, "reading %s", src)
	}

	if !exists(dst) {
		if err := os.Rename(src, dst); err != nil {
			return false, errutils.Wrapf(err, "renaming %s to %s", gitignoreSource, gitignoreTarget)
		}
		journal.record(change{kind: renamedFile, path: dst, from: src})
		return true, nil
	}

	existing, err := os.ReadFile(dst)
	if err != nil {
		return false, errutils.Wrapf(err, "reading %s", dst)
	}
	if err := journal.beforeWrite(dst); err != nil {
		return false, err
	}
	if len(existing) > 0 && !bytes.HasSuffix(existing, []byte("\n")) {
		data = append([]byte("\n"), data...)
	}

	f, err := os.OpenFile(dst, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return false, errutils.Wrapf(err, "opening %s", dst)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return false, errutils.Wrapf(err, "appending to %s", dst)
	}
	if err := os.Remove(src); err != nil {
		return false, errutils.Wrapf(err, "removing %s", src)
	}
	return true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
