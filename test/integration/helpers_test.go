//go:build integration

package integration_test

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/agentx-labs/create-app/internal/create"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
)

const templatePackage = "create-app-templates"

// testEnv is a sandbox with fake node, npm, and yarnpkg executables first on
// PATH. The fakes log every install to LogFile and unpack TemplatesDir as
// the template package.
type testEnv struct {
	BinDir       string
	TemplatesDir string
	LogFile      string
	ParentDir    string
}

const fakeNode = `#!/bin/sh
echo "v20.11.0"
`

// fakeInstall is shared by both managers: $root is the project root and
// $lock the lockfile name.
const fakeInstall = `
echo "$0 $*" >> "$FAKE_LOG"
count=$(wc -l < "$FAKE_LOG" | tr -d ' ')
mkdir -p "$root/node_modules"
touch "$root/$lock"
if [ -n "$FAKE_FAIL_ON" ] && [ "$count" -eq "$FAKE_FAIL_ON" ]; then
  echo "error An unexpected error occurred" >&2
  exit 1
fi
for a in "$@"; do
  case "$a" in
    ` + templatePackage + `*)
      mkdir -p "$root/node_modules/` + templatePackage + `"
      cp -R "$FAKE_TEMPLATES/." "$root/node_modules/` + templatePackage + `/"
      ;;
  esac
done
exit 0
`

const fakeYarn = `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "${FAKE_YARN_VERSION:-1.22.19}"
  exit 0
fi
root=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--cwd" ]; then root="$a"; fi
  prev="$a"
done
lock=yarn.lock
` + fakeInstall

const fakeNpm = `#!/bin/sh
case "$1" in
  --version)
    echo "10.2.4"
    exit 0
    ;;
  config)
    if [ "$2" = "list" ]; then
      echo "; node bin location = /usr/bin/node"
      echo "; cwd = ${FAKE_NPM_CWD:-$(pwd)}"
    else
      echo "null"
    fi
    exit 0
    ;;
esac
root=$(pwd)
lock=package-lock.json
` + fakeInstall

// setupTestEnv writes the fake executables and points PATH and the FAKE_*
// variables at them. Yarn is only installed when withYarn is set.
func setupTestEnv(t *testing.T, withYarn bool) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake package managers are shell scripts")
	}

	env := &testEnv{
		BinDir:       t.TempDir(),
		TemplatesDir: t.TempDir(),
		ParentDir:    t.TempDir(),
	}
	env.LogFile = filepath.Join(t.TempDir(), "installs.log")

	writeExecutable(t, filepath.Join(env.BinDir, "node"), fakeNode)
	writeExecutable(t, filepath.Join(env.BinDir, "npm"), fakeNpm)
	if withYarn {
		writeExecutable(t, filepath.Join(env.BinDir, "yarnpkg"), fakeYarn)
	}

	// Keep the system directories for sh, cp, and friends, but not a real
	// yarn or npm.
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+"/bin"+string(os.PathListSeparator)+"/usr/bin")
	t.Setenv("FAKE_LOG", env.LogFile)
	t.Setenv("FAKE_TEMPLATES", env.TemplatesDir)
	t.Setenv("FAKE_FAIL_ON", "")
	t.Setenv("https_proxy", "")
	t.Setenv("HTTPS_PROXY", "")

	return env
}

// addTemplate writes a template for typ/lang into the fake template package.
func (e *testEnv) addTemplate(t *testing.T, typ, lang string, files map[string]string, templateJSON string) {
	t.Helper()
	base := filepath.Join(e.TemplatesDir, "templates", typ, lang)
	if err := os.MkdirAll(filepath.Join(base, "template"), 0755); err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(base, "template", filepath.FromSlash(rel)), content)
	}
	if templateJSON != "" {
		writeFile(t, filepath.Join(base, "template.json"), templateJSON)
	}
}

// installs returns the logged install command lines.
func (e *testEnv) installs(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

// newCreator builds a Creator that runs the fakes through the real runner.
// The registry host is localhost so the online probe never leaves the
// machine.
func (e *testEnv) newCreator(opts create.Options) (*create.Creator, *bytes.Buffer) {
	var out bytes.Buffer
	if opts.TemplatePackage == "" {
		opts.TemplatePackage = templatePackage
	}
	opts.Name = filepath.Join(e.ParentDir, opts.Name)
	opts.RegistryHost = "localhost"

	runner := &pkgmgr.ExecRunner{Stdout: &out, Stderr: &out}
	return create.New(opts, runner, &out, &out), &out
}

func writeExecutable(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
