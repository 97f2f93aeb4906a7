package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/create-app/internal/pkgmgr"
)

const testTemplatePackage = "create-app-templates"

type call struct {
	Dir  string
	Name string
	Args []string
}

func (c call) line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// fakeManager stands in for npm and yarn. Output calls are answered from a
// table; Run calls behave like an install: they create node_modules and a
// lockfile in the target root, and unpack the template package when it is
// the package being installed.
type fakeManager struct {
	outputs map[string]string
	// packageFiles are written under node_modules/<template package>/ when
	// the template package is installed. Keys are slash-separated; a key
	// ending in "/" creates an empty directory.
	packageFiles map[string]string
	// failOnRun makes the n-th Run call (1-based) exit non-zero.
	failOnRun int

	runs        []call
	outputCalls []call
}

func (f *fakeManager) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	c := call{Dir: dir, Name: name, Args: args}
	f.outputCalls = append(f.outputCalls, c)
	out, ok := f.outputs[c.line()]
	if !ok {
		return "", errors.New("executable file not found in $PATH")
	}
	return out, nil
}

func (f *fakeManager) Run(_ context.Context, dir, name string, args ...string) error {
	c := call{Dir: dir, Name: name, Args: args}
	f.runs = append(f.runs, c)

	root := dir
	for i, a := range args {
		if a == "--cwd" && i+1 < len(args) {
			root = args[i+1]
		}
	}

	if err := os.MkdirAll(filepath.Join(root, "node_modules"), 0755); err != nil {
		return err
	}
	lockfile := "package-lock.json"
	if name == pkgmgr.Yarn.Command() {
		lockfile = "yarn.lock"
	}
	if err := os.WriteFile(filepath.Join(root, lockfile), []byte("# lockfile\n"), 0644); err != nil {
		return err
	}

	if f.failOnRun == len(f.runs) {
		return fmt.Errorf("%s exited with code 1", name)
	}

	for _, a := range args {
		if pkgmgr.ParseDependency(a).Name != testTemplatePackage {
			continue
		}
		for rel, content := range f.packageFiles {
			path := filepath.Join(root, "node_modules", testTemplatePackage, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return err
			}
		}
		if err := addDependency(root, testTemplatePackage); err != nil {
			return err
		}
	}
	return nil
}

// addDependency records name in package.json as a real install would.
func addDependency(root, name string) error {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return err
	}
	deps, _ := pkg["dependencies"].(map[string]any)
	if deps == nil {
		deps = map[string]any{}
	}
	deps[name] = "1.0.0"
	pkg["dependencies"] = deps
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

type fakeResolver struct {
	hosts map[string][]string
}

func (r *fakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if addrs, ok := r.hosts[host]; ok {
		return addrs, nil
	}
	return nil, errors.New("no such host")
}

// yarnOutputs is a healthy yarn environment on a current Node.js.
func yarnOutputs() map[string]string {
	return map[string]string{
		"node --version":    "v20.11.0",
		"yarnpkg --version": "1.22.19",
	}
}

func npmOutputs() map[string]string {
	return map[string]string{
		"node --version": "v20.11.0",
		"npm --version":  "10.2.4",
	}
}

// webTypescript is a template package with one web/typescript template.
func webTypescript(templateJSON string) map[string]string {
	files := map[string]string{
		"templates/web/typescript/template/src/index.ts": "export {}\n",
		"templates/web/typescript/template/gitignore":    "node_modules\n",
		"templates/web/typescript/template/README.md":    "# App\n",
	}
	if templateJSON != "" {
		files["templates/web/typescript/template.json"] = templateJSON
	}
	return files
}

type harness struct {
	creator *Creator
	manager *fakeManager
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	states  []State
	parent  string
}

func newHarness(t *testing.T, opts Options, manager *fakeManager) *harness {
	t.Helper()

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	h := &harness{
		manager: manager,
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		parent:  t.TempDir(),
	}
	if opts.Name == "" {
		opts.Name = "my-app"
	}
	if !filepath.IsAbs(opts.Name) {
		opts.Name = filepath.Join(h.parent, opts.Name)
	}
	if opts.TemplatePackage == "" {
		opts.TemplatePackage = testTemplatePackage
	}

	h.creator = New(opts, manager, h.stdout, h.stderr)
	h.creator.Prober.Resolver = &fakeResolver{hosts: map[string][]string{
		pkgmgr.DefaultRegistryHost: {"104.16.0.35"},
	}}
	h.creator.Prober.Getenv = func(string) string { return "" }
	h.creator.OnStateChange = func(s State) { h.states = append(h.states, s) }
	return h
}

func (h *harness) root() string {
	return h.creator.Options.Name
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}
