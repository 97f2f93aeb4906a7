package scaffold

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const testTemplatePackage = "create-app-templates"

// installTemplate lays out node_modules/<pkg>/templates/<type>/<language>
// under root as a package manager would, with the given template files and
// optional template.json.
func installTemplate(t *testing.T, root string, ref Ref, files map[string]string, templateJSON string) {
	t.Helper()
	dir := ref.Dir(root, testTemplatePackage)
	for rel, content := range files {
		writeTestFile(t, filepath.Join(dir, "template", rel), content)
	}
	if len(files) == 0 {
		if err := os.MkdirAll(filepath.Join(dir, "template"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	if templateJSON != "" {
		writeTestFile(t, filepath.Join(dir, "template.json"), templateJSON)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// listEntries returns the sorted names directly inside dir.
func listEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q, got:\n%s", substr, content)
	}
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Fatalf("expected %d files, got %d: %v", len(expected), len(result.Files), result.Files)
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}
