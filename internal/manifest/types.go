package manifest

import "encoding/json"

// File names used in a project and a template package.
const (
	PackageFile  = "package.json"
	TemplateFile = "template.json"
)

// Package is a generic package.json document. Unknown fields are preserved.
type Package map[string]any

// NewPackage returns the minimal manifest written before any install runs.
func NewPackage(name string) Package {
	return Package{
		"name":    name,
		"version": "0.1.0",
		"private": true,
	}
}

// Name returns the package name, or "" when absent.
func (p Package) Name() string {
	s, _ := p["name"].(string)
	return s
}

// StringMap returns the string-valued entries of an object field such as
// "dependencies". Non-string values are skipped.
func (p Package) StringMap(key string) map[string]string {
	raw, ok := p[key].(map[string]any)
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// SetStringMap replaces an object field with m. An empty map removes the field.
func (p Package) SetStringMap(key string, m map[string]string) {
	if len(m) == 0 {
		delete(p, key)
		return
	}
	obj := make(map[string]any, len(m))
	for k, v := range m {
		obj[k] = v
	}
	p[key] = obj
}

// TemplateManifest is the template.json that sits beside a template
// directory.
type TemplateManifest struct {
	Scripts         map[string]string `json:"scripts,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	// Extra holds any other top-level keys, merged into package.json as-is.
	Extra map[string]json.RawMessage `json:"-"`
}
