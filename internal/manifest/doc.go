// Package manifest reads and writes the project's package.json and the
// template package's optional template.json. template.json is checked
// against an embedded JSON Schema before its fields are merged.
package manifest
