// Package create runs the scaffolding workflow for a new project: validate
// the name, prepare the target directory, probe the package manager, install
// the template package, materialize its template, merge its manifest, and
// install the template's dependencies. Any failure after the target
// directory is accepted rolls back the generated files.
package create
