// Package scaffold materializes a project from an installed template
// package. A template lives at
// node_modules/<package>/templates/<type>/<language>/ and holds a template/
// directory copied into the project root plus an optional template.json
// whose scripts and dependency declarations are merged into package.json.
package scaffold
