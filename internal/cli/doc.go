// Package cli defines the Cobra command tree for the create-app CLI. The root
// command creates a project; doctor, config, and version are subcommands.
// Commands only parse flags, merge them over the user config, and format
// output; the work happens in internal/create and internal/pkgmgr.
package cli
