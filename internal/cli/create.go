package cli

import (
	"os"

	"github.com/agentx-labs/create-app/internal/config"
	"github.com/agentx-labs/create-app/internal/create"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
	"github.com/spf13/cobra"
)

var (
	createType     string
	createLanguage string
	createTemplate string
	createAppType  string
	useNpm         bool
	usePnp         bool
	verbose        bool
)

func init() {
	addCreateFlags(rootCmd)
}

func addCreateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&createType, "type", "", "Project type, the first template path segment (default from config: web)")
	f.StringVar(&createLanguage, "language", "", "Template language, the second template path segment (default from config: javascript)")
	f.StringVar(&createTemplate, "template", "", "Template package to install, optionally name@version")
	f.StringVar(&createAppType, "app-type", "", "Label for the project in console output (default: the project type)")
	f.BoolVar(&useNpm, "use-npm", false, "Use npm even when yarn is available")
	f.BoolVar(&usePnp, "use-pnp", false, "Install with yarn Plug'n'Play")
	f.BoolVar(&verbose, "verbose", false, "Print additional logs from the package manager")
}

func runCreate(cmd *cobra.Command, args []string) error {
	opts := createOptions(cmd, args[0])

	runner := &pkgmgr.ExecRunner{}
	c := create.New(opts, runner, os.Stdout, os.Stderr)
	if err := c.Run(cmd.Context()); err != nil {
		return &reportedError{err: err}
	}
	return nil
}

// createOptions merges flags over the user config. A flag wins only when
// it was set on the command line.
func createOptions(cmd *cobra.Command, name string) create.Options {
	flags := cmd.Flags()

	stringOpt := func(flag, key, value string) string {
		if flags.Changed(flag) {
			return value
		}
		return config.Get(key)
	}
	boolOpt := func(flag, key string, value bool) bool {
		if flags.Changed(flag) {
			return value
		}
		return config.GetBool(key)
	}

	opts := create.Options{
		Name:            name,
		Type:            stringOpt("type", config.KeyType, createType),
		Language:        stringOpt("language", config.KeyLanguage, createLanguage),
		TemplatePackage: stringOpt("template", config.KeyTemplatePackage, createTemplate),
		AppType:         createAppType,
		UseNpmOnly:      boolOpt("use-npm", config.KeyUseNpm, useNpm),
		UsePlugAndPlay:  boolOpt("use-pnp", config.KeyUsePnp, usePnp),
		Verbose:         verbose,
		CheckAppNames:   config.GetStringSlice(config.KeyReservedNames),
		RegistryHost:    config.Get(config.KeyRegistryHost),
	}

	// npm refuses to install a package into a project of the same name.
	opts.CheckAppNames = append(opts.CheckAppNames, pkgmgr.ParseDependency(opts.TemplatePackage).Name)

	for _, lang := range config.GetStringSlice(config.KeyStrictLanguages) {
		if lang == opts.Language {
			opts.StrictRuntime = true
		}
	}
	return opts
}
