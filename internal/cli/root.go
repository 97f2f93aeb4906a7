package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/agentx-labs/create-app/internal/branding"
	"github.com/agentx-labs/create-app/internal/config"
	"github.com/agentx-labs/create-app/internal/logger"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var logLevel string

// reportedError marks an error the command already printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project-directory>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a new JavaScript project from a template package.

It installs the template package with yarn (when available) or npm, copies
templates/<type>/<language>/template into the new directory, merges the
template's package.json fields, and installs the template's dependencies.`,
	Example:       "  " + branding.CLIName() + " my-app --type web --language typescript",
	Args:          requireProjectDirectory,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		level := config.Get(config.KeyLogLevel)
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.InitLogger(level)
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Diagnostic log level: debug, info, warn, error")
}

func requireProjectDirectory(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("please specify the project directory:\n  %s %s\n\nFor example:\n  %s %s",
			branding.CLIName(), color.GreenString("<project-directory>"),
			branding.CLIName(), color.GreenString("my-app"))
	default:
		return fmt.Errorf("expected one project directory, got %d arguments: %v", len(args), args)
	}
}

// Execute runs the root command with build info injected via ldflags. An
// interrupt cancels the context, which stops a running package manager.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	}
	return err
}
