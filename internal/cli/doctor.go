package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/agentx-labs/create-app/internal/config"
	"github.com/agentx-labs/create-app/internal/manifest"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkTemplate string

func init() {
	doctorCmd.Flags().StringVar(&checkTemplate, "check-template", "", "Validate a template.json file at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Node.js and package manager setup",
	Long: `Run the same environment probes a project creation runs and report the results:
Node.js version, npm and yarn versions, Plug'n'Play support, registry
reachability, and whether npm runs in the directory it is started in.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if checkTemplate != "" {
			return runTemplateCheck(out, checkTemplate)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}

		prober := pkgmgr.NewProber(&pkgmgr.ExecRunner{})
		prober.RegistryHost = config.Get(config.KeyRegistryHost)

		d := &doctor{out: out, prober: prober}
		d.run(cmd.Context(), cwd)
		if d.failures > 0 {
			fmt.Fprintln(out, color.RedString("\n%d check(s) failed.", d.failures))
			return &reportedError{err: fmt.Errorf("%d doctor check(s) failed", d.failures)}
		}
		fmt.Fprintln(out, color.GreenString("\nAll checks passed."))
		return nil
	},
}

type doctor struct {
	out      io.Writer
	prober   *pkgmgr.Prober
	failures int
}

func (d *doctor) ok(format string, args ...any) {
	fmt.Fprintf(d.out, "  [%s] %s\n", color.GreenString(" OK "), fmt.Sprintf(format, args...))
}

func (d *doctor) warn(format string, args ...any) {
	fmt.Fprintf(d.out, "  [%s] %s\n", color.YellowString("WARN"), fmt.Sprintf(format, args...))
}

func (d *doctor) fail(format string, args ...any) {
	d.failures++
	fmt.Fprintf(d.out, "  [%s] %s\n", color.RedString("FAIL"), fmt.Sprintf(format, args...))
}

func (d *doctor) info(format string, args ...any) {
	fmt.Fprintf(d.out, "  [INFO] %s\n", fmt.Sprintf(format, args...))
}

func (d *doctor) run(ctx context.Context, cwd string) {
	d.checkRuntime(ctx)
	d.checkManagers(ctx, cwd)
	d.checkConfig()
}

func (d *doctor) checkRuntime(ctx context.Context) {
	fmt.Fprintln(d.out, "Runtime check:")
	version, err := d.prober.ProbeRuntime(ctx)
	switch {
	case err != nil:
		d.fail("node not found: %v", err)
	case pkgmgr.MeetsMinimum(version, pkgmgr.MinRuntimeVersion):
		d.ok("node %s", version)
	default:
		d.warn("node %s is older than %s; strict templates will refuse to install", version, pkgmgr.MinRuntimeVersion)
	}
}

func (d *doctor) checkManagers(ctx context.Context, cwd string) {
	fmt.Fprintln(d.out, "Package manager check:")

	npm := d.prober.ProbeVersion(ctx, pkgmgr.Npm)
	switch {
	case npm.Version == "":
		d.fail("npm not found or its version could not be read")
	case npm.MeetsMinimum:
		d.ok("npm %s", npm.Version)
	default:
		d.warn("npm %s is older than %s", npm.Version, pkgmgr.MinNpmVersion)
	}

	if npm.Version != "" {
		if same, reported := d.prober.ProbeCwdConsistency(ctx, cwd); same {
			d.ok("npm runs in the directory it is started in")
		} else {
			d.fail("npm reports its working directory as %s instead of %s; check your shell's startup files", reported, cwd)
		}
	}

	kind := d.prober.Detect(ctx, false)
	if kind != pkgmgr.Yarn {
		d.info("yarn not found; projects will be created with npm")
		return
	}

	yarn := d.prober.ProbeVersion(ctx, pkgmgr.Yarn)
	switch {
	case yarn.Version == "":
		d.warn("yarn found but its version could not be read")
	case yarn.MeetsMinimum:
		d.ok("yarn %s (Plug'n'Play supported)", yarn.Version)
	default:
		d.ok("yarn %s", yarn.Version)
		d.info("--use-pnp needs yarn %s or higher", pkgmgr.MinYarnPnpVersion)
	}

	if d.prober.ProbeOnline(ctx, pkgmgr.Yarn) {
		d.ok("registry %s is reachable", d.prober.RegistryHost)
	} else {
		d.warn("registry %s is not reachable; yarn will install offline from its cache", d.prober.RegistryHost)
	}
}

func (d *doctor) checkConfig() {
	fmt.Fprintln(d.out, "Config check:")
	path := config.FilePath()
	if _, err := os.Stat(path); err != nil {
		d.info("no config file at %s, using defaults", path)
	} else {
		d.ok("config file %s", path)
	}
	d.info("template package: %s", config.Get(config.KeyTemplatePackage))
}

func runTemplateCheck(out io.Writer, path string) error {
	fmt.Fprintf(out, "Template manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [%s] %v\n", color.RedString("FAIL"), err)
		return &reportedError{err: fmt.Errorf("template manifest validation failed: %w", err)}
	}

	if result.Valid {
		fmt.Fprintf(out, "  [%s] Valid template manifest\n", color.GreenString(" OK "))
		return nil
	}

	fmt.Fprintf(out, "  [%s] %d validation issue(s):\n", color.RedString("FAIL"), len(result.Issues))
	for _, msg := range result.Messages() {
		fmt.Fprintf(out, "    - %s\n", msg)
	}
	return &reportedError{err: fmt.Errorf("template manifest %s has %d validation issue(s)", path, len(result.Issues))}
}
