package create

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/create-app/internal/branding"
	"github.com/agentx-labs/create-app/internal/errutils"
	"github.com/agentx-labs/create-app/internal/logger"
	"github.com/agentx-labs/create-app/internal/manifest"
	"github.com/agentx-labs/create-app/internal/naming"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
	"github.com/agentx-labs/create-app/internal/scaffold"
)

// Creator runs one project creation. A Creator is single use.
type Creator struct {
	Options Options
	Prober  *pkgmgr.Prober
	// OnStateChange, when set, observes every state transition.
	OnStateChange func(State)

	installer *pkgmgr.Installer
	console   console
	state     State
	journal   *scaffold.Journal

	root    string
	appName string
	manager pkgmgr.Kind
	online  bool
	pnp     bool
}

// New returns a Creator that runs commands through runner and prints
// progress to stdout and warnings to stderr.
func New(opts Options, runner pkgmgr.Runner, stdout, stderr io.Writer) *Creator {
	if opts.TemplatePackage == "" {
		opts.TemplatePackage = branding.DefaultTemplatePackage()
	}

	prober := pkgmgr.NewProber(runner)
	if opts.RegistryHost != "" {
		prober.RegistryHost = opts.RegistryHost
	}

	c := &Creator{
		Options: opts,
		Prober:  prober,
		console: console{out: stdout, err: stderr},
	}
	c.installer = &pkgmgr.Installer{
		Runner: runner,
		Warn:   func(msg string) { c.console.warnf("%s", msg) },
	}
	return c
}

// State returns the current state of the run.
func (c *Creator) State() State { return c.state }

// Root returns the absolute project directory once Run has resolved it.
func (c *Creator) Root() string { return c.root }

// Run creates the project. Validation failures return before anything is
// written. Once the target directory is accepted, any failure rolls back
// the generated files; the original error is returned either way.
func (c *Creator) Run(ctx context.Context) (err error) {
	if c.state != NotStarted {
		return fmt.Errorf("creator already ran (state %s)", c.state)
	}

	root, err := filepath.Abs(c.Options.Name)
	if err != nil {
		return errutils.Wrapf(err, "resolving project directory %q", c.Options.Name)
	}
	c.root = root
	c.appName = filepath.Base(root)

	if err := c.validate(ctx); err != nil {
		c.report(err)
		c.transition(Failed)
		return err
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		err = errutils.Wrapf(err, "creating %s", root)
		c.console.errorf("%v", err)
		c.transition(Failed)
		return err
	}
	if err := naming.CheckSafeDirectory(root); err != nil {
		c.report(err)
		c.transition(Failed)
		return err
	}

	// From here on the directory is ours to clean up.
	c.journal = scaffold.NewJournal()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected panic: %v", r)
		}
		if err != nil {
			c.fail(err)
		}
	}()

	c.console.printf("\nCreating a new %s app in %s.\n\n", c.Options.appType(), green(root))

	c.transition(ProbingEnvironment)
	if err := c.probe(ctx); err != nil {
		return err
	}

	pkg := manifest.NewPackage(c.appName)
	if err := manifest.WritePackage(filepath.Join(root, manifest.PackageFile), pkg); err != nil {
		return err
	}

	c.transition(InstallingTemplatePackage)
	c.console.println("Installing packages. This might take a couple of minutes.")
	c.console.printf("Installing %s...\n\n", cyan(c.Options.TemplatePackage))
	if err := c.install(ctx, []pkgmgr.Dependency{pkgmgr.ParseDependency(c.Options.TemplatePackage)}, false); err != nil {
		return err
	}

	c.transition(MaterializingTemplate)
	ref := scaffold.Ref{Type: c.Options.Type, Language: c.Options.Language}
	result, err := scaffold.Materialize(root, ref, c.Options.TemplatePackage, c.journal)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		c.console.warnf("%s", w)
	}
	logger.Debug("template copied", logger.Fields{"template": ref.String(), "files": len(result.Files)})

	c.transition(MergingManifest)
	err = scaffold.MergeManifest(root, result.Template, scaffold.MergeOptions{
		Manager:         c.manager,
		TemplatePackage: c.Options.TemplatePackage,
	})
	if err != nil {
		return err
	}

	var devDeps, deps map[string]string
	if result.Template != nil {
		devDeps = result.Template.DevDependencies
		deps = result.Template.Dependencies
	}

	c.transition(InstallingDevDependencies)
	if len(devDeps) > 0 {
		c.console.printf("\nInstalling template dev dependencies using %s...\n\n", c.manager.Command())
		if err := c.install(ctx, pkgmgr.DependenciesFromMap(devDeps), true); err != nil {
			return err
		}
	}

	c.transition(InstallingRuntimeDependencies)
	if len(deps) > 0 {
		c.console.printf("\nInstalling template dependencies using %s...\n\n", c.manager.Command())
		if err := c.install(ctx, pkgmgr.DependenciesFromMap(deps), false); err != nil {
			return err
		}
	}

	c.transition(Done)
	c.printSuccess()
	return nil
}

func (c *Creator) transition(s State) {
	logger.Debug("state change", logger.Fields{"from": c.state.String(), "to": s.String()})
	c.state = s
	if s.Terminal() {
		logger.Info("creation finished", logger.Fields{"root": c.root, "state": s.String()})
	}
	if c.OnStateChange != nil {
		c.OnStateChange(s)
	}
}

// validate runs the checks that must pass before the directory is touched.
func (c *Creator) validate(ctx context.Context) error {
	if err := naming.CheckName(c.appName); err != nil {
		return err
	}
	if err := naming.CheckCollision(c.appName, c.Options.CheckAppNames); err != nil {
		return err
	}
	return c.checkRuntime(ctx)
}

func (c *Creator) checkRuntime(ctx context.Context) error {
	version, err := c.Prober.ProbeRuntime(ctx)
	if err != nil {
		logger.Debug("node version probe failed", logger.Fields{"error": err.Error()})
		c.console.warnf("Could not determine the Node.js version. %s requires Node %s or higher.",
			branding.DisplayName(), pkgmgr.MinRuntimeVersion)
		return nil
	}
	if pkgmgr.MeetsMinimum(version, pkgmgr.MinRuntimeVersion) {
		return nil
	}
	if c.Options.StrictRuntime {
		return fmt.Errorf("%w: you are running Node %s, %s templates require Node %s or higher, please update your version of Node",
			errutils.ErrUnsupportedRuntimeVersion, version, c.Options.Language, pkgmgr.MinRuntimeVersion)
	}
	c.console.warnf("You are running Node %s. The generated project may not work with Node below %s.",
		version, pkgmgr.MinRuntimeVersion)
	return nil
}

// probe selects the package manager and settles the flags every install
// request shares.
func (c *Creator) probe(ctx context.Context) error {
	c.manager = c.Prober.Detect(ctx, c.Options.UseNpmOnly)
	info := c.Prober.ProbeVersion(ctx, c.manager)
	c.pnp = c.Options.UsePlugAndPlay
	logger.Debug("package manager selected", logger.Fields{"manager": c.manager.String(), "version": info.Version})

	switch c.manager {
	case pkgmgr.Npm:
		if !info.MeetsMinimum {
			c.warnOldManager(info)
		}
		ok, reported := c.Prober.ProbeCwdConsistency(ctx, c.root)
		if !ok {
			return fmt.Errorf("%w: npm reports its working directory as %s but it was started in %s; "+
				"this usually means a shell wrapper changes directories, check your shell's startup files",
				errutils.ErrCwdMismatch, reported, c.root)
		}
	case pkgmgr.Yarn:
		if c.pnp && !info.MeetsMinimum {
			c.warnOldManager(info)
			c.pnp = false
		}
	}

	c.online = c.Prober.ProbeOnline(ctx, c.manager)
	if !c.online {
		c.console.warnf("You appear to be offline.\nFalling back to the local %s cache.", c.manager)
	}
	return nil
}

func (c *Creator) warnOldManager(info pkgmgr.Info) {
	min := info.Kind.Minimum()
	if info.Version == "" {
		c.console.warnf("Could not determine the %s version; %s %s or higher is recommended.", info.Kind, info.Kind, min)
		return
	}
	if info.Kind == pkgmgr.Yarn {
		c.console.warnf("You are using yarn %s together with --use-pnp, but Plug'n'Play is only supported "+
			"starting from %s. Installing without Plug'n'Play; upgrade yarn to enable it.", info.Version, min)
		return
	}
	c.console.warnf("You are using npm %s, so the project will be bootstrapped with an old unsupported toolchain. "+
		"Please update to npm %s or higher for a better, fully supported experience.", info.Version, min)
}

func (c *Creator) install(ctx context.Context, deps []pkgmgr.Dependency, dev bool) error {
	return c.installer.Install(ctx, pkgmgr.Request{
		Root:         c.root,
		Manager:      c.manager,
		PlugAndPlay:  c.pnp,
		Dependencies: deps,
		Verbose:      c.Options.Verbose,
		Online:       c.online,
		Dev:          dev,
	})
}

// report prints err with the label its class calls for.
func (c *Creator) report(err error) {
	var installErr *errutils.InstallError
	switch {
	case errors.As(err, &installErr):
		c.console.printf("  %s has failed.\n", cyan(installErr.Command))
	case errutils.IsFatalValidation(err), isKnown(err):
		c.console.errorf("%v", err)
	default:
		c.console.errorf("Unexpected error. Please report it as a bug:")
		c.console.errorf("%+v", err)
		logger.Error("unexpected error", logger.Fields{"error": fmt.Sprintf("%+v", err), "root": c.root, "state": c.state.String()})
	}
}

// fail reports err, reverts the template changes, rolls back the generated
// files, and leaves the run in Failed.
func (c *Creator) fail(err error) {
	c.transition(RollingBack)

	c.console.println()
	c.console.println("Aborting installation.")
	c.report(err)

	c.console.println()
	if undoErr := c.journal.Undo(); undoErr != nil {
		undoErr = errutils.Wrap(undoErr, "restoring files changed by the template")
		c.console.errorf("%v", undoErr)
		logger.Error("template undo failed", logger.Fields{"error": undoErr.Error(), "root": c.root})
	}
	result, rbErr := Rollback(c.root)
	for _, name := range result.Deleted {
		c.console.printf("Deleting generated file... %s\n", cyan(name))
	}
	if result.RemovedRoot {
		c.console.printf("Deleting %s/ from %s\n", cyan(c.appName), cyan(filepath.Dir(c.root)))
	}
	if rbErr != nil {
		c.console.errorf("Rollback incomplete: %v", rbErr)
		logger.Error("rollback failed", logger.Fields{"error": rbErr.Error(), "root": c.root})
	} else {
		c.console.println("Done.")
	}

	c.transition(Failed)
}

func isKnown(err error) bool {
	for _, target := range []error{
		errutils.ErrCwdMismatch,
		errutils.ErrTemplateNotFound,
		errutils.ErrTemplateInvalid,
		errutils.ErrManifestMissing,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (c *Creator) printSuccess() {
	pkg, err := manifest.ReadPackage(filepath.Join(c.root, manifest.PackageFile))
	var scripts []string
	if err == nil {
		for name := range pkg.StringMap("scripts") {
			scripts = append(scripts, name)
		}
		sort.Strings(scripts)
	}

	c.console.printf("\nSuccess! Created %s at %s\n", c.appName, c.root)
	if len(scripts) > 0 {
		c.console.println("Inside that directory, you can run several commands:")
		for _, s := range scripts {
			c.console.printf("\n  %s\n", cyan(c.manager.RunScript()+s))
		}
		c.console.println()
	}

	c.console.println("We suggest that you begin by typing:")
	c.console.printf("\n  %s %s\n", cyan("cd"), c.Options.Name)
	if containsString(scripts, "start") {
		c.console.printf("  %s\n", cyan(c.manager.RunScript()+"start"))
	}
	c.console.println("\nHappy hacking!")
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
