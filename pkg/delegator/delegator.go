package delegator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/macropower/rnshim/pkg/exec"
	"github.com/macropower/rnshim/pkg/registry"
	"github.com/macropower/rnshim/pkg/resolve"
	"github.com/macropower/rnshim/pkg/tracing"
	"github.com/macropower/rnshim/pkg/version"
	"github.com/macropower/rnshim/pkg/warn"
)

const (
	PackageName = "react-native"
	CLIPackage  = "@react-native-community/cli"
	// CLIBin is the preferred bin entry of [CLIPackage].
	CLIBin = "rnc-cli"
	// ParentEnv carries the delegating package name to the community CLI.
	ParentEnv = "REACT_NATIVE_CLI_PARENT"
)

// ErrMissingDependency is wrapped by the error returned when the community
// CLI is not installed.
var ErrMissingDependency = errors.New("missing dependency " + CLIPackage)

// VersionSource returns the latest published version of a package.
type VersionSource interface {
	Latest(ctx context.Context, pkg string) registry.Latest
}

type Options struct {
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Registry VersionSource
	Tracer   tracing.Tracer
	// Warn defaults to a printer on Stderr.
	Warn *warn.Printer
	// PackageName is the name of this package; it defaults to [PackageName].
	PackageName string
	// CLIPackage defaults to [CLIPackage].
	CLIPackage string
	// CLIBin defaults to [CLIBin].
	CLIBin         string
	CurrentVersion string
	// Root is where the community CLI search starts; empty means the working
	// directory.
	Root string
	// Boundary is the highest directory searched; empty means the
	// filesystem root.
	Boundary string
	// Node is the interpreter for the community CLI; empty executes its bin
	// directly.
	Node  string
	Phase warn.Phase
	Gate  Gate
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = PackageName
	}

	if o.CLIPackage == "" {
		o.CLIPackage = CLIPackage
	}

	if o.CLIBin == "" {
		o.CLIBin = CLIBin
	}

	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}

	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}

	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}

	if o.Warn == nil {
		o.Warn = warn.NewPrinter(o.Stderr, warn.ColorAuto)
	}

	if o.Tracer == nil {
		o.Tracer = tracing.NopTracer{}
	}

	if o.Phase == "" {
		o.Phase = warn.PhaseNotice
	}

	return o
}

func (o Options) streams() streams {
	return streams{stdin: o.Stdin, stdout: o.Stdout, stderr: o.Stderr}
}

// Delegator runs the executable flow.
type Delegator struct {
	opts Options
}

func New(opts Options) *Delegator {
	return &Delegator{opts: opts.withDefaults()}
}

// Main runs the full flow for args, the arguments after the program name:
// version check, deprecation notice, resolution and delegation.
//
// When the community CLI exits non-zero, or is not installed, the returned
// error is an [*exec.ExitError] carrying the status for this process.
func (d *Delegator) Main(ctx context.Context, args []string) error {
	o := d.opts

	if ShouldCheckVersion(o.Gate, o.CurrentVersion, args) {
		d.CheckVersion(ctx)
	}

	if IsInit(args) {
		o.Warn.Deprecation(o.Phase, o.CLIPackage)
	}

	span := o.Tracer.StartSpan("resolve")
	span.SetBaggageItem("package", o.CLIPackage)
	pkg, err := resolve.FindWithin(o.Root, o.Boundary, o.CLIPackage, o.CLIBin)
	span.SetError(err)
	span.Finish()

	if resolve.IsNotFound(err) {
		o.Warn.MissingDependency(o.PackageName, o.CLIPackage)

		return &exec.ExitError{Code: 1, Err: fmt.Errorf("%w: %w", ErrMissingDependency, err)}
	}

	if err != nil {
		return err
	}

	slog.Debug("delegating", "package", pkg.Name, "version", pkg.Version, "bin", pkg.Bin)

	span = o.Tracer.StartSpan("delegate")
	span.SetBaggageItem("bin", pkg.Bin)
	span.SetBaggageItem("version", pkg.Version)

	err = bind(pkg, o.PackageName, o.Node, o.streams()).Run(ctx, args)
	span.SetError(err)
	span.Finish()

	return err
}

// CheckVersion queries the registry and warns when the current version is
// older than the latest release. It returns the lookup result.
func (d *Delegator) CheckVersion(ctx context.Context) registry.Latest {
	o := d.opts
	if o.Registry == nil {
		return registry.Latest{}
	}

	span := o.Tracer.StartSpan("registry.latest")
	span.SetBaggageItem("package", o.PackageName)
	latest := o.Registry.Latest(ctx, o.PackageName)
	span.SetBaggageItem("found", latest.Found)
	span.SetBaggageItem("latest", latest.Version)
	span.Finish()

	if latest.Found && version.Less(o.CurrentVersion, latest.Version) {
		o.Warn.Update(o.PackageName, o.CurrentVersion, latest.Version)
	}

	return latest
}

// Load resolves the community CLI without running anything. When it is not
// installed, Load returns [Deprecated]; other resolution failures are
// returned as errors.
func Load(opts Options) (*CLI, error) {
	o := opts.withDefaults()

	pkg, err := resolve.FindWithin(o.Root, o.Boundary, o.CLIPackage, o.CLIBin)
	if resolve.IsNotFound(err) {
		return Deprecated(), nil
	}

	if err != nil {
		return nil, err
	}

	return bind(pkg, o.PackageName, o.Node, o.streams()), nil
}
