package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/rnshim/internal/config"
	"github.com/macropower/rnshim/pkg/delegator"
	"github.com/macropower/rnshim/pkg/log"
	"github.com/macropower/rnshim/pkg/registry"
	"github.com/macropower/rnshim/pkg/tracing"
	"github.com/macropower/rnshim/pkg/warn"
)

var ErrLogHandlerFailed = errors.New("log handler failed")

// ExitCoder is implemented by errors that carry a process exit status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}

	return 1
}

// NewRootCmd returns the root command. It has no flags or subcommands of its
// own: every argument is passed to the community CLI unchanged.
func NewRootCmd(name, shortDesc, longDesc string, opts RootOptions) *cobra.Command {
	var cfg *config.Config

	m := opts.manifest()
	args := opts.args()

	cmd := &cobra.Command{
		Use:                name,
		Short:              shortDesc,
		Long:               longDesc,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		var err error

		cfg, err = config.Load(m.Name, opts.lookup())
		if err != nil {
			return err
		}

		h, err := log.CreateHandler(cc.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		slog.Debug("ready to go", "package", m.Name, "version", m.Version)

		return nil
	}

	run := func(cc *cobra.Command, args []string) error {
		reg := opts.Registry
		if reg == nil {
			reg = registry.NewClient(cfg.RegistryHost, cfg.RegistryTimeout)
		}

		d := delegator.New(delegator.Options{
			Stdin:          cc.InOrStdin(),
			Stdout:         cc.OutOrStdout(),
			Stderr:         cc.ErrOrStderr(),
			Registry:       reg,
			Tracer:         tracing.NewLoggingTracer(slog.Default()),
			Warn:           warn.NewPrinter(cc.ErrOrStderr(), cfg.Color),
			PackageName:    m.Name,
			CurrentVersion: m.Version,
			Root:           opts.Root,
			Boundary:       opts.Boundary,
			Node:           cfg.Node,
			Phase:          opts.Phase,
			Gate: delegator.Gate{
				NPXRuntime:       cfg.NPXRuntime,
				SkipVersionCheck: cfg.SkipVersionCheck,
			},
		})

		return d.Main(cc.Context(), args)
	}

	cmd.RunE = run

	// cobra always registers its shell completion request command. This one
	// is found first and hands the whole command line to the community CLI
	// instead; cobra has removed the request word from its own arguments. It
	// doubles as the help command so that no `help` subcommand is added.
	completion := &cobra.Command{
		Use:                cobra.ShellCompRequestCmd,
		Aliases:            []string{cobra.ShellCompNoDescRequestCmd},
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		Hidden:             true,
		RunE: func(cc *cobra.Command, _ []string) error {
			return run(cc, args)
		},
	}
	cmd.AddCommand(completion)
	cmd.SetHelpCommand(completion)
	cmd.SetArgs(args)

	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		slog.Debug("shutting down")

		return nil
	}

	return cmd
}
