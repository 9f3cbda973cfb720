package delegator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/macropower/rnshim/pkg/exec"
	"github.com/macropower/rnshim/pkg/resolve"
	"github.com/macropower/rnshim/pkg/shimerrors"
)

// DeprecatedBin is the bin path of the placeholder [CLI].
const DeprecatedBin = "/dev/null"

var ErrDeprecated = errors.New("react-native/cli is deprecated, please use @react-native-community/cli instead")

// CLI is a handle on the community CLI.
type CLI struct {
	// Package is nil for the deprecated placeholder.
	Package *resolve.Package
	// LoadConfig returns the project configuration for the project in dir.
	LoadConfig func(ctx context.Context, dir string) (map[string]any, error)
	// Run runs the CLI with args and returns once it exits.
	Run func(ctx context.Context, args []string) error
	Bin string
}

// Deprecated returns a placeholder [CLI] whose functions fail with
// [ErrDeprecated].
func Deprecated() *CLI {
	return &CLI{
		Bin: DeprecatedBin,
		LoadConfig: func(context.Context, string) (map[string]any, error) {
			return nil, ErrDeprecated
		},
		Run: func(context.Context, []string) error {
			return ErrDeprecated
		},
	}
}

type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func bind(pkg *resolve.Package, parent, node string, s streams) *CLI {
	command := func(args ...string) exec.Cmd {
		c := exec.Cmd{
			Name: pkg.Bin,
			Args: args,
			Env:  []string{ParentEnv + "=" + parent},
		}
		if node != "" {
			c.Name = node
			c.Args = append([]string{pkg.Bin}, args...)
		}

		return c
	}

	return &CLI{
		Package: pkg,
		Bin:     pkg.Bin,
		Run: func(ctx context.Context, args []string) error {
			c := command(args...)
			c.Stdin, c.Stdout, c.Stderr = s.stdin, s.stdout, s.stderr

			return exec.Run(ctx, c)
		},
		LoadConfig: func(ctx context.Context, dir string) (map[string]any, error) {
			c := command("config")
			c.Dir = dir

			out, err := exec.Output(ctx, c)
			if err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}

			cfg := map[string]any{}
			if err := json.Unmarshal(out, &cfg); err != nil {
				return nil, fmt.Errorf("load config: %w: %w", shimerrors.ErrJSONUnmarshal, err)
			}

			return cfg, nil
		},
	}
}
