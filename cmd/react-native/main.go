package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/macropower/rnshim/cmd/react-native/commands"
	"github.com/macropower/rnshim/pkg/pkgjson"
	"github.com/macropower/rnshim/pkg/warn"
)

const (
	shortDesc = "Run React Native CLI commands."
	longDesc  = `The react-native command forwards every argument to the React Native
community CLI (@react-native-community/cli) installed in the current project.

It is configured through the environment only. See REACT_NATIVE_SHIM_LOG_LEVEL,
REACT_NATIVE_SHIM_LOG_FORMAT, REACT_NATIVE_SHIM_NODE,
REACT_NATIVE_SHIM_REGISTRY_TIMEOUT and REACT_NATIVE_SHIM_COLOR.
`
)

//go:embed package.json
var descriptor []byte

// deprecationPhase selects the init deprecation notice. It is set at build
// time, e.g. -ldflags "-X main.deprecationPhase=sunset".
var deprecationPhase string

func main() {
	m, err := pkgjson.Parse(descriptor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	phase, err := warn.ParsePhase(deprecationPhase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd := commands.NewRootCmd(m.Name, shortDesc, longDesc, commands.RootOptions{
		Args:     os.Args[1:],
		Manifest: m,
		Phase:    phase,
	})

	err = cmd.ExecuteContext(context.Background())
	if err == nil {
		return
	}

	// Delegated failures have already reported themselves.
	var ec commands.ExitCoder
	if !errors.As(err, &ec) {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
	}

	os.Exit(commands.ExitCode(err))
}
