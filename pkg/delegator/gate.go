package delegator

import (
	"github.com/macropower/rnshim/pkg/version"
)

// InitCommand is the subcommand that scaffolds a new project.
const InitCommand = "init"

// Gate holds the environment inputs of the version check.
type Gate struct {
	// NPXRuntime is true when launched through npx.
	NPXRuntime bool
	// SkipVersionCheck is true when the user opted out.
	SkipVersionCheck bool
}

// ShouldCheckVersion reports whether the registry should be queried. The
// check only runs for `init` launched through npx, without opt-out, on a
// released build.
func ShouldCheckVersion(g Gate, current string, args []string) bool {
	return g.NPXRuntime &&
		!g.SkipVersionCheck &&
		!version.IsHead(current) &&
		IsInit(args)
}

// IsInit reports whether args invoke the init subcommand.
func IsInit(args []string) bool {
	return len(args) > 0 && args[0] == InitCommand
}
