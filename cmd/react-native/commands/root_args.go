package commands

import (
	"os"

	"github.com/macropower/rnshim/internal/config"
	"github.com/macropower/rnshim/pkg/delegator"
	"github.com/macropower/rnshim/pkg/pkgjson"
	"github.com/macropower/rnshim/pkg/warn"
)

// RootOptions holds the inputs of the root command that do not come from
// the command line.
type RootOptions struct {
	// Args are the arguments after the program name. Nil means os.Args[1:].
	// The root command is bound to them; do not call SetArgs on it.
	Args []string
	// Manifest describes this package. Its name and version drive the
	// version check.
	Manifest *pkgjson.Manifest
	// Lookup reads environment variables. Nil means [os.LookupEnv].
	Lookup config.LookupFunc
	// Registry replaces the registry client built from the configuration.
	Registry delegator.VersionSource
	// Root is where the community CLI search starts. Empty means the working
	// directory.
	Root string
	// Boundary is the highest directory searched. Empty means the filesystem
	// root.
	Boundary string
	Phase    warn.Phase
}

func (o RootOptions) lookup() config.LookupFunc {
	if o.Lookup == nil {
		return os.LookupEnv
	}

	return o.Lookup
}

func (o RootOptions) manifest() *pkgjson.Manifest {
	if o.Manifest == nil {
		return &pkgjson.Manifest{Name: delegator.PackageName}
	}

	return o.Manifest
}

func (o RootOptions) args() []string {
	if o.Args == nil {
		return os.Args[1:]
	}

	return o.Args
}
