// Package resolve locates installed npm packages and their executables.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/macropower/rnshim/pkg/paths"
	"github.com/macropower/rnshim/pkg/pkgjson"
	"github.com/macropower/rnshim/pkg/shimerrors"
)

const nodeModules = "node_modules"

var ErrNoBin = errors.New("package declares no usable bin")

// Package is an installed package with a selected executable.
type Package struct {
	Name    string
	Version string
	// Dir is the absolute package directory.
	Dir string
	// BinName is the command name of the selected bin entry.
	BinName string
	// Bin is the absolute path of the selected bin entry.
	Bin string
}

// Find locates pkg in the closest node_modules directory at or above root.
// An empty root means the current working directory. preferredBin names the
// bin entry to use when the package declares several.
func Find(root, pkg, preferredBin string) (*Package, error) {
	return FindWithin(root, "", pkg, preferredBin)
}

// FindWithin is like [Find], but does not search above boundary. An empty
// boundary searches up to the filesystem root.
func FindWithin(root, boundary, pkg, preferredBin string) (*Package, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, &Error{Kind: KindInvalid, Package: pkg, Root: root, Err: err}
		}

		root = wd
	}

	rel := filepath.Join(nodeModules, filepath.FromSlash(pkg), pkgjson.FileName)

	descriptor, err := paths.FindClosestFileWithin(root, boundary, rel)
	if errors.Is(err, shimerrors.ErrFileNotFound) {
		return nil, &Error{Kind: KindNotFound, Package: pkg, Root: root}
	}
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Package: pkg, Root: root, Err: err}
	}

	slog.Debug("found package descriptor", "package", pkg, "path", descriptor)

	m, err := pkgjson.ReadFile(descriptor)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Package: pkg, Root: root, Err: err}
	}

	binName, binRel, ok := m.SelectBin(preferredBin)
	if !ok {
		return nil, &Error{
			Kind:    KindInvalid,
			Package: pkg,
			Root:    root,
			Err:     fmt.Errorf("%w: candidates %v", ErrNoBin, m.BinNames()),
		}
	}

	dir := filepath.Dir(descriptor)
	bin := filepath.Join(dir, filepath.FromSlash(binRel))

	fi, err := os.Stat(bin)
	if err != nil {
		return nil, &Error{Kind: KindInvalid, Package: pkg, Root: root, Err: fmt.Errorf("bin %q: %w", binName, err)}
	}
	if fi.IsDir() {
		return nil, &Error{
			Kind:    KindInvalid,
			Package: pkg,
			Root:    root,
			Err:     fmt.Errorf("bin %q: %s is a directory", binName, bin),
		}
	}

	name := m.Name
	if name == "" {
		name = pkg
	}

	return &Package{
		Name:    name,
		Version: m.Version,
		Dir:     dir,
		BinName: binName,
		Bin:     bin,
	}, nil
}
