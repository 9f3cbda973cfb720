// Package pkgjson reads npm package descriptors (package.json).
package pkgjson

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/macropower/rnshim/pkg/shimerrors"
)

// FileName is the descriptor file name within a package directory.
const FileName = "package.json"

// Manifest is the subset of package.json the delegator reads.
type Manifest struct {
	// Bin is either a single path or a map of command name to path.
	Bin     any    `json:"bin,omitempty"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Parse decodes a descriptor.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", shimerrors.ErrInvalidFormat, FileName, err)
	}

	return m, nil
}

// ReadFile reads and decodes the descriptor at p.
func ReadFile(p string) (*Manifest, error) {
	data, err := os.ReadFile(p) //nolint:gosec // p is built from the search root.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shimerrors.ErrReadFile, err)
	}

	return Parse(data)
}

// Bins returns the command name to relative path mapping. A string bin is
// named after the unscoped package name.
func (m *Manifest) Bins() map[string]string {
	out := map[string]string{}

	switch b := m.Bin.(type) {
	case string:
		if b != "" {
			out[m.BaseName()] = b
		}
	case map[string]any:
		for k, v := range b {
			if s, ok := v.(string); ok && s != "" {
				out[k] = s
			}
		}
	}

	return out
}

// BaseName returns the package name without its scope.
func (m *Manifest) BaseName() string {
	return path.Base(strings.TrimSpace(m.Name))
}

// SelectBin selects the preferred bin entry: the one named preferred, then the one
// named after the package, then the only entry. It returns false when no
// entry can be chosen unambiguously.
func (m *Manifest) SelectBin(preferred string) (string, string, bool) {
	bins := m.Bins()

	for _, name := range []string{preferred, m.BaseName()} {
		if p, ok := bins[name]; ok && name != "" {
			return name, p, true
		}
	}

	if len(bins) == 1 {
		for name, p := range bins {
			return name, p, true
		}
	}

	return "", "", false
}

// BinNames returns the sorted bin command names.
func (m *Manifest) BinNames() []string {
	bins := m.Bins()

	names := make([]string, 0, len(bins))
	for name := range bins {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
