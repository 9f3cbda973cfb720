package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/macropower/rnshim/pkg/shimerrors"
)

// Head is the version carried by unreleased builds.
const Head = "1000.0.0"

// Parse parses a semantic version, tolerating a leading "v".
func Parse(v string) (*semver.Version, error) {
	sv, err := semver.NewVersion(strings.TrimSpace(v))
	if err != nil {
		return nil, fmt.Errorf("%w: version %q: %w", shimerrors.ErrInvalidFormat, v, err)
	}

	return sv, nil
}

// Compare returns -1, 0 or 1 when a is lower than, equal to, or greater
// than b.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := Parse(b)
	if err != nil {
		return 0, err
	}

	return av.Compare(bv), nil
}

// Less reports whether current is strictly lower than latest. Versions that
// cannot be parsed are never less.
func Less(current, latest string) bool {
	c, err := Compare(current, latest)
	if err != nil {
		return false
	}

	return c < 0
}

// IsHead reports whether v is the [Head] sentinel.
func IsHead(v string) bool {
	return strings.TrimSpace(v) == Head
}
