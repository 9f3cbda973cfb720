package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/macropower/rnshim/pkg/paths"
	"github.com/macropower/rnshim/pkg/shimerrors"
)

func TestFindClosestFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	rel := filepath.Join("node_modules", "tool", "package.json")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "tool"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte("{}"), 0o600))

	nested := filepath.Join(root, "packages", "app", "src")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	// A directory with the same name must not match.
	shadow := filepath.Join(root, "packages", "app", "node_modules", "tool", "package.json")
	require.NoError(t, os.MkdirAll(shadow, 0o750))

	tcs := map[string]struct {
		err  error
		path string
		want string
	}{
		"root": {
			path: root,
			want: filepath.Join(root, rel),
		},
		"nested": {
			path: nested,
			want: filepath.Join(root, rel),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := paths.FindClosestFile(tc.path, rel)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFindClosestFileMissing(t *testing.T) {
	t.Parallel()

	_, err := paths.FindClosestFile(t.TempDir(), filepath.Join("node_modules", "rnshim-does-not-exist", "package.json"))
	require.ErrorIs(t, err, shimerrors.ErrFileNotFound)
}

func TestFindClosestStopsAtFirstMatch(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inner := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(inner, 0o750))

	var visited []string

	got, err := paths.FindClosest(inner, func(dir string) (bool, error) {
		visited = append(visited, dir)

		return dir == filepath.Join(root, "a"), nil
	})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "a"), got)
	require.Equal(t, []string{inner, filepath.Join(root, "a")}, visited)
}

func TestFindClosestFileWithin(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	rel := filepath.Join("node_modules", "tool", "package.json")

	require.NoError(t, os.MkdirAll(filepath.Join(outer, "node_modules", "tool"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(outer, rel), []byte("{}"), 0o600))

	project := filepath.Join(outer, "project")
	nested := filepath.Join(project, "src")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	tcs := map[string]struct {
		err      error
		boundary string
		want     string
	}{
		"no boundary": {
			want: filepath.Join(outer, rel),
		},
		"boundary above match": {
			boundary: outer,
			want:     filepath.Join(outer, rel),
		},
		"boundary below match": {
			boundary: project,
			err:      shimerrors.ErrFileNotFound,
		},
		"boundary not an ancestor": {
			boundary: t.TempDir(),
			want:     filepath.Join(outer, rel),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := paths.FindClosestFileWithin(nested, tc.boundary, rel)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestFindClosestWithinVisitsBoundary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	inner := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(inner, 0o750))

	var visited []string

	_, err := paths.FindClosestWithin(inner, filepath.Join(root, "a"), func(dir string) (bool, error) {
		visited = append(visited, dir)

		return false, nil
	})
	require.ErrorIs(t, err, shimerrors.ErrFileNotFound)
	require.Equal(t, []string{inner, filepath.Join(root, "a")}, visited)
}
