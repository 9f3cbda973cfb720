package pkgjson_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rnshim/pkg/pkgjson"
	"github.com/macropower/rnshim/pkg/shimerrors"
)

func TestSelectBin(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data      string
		preferred string
		wantName  string
		wantPath  string
		wantOK    bool
	}{
		"string bin": {
			data:     `{"name":"@react-native-community/cli","version":"15.0.0","bin":"build/bin.js"}`,
			wantName: "cli",
			wantPath: "build/bin.js",
			wantOK:   true,
		},
		"map bin preferred": {
			data:      `{"name":"@react-native-community/cli","bin":{"rnc-cli":"build/bin.js","other":"x.js"}}`,
			preferred: "rnc-cli",
			wantName:  "rnc-cli",
			wantPath:  "build/bin.js",
			wantOK:    true,
		},
		"map bin named after package": {
			data:     `{"name":"@scope/tool","bin":{"tool":"t.js","aux":"a.js"}}`,
			wantName: "tool",
			wantPath: "t.js",
			wantOK:   true,
		},
		"map bin single entry": {
			data:     `{"name":"@scope/tool","bin":{"only":"o.js"}}`,
			wantName: "only",
			wantPath: "o.js",
			wantOK:   true,
		},
		"map bin ambiguous": {
			data: `{"name":"@scope/tool","bin":{"a":"a.js","b":"b.js"}}`,
		},
		"no bin": {
			data: `{"name":"@scope/tool","version":"1.0.0"}`,
		},
		"empty bin": {
			data: `{"name":"tool","bin":""}`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := pkgjson.Parse([]byte(tc.data))
			require.NoError(t, err)

			gotName, gotPath, ok := m.SelectBin(tc.preferred)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantName, gotName)
			assert.Equal(t, tc.wantPath, gotPath)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	_, err := pkgjson.Parse([]byte(`{"name": [`))
	require.ErrorIs(t, err, shimerrors.ErrInvalidFormat)
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	p := filepath.Join(dir, pkgjson.FileName)
	require.NoError(t, os.WriteFile(p, []byte(`{"name":"react-native","version":"0.76.0"}`), 0o600))

	m, err := pkgjson.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "react-native", m.Name)
	assert.Equal(t, "0.76.0", m.Version)
	assert.Empty(t, m.BinNames())

	_, err = pkgjson.ReadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, shimerrors.ErrReadFile)
}

func TestBinNames(t *testing.T) {
	t.Parallel()

	m, err := pkgjson.Parse([]byte(`{"name":"x","bin":{"b":"b.js","a":"a.js","c":7}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, m.BinNames())
}
