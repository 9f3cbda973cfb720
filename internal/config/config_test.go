package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rnshim/internal/config"
	"github.com/macropower/rnshim/pkg/log"
	"github.com/macropower/rnshim/pkg/registry"
	"github.com/macropower/rnshim/pkg/shimerrors"
	"github.com/macropower/rnshim/pkg/warn"
)

func lookup(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]

		return v, ok
	}
}

func TestPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "REACT_NATIVE_SHIM_", config.Prefix("react-native"))
	assert.Equal(t, "CLI_SHIM_", config.Prefix("@react-native-community/cli"))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("react-native", lookup(nil))
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		LogLevel:        config.DefaultLogLevel,
		LogFormat:       log.TextFormat,
		RegistryHost:    registry.DefaultHost,
		Node:            config.DefaultNode,
		Color:           warn.ColorAuto,
		RegistryTimeout: registry.DefaultTimeout,
	}, cfg)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		env   map[string]string
		check func(t *testing.T, cfg *config.Config)
	}{
		"npx runtime": {
			env: map[string]string{"npm_lifecycle_event": "npx"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.NPXRuntime)
				assert.False(t, cfg.SkipVersionCheck)
			},
		},
		"npm script": {
			env: map[string]string{"npm_lifecycle_event": "start"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.NPXRuntime)
			},
		},
		"skip": {
			env: map[string]string{"SKIP": "1"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.SkipVersionCheck)
			},
		},
		"skip whitespace": {
			env: map[string]string{"SKIP": " "},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.True(t, cfg.SkipVersionCheck)
			},
		},
		"npx marker not trimmed": {
			env: map[string]string{"npm_lifecycle_event": " npx"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.NPXRuntime)
			},
		},
		"skip empty": {
			env: map[string]string{"SKIP": ""},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.False(t, cfg.SkipVersionCheck)
			},
		},
		"registry override": {
			env: map[string]string{"npm_config_registry": "https://npm.example.com/"},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "https://npm.example.com/", cfg.RegistryHost)
			},
		},
		"shim variables": {
			env: map[string]string{
				"REACT_NATIVE_SHIM_LOG_LEVEL":        "debug",
				"REACT_NATIVE_SHIM_LOG_FORMAT":       "json",
				"REACT_NATIVE_SHIM_REGISTRY_TIMEOUT": "750ms",
				"REACT_NATIVE_SHIM_COLOR":            "never",
				"REACT_NATIVE_SHIM_NODE":             "/opt/node/bin/node",
			},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, "json", cfg.LogFormat)
				assert.Equal(t, 750*time.Millisecond, cfg.RegistryTimeout)
				assert.Equal(t, warn.ColorNever, cfg.Color)
				assert.Equal(t, "/opt/node/bin/node", cfg.Node)
			},
		},
		"direct execution": {
			env: map[string]string{"REACT_NATIVE_SHIM_NODE": ""},
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Empty(t, cfg.Node)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load("react-native", lookup(tc.env))
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	_, err := config.Load("react-native", lookup(map[string]string{
		"REACT_NATIVE_SHIM_LOG_LEVEL":        "loud",
		"REACT_NATIVE_SHIM_LOG_FORMAT":       "xml",
		"REACT_NATIVE_SHIM_REGISTRY_TIMEOUT": "-1s",
		"REACT_NATIVE_SHIM_COLOR":            "rainbow",
	}))
	require.ErrorIs(t, err, shimerrors.ErrInvalidConfig)
	require.ErrorIs(t, err, log.ErrInvalidLevel)
	require.ErrorIs(t, err, log.ErrInvalidFormat)

	for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "REGISTRY_TIMEOUT", "COLOR"} {
		assert.Contains(t, err.Error(), "REACT_NATIVE_SHIM_"+key)
	}
}

func TestLoadBadDuration(t *testing.T) {
	t.Parallel()

	_, err := config.Load("react-native", lookup(map[string]string{
		"REACT_NATIVE_SHIM_REGISTRY_TIMEOUT": "soon",
	}))
	require.ErrorIs(t, err, shimerrors.ErrInvalidConfig)
}
