// Package config reads the delegator's configuration from the environment.
//
// Every command-line argument belongs to the delegated CLI, so the shim is
// configured exclusively through environment variables. Variables shared with
// npm keep their npm names; shim-specific variables are prefixed with the
// package name, e.g. REACT_NATIVE_SHIM_LOG_LEVEL.
package config

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/iancoleman/strcase"

	"github.com/macropower/rnshim/pkg/log"
	"github.com/macropower/rnshim/pkg/registry"
	"github.com/macropower/rnshim/pkg/shimerrors"
	"github.com/macropower/rnshim/pkg/warn"
)

const (
	// LifecycleEventEnv is set by npm to the script being run; npx sets it
	// to [NPXLifecycleEvent].
	LifecycleEventEnv = "npm_lifecycle_event"
	NPXLifecycleEvent = "npx"

	// SkipEnv disables the registry version check when non-empty.
	SkipEnv = "SKIP"

	// RegistryEnv overrides the registry host.
	RegistryEnv = "npm_config_registry"

	DefaultNode      = "node"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = log.TextFormat
)

// Suffixes of the shim-specific variables; see [Prefix].
const (
	LogLevelKey        = "LOG_LEVEL"
	LogFormatKey       = "LOG_FORMAT"
	RegistryTimeoutKey = "REGISTRY_TIMEOUT"
	NodeKey            = "NODE"
	ColorKey           = "COLOR"
)

// LookupFunc has the signature of [os.LookupEnv].
type LookupFunc func(key string) (string, bool)

type Config struct {
	LogLevel     string
	LogFormat    string
	RegistryHost string
	// Node is the interpreter used to run the delegated CLI. Empty means the
	// CLI's bin is executed directly.
	Node             string
	Color            warn.ColorMode
	RegistryTimeout  time.Duration
	NPXRuntime       bool
	SkipVersionCheck bool
}

// Prefix returns the environment prefix for pkg's shim variables.
func Prefix(pkg string) string {
	return strcase.ToScreamingSnake(path.Base(pkg)) + "_SHIM_"
}

// FromEnv loads the configuration for pkg from the process environment.
func FromEnv(pkg string) (*Config, error) {
	return Load(pkg, os.LookupEnv)
}

// Load loads the configuration for pkg using lookup. All invalid values are
// reported together.
func Load(pkg string, lookup LookupFunc) (*Config, error) {
	prefix := Prefix(pkg)
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}

		return def
	}

	cfg := &Config{
		LogLevel:        get(prefix+LogLevelKey, DefaultLogLevel),
		LogFormat:       get(prefix+LogFormatKey, DefaultLogFormat),
		RegistryHost:    get(RegistryEnv, registry.DefaultHost),
		Node:            DefaultNode,
		RegistryTimeout: registry.DefaultTimeout,
	}

	// npm variables are compared verbatim.
	if v, ok := lookup(LifecycleEventEnv); ok {
		cfg.NPXRuntime = v == NPXLifecycleEvent
	}

	if v, ok := lookup(SkipEnv); ok {
		cfg.SkipVersionCheck = v != ""
	}

	if v, ok := lookup(prefix + NodeKey); ok {
		cfg.Node = strings.TrimSpace(v)
	}

	var merr error

	if _, err := log.GetLevel(cfg.LogLevel); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", prefix+LogLevelKey, err))
	}

	switch strings.ToLower(cfg.LogFormat) {
	case log.TextFormat, log.JSONFormat, log.LogfmtFormat:
	default:
		merr = multierror.Append(merr, fmt.Errorf("%s: %w: %q", prefix+LogFormatKey, log.ErrInvalidFormat, cfg.LogFormat))
	}

	if v := get(prefix+RegistryTimeoutKey, ""); v != "" {
		d, err := time.ParseDuration(v)
		switch {
		case err != nil:
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", prefix+RegistryTimeoutKey, err))
		case d <= 0:
			merr = multierror.Append(merr, fmt.Errorf("%s: must be positive, got %s", prefix+RegistryTimeoutKey, d))
		default:
			cfg.RegistryTimeout = d
		}
	}

	color, err := warn.ParseColorMode(get(prefix+ColorKey, ""))
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("%s: %w", prefix+ColorKey, err))
	}

	cfg.Color = color

	if merr != nil {
		return nil, fmt.Errorf("%w: %w", shimerrors.ErrInvalidConfig, merr)
	}

	return cfg, nil
}
