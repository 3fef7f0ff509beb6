package compiler

import (
	"strings"

	"github.com/erraggy/schemamap/adapter"
	"github.com/erraggy/schemamap/logging"
	"github.com/erraggy/schemamap/schemaerrors"
)

// Option is a function that configures a compilation.
type Option func(*compileConfig) error

type compileConfig struct {
	rootName         string
	namespaceMapping map[string]string
	adapter          adapter.Adapter
	logger           logging.Logger
	dedup            bool
}

// applyOptions applies option functions and fills in defaults.
func applyOptions(opts ...Option) (*compileConfig, error) {
	cfg := &compileConfig{
		adapter: adapter.JSON{},
		logger:  logging.NopLogger{},
		dedup:   true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithRootName overrides the name of the root type.
func WithRootName(name string) Option {
	return func(cfg *compileConfig) error {
		if strings.TrimSpace(name) == "" {
			return &schemaerrors.ConfigError{Option: "root name", Message: "cannot be blank"}
		}
		cfg.rootName = name
		return nil
	}
}

// WithNamespaceMapping maps schema base ids (the part of a pointer before
// "#") to slash-separated package paths relative to the output directory.
// Types compiled from a mapped document are placed in that package.
func WithNamespaceMapping(mapping map[string]string) Option {
	return func(cfg *compileConfig) error {
		out := make(map[string]string, len(mapping))
		for id, pkg := range mapping {
			if id == "" {
				return &schemaerrors.ConfigError{Option: "namespace mapping", Message: "schema id cannot be empty"}
			}
			pkg = strings.Trim(pkg, "/")
			for _, segment := range strings.Split(pkg, "/") {
				if segment == "" || segment == "." || segment == ".." {
					return &schemaerrors.ConfigError{Option: "namespace mapping", Value: pkg, Message: "invalid package path"}
				}
			}
			out[id] = pkg
		}
		cfg.namespaceMapping = out
		return nil
	}
}

// WithAdapter sets the adapter used to load schema documents. Defaults to JSON.
func WithAdapter(a adapter.Adapter) Option {
	return func(cfg *compileConfig) error {
		if a == nil {
			return &schemaerrors.ConfigError{Option: "adapter", Message: "cannot be nil"}
		}
		cfg.adapter = a
		return nil
	}
}

// WithLogger sets the logger for compilation progress. Defaults to no logging.
func WithLogger(l logging.Logger) Option {
	return func(cfg *compileConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}

// WithDedup enables or disables structural deduplication of object
// schemas. Enabled by default.
func WithDedup(enabled bool) Option {
	return func(cfg *compileConfig) error {
		cfg.dedup = enabled
		return nil
	}
}
