// Package tswig converts a TypeScript project configuration into an SWC
// configuration in one call: read tsconfig.json, translate it, apply overrides.
package tswig

import (
	"os"

	"gopkg.in/yaml.v3"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/logger"
	"github.com/cloudposse/tswig/pkg/swc"
	"github.com/cloudposse/tswig/pkg/tsconfig"
)

// Option configures a conversion.
type Option func(*options)

type options struct {
	log *logger.Logger
}

// WithLogger sets the logger for every step of the conversion.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{log: logger.Default()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Convert reads the tsconfig at tsconfigPath (a file or a project directory),
// translates its compiler options and applies overrides.
func Convert(tsconfigPath string, overrides any, opts ...Option) (*swc.Builder, error) {
	o := newOptions(opts)

	cfg, err := tsconfig.Load(tsconfigPath, tsconfig.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	o.log.Debug("Loaded TypeScript configuration", "path", cfg.Path)

	return build(cfg, overrides, o)
}

// ConvertConfig is Convert for an in-memory tsconfig object. Relative paths
// resolve against baseDir.
func ConvertConfig(raw map[string]any, baseDir string, overrides any, opts ...Option) (*swc.Builder, error) {
	o := newOptions(opts)

	cfg, err := tsconfig.Parse(raw, baseDir, tsconfig.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	return build(cfg, overrides, o)
}

// build translates cfg. A project counts as configured when it sets any
// compiler option, including ones SWC has no counterpart for ("declaration", "lib").
func build(cfg *tsconfig.ParsedConfig, overrides any, o *options) (*swc.Builder, error) {
	if len(cfg.RawOptions) > 0 && cfg.Options.IsEmpty() {
		o.log.Debug("No compiler option maps to SWC, using defaults", "options", len(cfg.RawOptions))
		tree, err := swc.GenerateConfig(cfg.Options, swc.WithLogger(o.log))
		if err != nil {
			return nil, err
		}
		return swc.New(tree, swc.WithLogger(o.log)).Overrides(overrides)
	}

	b, err := swc.FromTsConfig(cfg.Options, swc.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	return b.Overrides(overrides)
}

// LoadOverrides reads an overrides file. YAML and JSON are both accepted.
// An empty file yields no overrides.
func LoadOverrides(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadOverrides).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	var overrides map[string]any
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, errUtils.Build(errUtils.ErrReadOverrides).
			WithCause(err).
			WithContext("path", path).
			WithHint("Overrides must be a YAML or JSON object, for example '{\"jsc\": {\"minify\": {}}}'").
			Err()
	}
	if overrides == nil {
		overrides = map[string]any{}
	}
	return overrides, nil
}
