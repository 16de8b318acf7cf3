package swc

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/logger"
	"github.com/cloudposse/tswig/pkg/merge"
	"github.com/cloudposse/tswig/pkg/tsconfig"
)

// json sorts map keys, so rendered configurations are stable.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

const indent = "  "

// Builder holds a generated SWC configuration tree.
// It is not safe for concurrent use.
type Builder struct {
	tree map[string]any
	log  *logger.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger the Builder reports progress to. Builders are
// silent by default.
func WithLogger(l *logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

func newBuilder(tree map[string]any, opts []Option) *Builder {
	b := &Builder{tree: tree, log: logger.Discard()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// New wraps an existing SWC configuration tree.
func New(tree map[string]any, opts ...Option) *Builder {
	if tree == nil {
		tree = map[string]any{}
	}
	return newBuilder(tree, opts)
}

// FromTsConfig converts TypeScript compiler options into a Builder.
func FromTsConfig(opts *tsconfig.CompilerOptions, builderOpts ...Option) (*Builder, error) {
	b := newBuilder(nil, builderOpts)

	if opts.IsEmpty() {
		b.log.Error("No TypeScript configuration provided")
		return nil, errUtils.Build(errUtils.ErrSWCConversion).
			WithCause(errUtils.ErrNoTypeScriptConfig).
			WithHint("Set at least one option under 'compilerOptions' in tsconfig.json").
			WithExitCode(errUtils.ExitCodeConversion).
			Err()
	}

	b.log.Info("Starting SWC conversion")
	tree, err := GenerateConfig(opts, builderOpts...)
	if err != nil {
		return nil, err
	}
	b.tree = tree
	return b, nil
}

// GenerateConfig translates opts into an SWC configuration tree. Fields with
// no value (strictMode, importInterop, baseUrl) are left out of the tree.
func GenerateConfig(opts *tsconfig.CompilerOptions, builderOpts ...Option) (map[string]any, error) {
	log := newBuilder(nil, builderOpts).log

	tree, err := generate(opts)
	if err != nil {
		log.Error("Failed to generate SWC configuration", "error", err)
		return nil, errUtils.Build(errUtils.ErrSWCConversion).
			WithCause(err).
			WithExitCode(errUtils.ExitCodeConversion).
			Err()
	}

	log.Info("Generated SWC configuration")
	return tree, nil
}

func generate(opts *tsconfig.CompilerOptions) (map[string]any, error) {
	if opts == nil {
		return nil, errUtils.ErrNoTypeScriptConfig
	}

	module := ModuleKind(opts)
	paths, baseURL := PathsAndBaseURL(opts)
	decorators := lo.FromPtr(opts.ExperimentalDecorators)

	config := Options{
		SourceMaps: lo.FromPtr(SourceMaps(opts)),
		Module: ModuleConfig{
			Type:          ModuleKindToSWC(module),
			StrictMode:    StrictMode(opts),
			NoInterop:     NoInterop(opts),
			ImportInterop: ImportInterop(opts),
		},
		Jsc: JscConfig{
			ExternalHelpers: lo.FromPtr(opts.ImportHelpers),
			Target:          ScriptTargetToSWC(opts.Target),
			Parser: ParserConfig{
				Syntax:        SyntaxTypeScript,
				TSX:           true,
				Decorators:    decorators,
				DynamicImport: IsESM(module, opts.Target),
			},
			Transform: TransformConfig{
				LegacyDecorator:   decorators,
				DecoratorMetadata: lo.FromPtr(opts.EmitDecoratorMetadata),
				React:             React(opts),
			},
			KeepClassNames: KeepClassNames(opts.Target),
			Paths:          paths,
			BaseURL:        baseURL,
		},
	}

	tree, err := toTree(config)
	if err != nil {
		return nil, err
	}

	if lo.FromPtr(opts.AllowJs) {
		tree = merge.MergeMaps(tree, merge.FromPath("jsc.parser.syntax", string(SyntaxECMAScript)))
	}

	if lo.FromPtr(opts.AllowSyntheticDefaultImports) &&
		config.Module.Type != ModuleSystemJS && !config.Module.NoInterop {
		tree = merge.MergeMaps(tree, map[string]any{
			"module": map[string]any{
				"noInterop":     false,
				"importInterop": ImportInteropNone,
			},
		})
	}

	return tree, nil
}

// Overrides deep-merges overrides into the configuration. Overrides are a
// map[string]any or any value that serializes to a JSON object; nil is a no-op.
func (b *Builder) Overrides(overrides any) (*Builder, error) {
	b.log.Info("Merging SWC overrides")

	source, err := overridesTree(overrides)
	if err != nil {
		b.log.Error("Failed to override SWC configuration", "error", err)
		return nil, errUtils.Build(errUtils.ErrSWCOverride).
			WithCause(err).
			WithExitCode(errUtils.ExitCodeOverride).
			Err()
	}

	b.tree = merge.MergeMaps(b.tree, source)
	b.log.Info("Conversion complete")
	return b, nil
}

func overridesTree(overrides any) (map[string]any, error) {
	switch o := overrides.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return o, nil
	default:
		return toTree(o)
	}
}

// toTree normalizes v to a generic tree through a JSON round trip.
func toTree(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrap(err, "configuration must be a JSON object")
	}
	if tree == nil {
		return nil, errors.New("configuration must be a JSON object")
	}
	return tree, nil
}

// ToObject returns the configuration tree. The Builder keeps ownership; callers
// must not modify it.
func (b *Builder) ToObject() map[string]any {
	return b.tree
}

// Options decodes the configuration into its typed view. Keys the typed view
// does not model are ignored.
func (b *Builder) Options() (*Options, error) {
	var opts Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &opts,
		TagName: "json",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(b.tree); err != nil {
		return nil, err
	}
	return &opts, nil
}

// JSON renders the configuration as indented JSON with sorted keys.
func (b *Builder) JSON() ([]byte, error) {
	return json.MarshalIndent(b.tree, "", indent)
}

// String renders the configuration as .swcrc content. A tree that cannot be
// rendered as JSON yields an empty string; use JSON to get the error.
func (b *Builder) String() string {
	data, err := b.JSON()
	if err != nil {
		b.log.Error("Failed to render SWC configuration", "error", err)
		return ""
	}
	return string(data)
}

// WriteFile writes the rendered configuration to path, followed by a newline.
func (b *Builder) WriteFile(path string) error {
	data, err := b.JSON()
	if err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).WithCause(err).WithContext("path", path).Err()
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errUtils.Build(errUtils.ErrWriteOutput).WithCause(err).WithContext("path", path).Err()
	}

	b.log.Debug("Wrote SWC configuration", "path", path)
	return nil
}
