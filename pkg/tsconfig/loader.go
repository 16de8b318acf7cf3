package tsconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/tailscale/hujson"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/logger"
	"github.com/cloudposse/tswig/pkg/merge"
)

// DefaultFileName is the configuration file looked up when a directory is given.
const DefaultFileName = "tsconfig.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ProjectReference is an entry of the tsconfig "references" array.
type ProjectReference struct {
	Path    string `json:"path" mapstructure:"path"`
	Prepend bool   `json:"prepend,omitempty" mapstructure:"prepend"`
}

// ParsedConfig is a tsconfig with its "extends" chain applied.
type ParsedConfig struct {
	// Path is the absolute path of the configuration file, empty for in-memory configs.
	Path string
	// Dir is the directory relative paths were resolved against.
	Dir string
	// Options are the effective compiler options.
	Options *CompilerOptions
	// RawOptions is the effective "compilerOptions" object, unknown options included.
	RawOptions map[string]any
	// Files, Include and Exclude hold absolute, slash-separated paths and patterns.
	// A nil slice means the configuration chain never set the field.
	Files   []string
	Include []string
	Exclude []string
	// References are the project references with absolute paths.
	References []ProjectReference
	// Extends lists the absolute paths of every extended configuration, in load order.
	Extends []string
}

// Option configures the loader.
type Option func(*loader)

// WithLogger sets the logger used while loading. The default is logger.Default().
func WithLogger(l *logger.Logger) Option {
	return func(ld *loader) {
		if l != nil {
			ld.log = l
		}
	}
}

type loader struct {
	log *logger.Logger
	// chain holds the files currently being resolved, outermost first.
	chain []string
}

func newLoader(opts []Option) *loader {
	ld := &loader{log: logger.Default()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// layer is one resolved configuration in an extends chain.
type layer struct {
	compilerOptions map[string]any
	files           []string
	include         []string
	exclude         []string
	references      []ProjectReference
	extends         []string
}

// Load reads the configuration at path (a file, or a directory holding tsconfig.json)
// and resolves its "extends" chain.
func Load(path string, opts ...Option) (*ParsedConfig, error) {
	if path == "" {
		path = DefaultFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadTsConfig).WithCause(err).Err()
	}
	if fi, statErr := os.Stat(abs); statErr == nil && fi.IsDir() {
		abs = filepath.Join(abs, DefaultFileName)
	}

	ld := newLoader(opts)
	l, err := ld.loadFile(abs)
	if err != nil {
		return nil, err
	}
	ld.log.Debug("Read TypeScript configuration", "path", abs, "extends", len(l.extends))

	return l.parsed(abs, filepath.Dir(abs))
}

// Parse resolves an in-memory tsconfig object. Relative paths, including
// "extends", resolve against baseDir.
func Parse(raw map[string]any, baseDir string, opts ...Option) (*ParsedConfig, error) {
	if baseDir == "" {
		baseDir = "."
	}
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).WithCause(err).Err()
	}

	ld := newLoader(opts)
	l, err := ld.resolve(raw, absDir, "")
	if err != nil {
		return nil, err
	}
	return l.parsed("", absDir)
}

func (l *layer) parsed(path, dir string) (*ParsedConfig, error) {
	options, err := DecodeCompilerOptions(l.compilerOptions)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}
	return &ParsedConfig{
		Path:       path,
		Dir:        dir,
		Options:    options,
		RawOptions: l.compilerOptions,
		Files:      l.files,
		Include:    l.include,
		Exclude:    l.exclude,
		References: l.references,
		Extends:    l.extends,
	}, nil
}

// ReadRaw reads a JSON-with-comments file into a generic object.
func ReadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrReadTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	var raw map[string]any
	if err := json.Unmarshal(standard, &raw); err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}
	return raw, nil
}

func (ld *loader) loadFile(path string) (*layer, error) {
	if lo.Contains(ld.chain, path) {
		return nil, errUtils.Build(errUtils.ErrExtendsCycle).
			WithSentinel(errUtils.ErrParseTsConfig).
			WithExplanation("extends chain: "+strings.Join(ld.chain, " -> ")+" -> "+path).
			WithContext("path", path).
			WithHint("Remove the 'extends' entry that points back to a configuration already in the chain").
			Err()
	}
	ld.chain = append(ld.chain, path)
	defer func() { ld.chain = ld.chain[:len(ld.chain)-1] }()

	raw, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	return ld.resolve(raw, filepath.Dir(path), path)
}

// resolve applies the extends chain of raw, which was declared in dir.
func (ld *loader) resolve(raw map[string]any, dir, path string) (*layer, error) {
	own, err := ownLayer(raw, dir)
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	specs, err := extendsSpecs(raw["extends"])
	if err != nil {
		return nil, errUtils.Build(errUtils.ErrParseTsConfig).
			WithCause(err).
			WithContext("path", path).
			Err()
	}

	result := &layer{compilerOptions: map[string]any{}}
	for _, spec := range specs {
		basePath, err := resolveExtends(spec, dir)
		if err != nil {
			return nil, err
		}
		ld.log.Debug("Resolving extended TypeScript configuration", "extends", spec, "path", basePath)

		base, err := ld.loadFile(basePath)
		if err != nil {
			return nil, err
		}
		result.inherit(base)
		result.extends = append(result.extends, base.extends...)
		result.extends = append(result.extends, basePath)
	}

	result.inherit(own)
	// References are never inherited.
	result.references = own.references
	return result, nil
}

// inherit layers child on top of l.
func (l *layer) inherit(child *layer) {
	l.compilerOptions = merge.MergeMaps(l.compilerOptions, child.compilerOptions, merge.WithCustomMerge(replaceCollections))
	if child.files != nil {
		l.files = child.files
	}
	if child.include != nil {
		l.include = child.include
	}
	if child.exclude != nil {
		l.exclude = child.exclude
	}
}

// replaceCollections gives "extends" its tsconfig semantics: arrays and the
// "paths" table of a derived configuration replace the base ones.
func replaceCollections(key string, _, source any) (any, bool) {
	if key == "paths" || merge.KindOf(source) == merge.KindSequence {
		return source, true
	}
	return nil, false
}

// ownLayer extracts the settings declared directly in raw, rebasing paths onto dir.
func ownLayer(raw map[string]any, dir string) (*layer, error) {
	l := &layer{compilerOptions: map[string]any{}}

	if co, ok := raw["compilerOptions"]; ok && co != nil {
		obj, ok := co.(map[string]any)
		if !ok {
			return nil, errors.New("'compilerOptions' must be an object")
		}
		l.compilerOptions = rebaseOptions(obj, dir)
	}

	var err error
	if l.files, err = stringList(raw, "files", dir); err != nil {
		return nil, err
	}
	if l.include, err = stringList(raw, "include", dir); err != nil {
		return nil, err
	}
	if l.exclude, err = stringList(raw, "exclude", dir); err != nil {
		return nil, err
	}

	if refs, ok := raw["references"].([]any); ok {
		for _, r := range refs {
			obj, ok := r.(map[string]any)
			if !ok {
				return nil, errors.New("'references' entries must be objects")
			}
			p, _ := obj["path"].(string)
			if p == "" {
				return nil, errors.New("'references' entries need a 'path'")
			}
			prepend, _ := obj["prepend"].(bool)
			l.references = append(l.references, ProjectReference{Path: absPath(dir, p), Prepend: prepend})
		}
	}
	return l, nil
}

// rebaseOptions copies opts, making path-valued options absolute.
func rebaseOptions(opts map[string]any, dir string) map[string]any {
	out := make(map[string]any, len(opts))
	for k, v := range opts {
		out[k] = v
	}

	for key, v := range out {
		s, ok := v.(string)
		if !ok || !lo.Contains(pathOptionKeys, key) {
			continue
		}
		out[key] = absPath(dir, s)
	}
	return out
}

func stringList(raw map[string]any, key, dir string) ([]string, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, errors.Newf("'%s' must be an array of strings", key)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.Newf("'%s' must be an array of strings", key)
		}
		out = append(out, absPath(dir, s))
	}
	return out, nil
}

func extendsSpecs(v any) ([]string, error) {
	switch e := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{e}, nil
	case []any:
		specs := make([]string, 0, len(e))
		for _, item := range e {
			s, ok := item.(string)
			if !ok {
				return nil, errors.New("'extends' must be a string or an array of strings")
			}
			specs = append(specs, s)
		}
		return specs, nil
	default:
		return nil, errors.New("'extends' must be a string or an array of strings")
	}
}

// resolveExtends finds the file an "extends" specifier points to: a relative
// or absolute path, or a package under node_modules.
func resolveExtends(spec, dir string) (string, error) {
	var candidates []string
	if isPathSpecifier(spec) {
		candidates = fileCandidates(absPath(dir, spec))
	} else {
		for d := dir; ; d = filepath.Dir(d) {
			candidates = append(candidates, fileCandidates(filepath.Join(d, "node_modules", filepath.FromSlash(spec)))...)
			if filepath.Dir(d) == d {
				break
			}
		}
	}

	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return filepath.Clean(c), nil
		}
	}

	return "", errUtils.Build(errUtils.ErrExtendsNotFound).
		WithContext("extends", spec).
		WithContext("dir", dir).
		WithHintf("Check that '%s' exists or that its package is installed", spec).
		Err()
}

func isPathSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		spec == "." || spec == ".." || filepath.IsAbs(spec) ||
		strings.HasPrefix(spec, `.\`) || strings.HasPrefix(spec, `..\`)
}

func fileCandidates(p string) []string {
	if strings.HasSuffix(p, ".json") {
		return []string{p}
	}
	return []string{p, p + ".json", filepath.Join(p, DefaultFileName)}
}

// absPath resolves p against dir and returns it slash-separated.
func absPath(dir, p string) string {
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.ToSlash(filepath.Clean(p))
}
