package tsconfig

import (
	"context"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/glob"
)

var (
	// DefaultInclude is used when a configuration sets neither "files" nor "include".
	DefaultInclude = []string{"**/*"}
	// DefaultExclude is used when a configuration does not set "exclude". The
	// compiler output directory is excluded as well.
	DefaultExclude = []string{"node_modules", "bower_components", "jspm_packages"}

	tsExtensions = []string{".ts", ".tsx", ".d.ts"}
	jsExtensions = []string{".js", ".jsx"}
)

// Extensions returns the source file extensions the project compiles.
func (c *ParsedConfig) Extensions() []string {
	if c.Options != nil && c.Options.AllowJs != nil && *c.Options.AllowJs {
		return append(append([]string{}, tsExtensions...), jsExtensions...)
	}
	return append([]string{}, tsExtensions...)
}

// IncludeSpecs returns the effective "include" patterns, absolute and slash-separated.
func (c *ParsedConfig) IncludeSpecs() []string {
	if c.Include != nil {
		return c.Include
	}
	if c.Files != nil {
		return nil
	}
	return lo.Map(DefaultInclude, func(p string, _ int) string { return absPath(c.Dir, p) })
}

// ExcludeSpecs returns the effective "exclude" patterns, absolute and slash-separated.
func (c *ParsedConfig) ExcludeSpecs() []string {
	if c.Exclude != nil {
		return c.Exclude
	}
	specs := lo.Map(DefaultExclude, func(p string, _ int) string { return absPath(c.Dir, p) })
	if c.Options != nil && c.Options.OutDir != nil && *c.Options.OutDir != "" {
		specs = append(specs, absPath(c.Dir, *c.Options.OutDir))
	}
	return specs
}

// ResolveFiles lists the project's source files: every "files" entry plus the
// files matched by "include" that are not excluded. The result is sorted,
// absolute and slash-separated.
func (c *ParsedConfig) ResolveFiles(ctx context.Context) ([]string, error) {
	extensions := c.Extensions()
	excludes := lo.Map(c.ExcludeSpecs(), func(spec string, _ int) *regexp.Regexp {
		return glob.Compile(spec)
	})

	result := append([]string{}, c.Files...)
	for _, spec := range c.IncludeSpecs() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches, err := globSpec(includePattern(spec))
		if err != nil {
			return nil, errUtils.Build(errUtils.ErrResolveFiles).
				WithCause(err).
				WithContext("include", spec).
				Err()
		}

		for _, m := range matches {
			if !hasExtension(m, extensions) || isExcluded(m, excludes) {
				continue
			}
			result = append(result, m)
		}
	}

	result = lo.Uniq(result)
	sort.Strings(result)
	return result, nil
}

// includePattern turns a directory spec ("src") into a pattern for everything below it.
func includePattern(spec string) string {
	last := path.Base(spec)
	if strings.ContainsAny(last, "*?") || path.Ext(last) != "" {
		return spec
	}
	return strings.TrimSuffix(spec, "/") + "/**/*"
}

// globSpec expands an absolute pattern to the regular files it matches.
func globSpec(pattern string) ([]string, error) {
	base, rel := doublestar.SplitPattern(pattern)
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil, nil
	}

	matches, err := doublestar.Glob(os.DirFS(base), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = path.Join(base, m)
	}
	return matches, nil
}

func hasExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	return lo.ContainsBy(extensions, func(ext string) bool { return strings.HasSuffix(lower, ext) })
}

// isExcluded reports whether name, or one of its parent directories, matches an exclude pattern.
func isExcluded(name string, excludes []*regexp.Regexp) bool {
	for p := name; ; p = path.Dir(p) {
		if lo.ContainsBy(excludes, func(re *regexp.Regexp) bool { return re.MatchString(p) }) {
			return true
		}
		if path.Dir(p) == p || p == "." {
			return false
		}
	}
}
