package swc

import (
	"github.com/samber/lo"

	"github.com/cloudposse/tswig/pkg/tsconfig"
)

const (
	defaultPragma     = "React.createElement"
	defaultPragmaFrag = "React.Fragment"
)

// Targets that predate native classes; names are minified freely there.
var classNameUnsafeTargets = []Target{TargetES3, TargetES5, "es6", TargetES2015}

// ModuleKind returns the configured module kind, or nil when it is unset or None.
func ModuleKind(opts *tsconfig.CompilerOptions) *tsconfig.ModuleKind {
	if opts == nil || opts.Module == nil || *opts.Module == tsconfig.ModuleNone {
		return nil
	}
	return lo.ToPtr(*opts.Module)
}

// StrictMode derives "module.strictMode". It is nil unless alwaysStrict or
// noImplicitUseStrict is set.
func StrictMode(opts *tsconfig.CompilerOptions) *bool {
	if opts == nil || (opts.AlwaysStrict == nil && opts.NoImplicitUseStrict == nil) {
		return nil
	}
	alwaysStrict := lo.FromPtr(opts.AlwaysStrict)
	noImplicitUseStrict := lo.FromPtr(opts.NoImplicitUseStrict)
	return lo.ToPtr(alwaysStrict || !noImplicitUseStrict)
}

// EsModuleInterop returns the esModuleInterop option as set.
func EsModuleInterop(opts *tsconfig.CompilerOptions) *bool {
	if opts == nil {
		return nil
	}
	return opts.EsModuleInterop
}

// SourceMaps returns the sourceMap option as set.
func SourceMaps(opts *tsconfig.CompilerOptions) *bool {
	if opts == nil {
		return nil
	}
	return opts.SourceMap
}

// NoInterop is the inverse of esModuleInterop; an unset option disables interop.
func NoInterop(opts *tsconfig.CompilerOptions) bool {
	return !lo.FromPtr(EsModuleInterop(opts))
}

// ImportInterop returns "swc" when esModuleInterop is on and "" otherwise.
func ImportInterop(opts *tsconfig.CompilerOptions) string {
	if lo.FromPtr(EsModuleInterop(opts)) {
		return ImportInteropSWC
	}
	return ""
}

// JSXEnabled reports whether the project compiles JSX.
func JSXEnabled(opts *tsconfig.CompilerOptions) bool {
	return opts != nil && opts.Jsx != nil && *opts.Jsx != tsconfig.JsxNone
}

// React derives "jsc.transform.react". It is empty when JSX is disabled;
// otherwise every field is set.
func React(opts *tsconfig.CompilerOptions) ReactConfig {
	if !JSXEnabled(opts) {
		return ReactConfig{}
	}

	jsx := *opts.Jsx
	runtime := RuntimeClassic
	if jsx == tsconfig.JsxReactJSX || jsx == tsconfig.JsxReactJSXDev {
		runtime = RuntimeAutomatic
	}

	return ReactConfig{
		Pragma:           lo.ToPtr(lo.CoalesceOrEmpty(lo.FromPtr(opts.JsxFactory), defaultPragma)),
		PragmaFrag:       lo.ToPtr(lo.CoalesceOrEmpty(lo.FromPtr(opts.JsxFragmentFactory), defaultPragmaFrag)),
		ImportSource:     lo.ToPtr(lo.FromPtr(opts.JsxImportSource)),
		Runtime:          lo.ToPtr(runtime),
		ThrowIfNamespace: lo.ToPtr(false),
		Development:      lo.ToPtr(jsx == tsconfig.JsxReactJSXDev),
	}
}

// KeepClassNames is false for targets up to es2015 and true for everything newer.
func KeepClassNames(target *tsconfig.ScriptTarget) bool {
	return !lo.Contains(classNameUnsafeTargets, ScriptTargetToSWC(target))
}

// IsESM reports whether the project emits ECMAScript modules: the module kind
// is ESNext or newer and the target is ES2015 or newer. Unset or zero inputs
// are never ESM.
func IsESM(module *tsconfig.ModuleKind, target *tsconfig.ScriptTarget) bool {
	if module == nil || target == nil || *module == 0 || *target == 0 {
		return false
	}
	return *module >= tsconfig.ModuleESNext && *target >= tsconfig.TargetES2015
}

// IsMultiPackageRepo reports whether outDir is set without rootDir, the layout
// of a package built inside a monorepo.
func IsMultiPackageRepo(opts *tsconfig.CompilerOptions) bool {
	return opts != nil && lo.FromPtr(opts.OutDir) != "" && lo.FromPtr(opts.RootDir) == ""
}

// PathsAndBaseURL derives "jsc.paths" and "jsc.baseUrl". In a multi-package
// repo the paths are dropped and the base URL is the output directory.
func PathsAndBaseURL(opts *tsconfig.CompilerOptions) (map[string][]string, string) {
	if opts == nil {
		return map[string][]string{}, ""
	}
	if IsMultiPackageRepo(opts) {
		return map[string][]string{}, *opts.OutDir
	}

	paths := opts.Paths
	if paths == nil {
		paths = map[string][]string{}
	}
	return paths, lo.FromPtr(opts.BaseURL)
}
