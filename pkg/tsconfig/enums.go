package tsconfig

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ModuleKind mirrors TypeScript's ModuleKind enumeration, ordinals included.
type ModuleKind int

const (
	ModuleNone     ModuleKind = 0
	ModuleCommonJS ModuleKind = 1
	ModuleAMD      ModuleKind = 2
	ModuleUMD      ModuleKind = 3
	ModuleSystem   ModuleKind = 4
	ModuleES2015   ModuleKind = 5
	ModuleES2020   ModuleKind = 6
	ModuleES2022   ModuleKind = 7
	ModuleESNext   ModuleKind = 99
	ModuleNode16   ModuleKind = 100
	ModuleNodeNext ModuleKind = 199
	ModulePreserve ModuleKind = 200
)

var moduleKindNames = map[string]ModuleKind{
	"none":     ModuleNone,
	"commonjs": ModuleCommonJS,
	"amd":      ModuleAMD,
	"umd":      ModuleUMD,
	"system":   ModuleSystem,
	"es6":      ModuleES2015,
	"es2015":   ModuleES2015,
	"es2020":   ModuleES2020,
	"es2022":   ModuleES2022,
	"esnext":   ModuleESNext,
	"node16":   ModuleNode16,
	"nodenext": ModuleNodeNext,
	"preserve": ModulePreserve,
}

// ScriptTarget mirrors TypeScript's ScriptTarget enumeration, ordinals included.
type ScriptTarget int

const (
	TargetES3    ScriptTarget = 0
	TargetES5    ScriptTarget = 1
	TargetES2015 ScriptTarget = 2
	TargetES2016 ScriptTarget = 3
	TargetES2017 ScriptTarget = 4
	TargetES2018 ScriptTarget = 5
	TargetES2019 ScriptTarget = 6
	TargetES2020 ScriptTarget = 7
	TargetES2021 ScriptTarget = 8
	TargetES2022 ScriptTarget = 9
	TargetESNext ScriptTarget = 99
	TargetJSON   ScriptTarget = 100
	TargetLatest              = TargetESNext
)

var scriptTargetNames = map[string]ScriptTarget{
	"es3":    TargetES3,
	"es5":    TargetES5,
	"es6":    TargetES2015,
	"es2015": TargetES2015,
	"es2016": TargetES2016,
	"es2017": TargetES2017,
	"es2018": TargetES2018,
	"es2019": TargetES2019,
	"es2020": TargetES2020,
	"es2021": TargetES2021,
	"es2022": TargetES2022,
	"esnext": TargetESNext,
	"latest": TargetLatest,
}

// JsxEmit mirrors TypeScript's JsxEmit enumeration.
type JsxEmit int

const (
	JsxNone        JsxEmit = 0
	JsxPreserve    JsxEmit = 1
	JsxReact       JsxEmit = 2
	JsxReactNative JsxEmit = 3
	JsxReactJSX    JsxEmit = 4
	JsxReactJSXDev JsxEmit = 5
)

var jsxEmitNames = map[string]JsxEmit{
	"none":         JsxNone,
	"preserve":     JsxPreserve,
	"react":        JsxReact,
	"react-native": JsxReactNative,
	"react-jsx":    JsxReactJSX,
	"react-jsxdev": JsxReactJSXDev,
}

// ModuleResolutionKind mirrors TypeScript's ModuleResolutionKind enumeration.
type ModuleResolutionKind int

const (
	ResolutionClassic  ModuleResolutionKind = 1
	ResolutionNode10   ModuleResolutionKind = 2
	ResolutionNode16   ModuleResolutionKind = 3
	ResolutionNodeNext ModuleResolutionKind = 99
	ResolutionBundler  ModuleResolutionKind = 100
)

var moduleResolutionNames = map[string]ModuleResolutionKind{
	"classic":  ResolutionClassic,
	"node":     ResolutionNode10,
	"node10":   ResolutionNode10,
	"node16":   ResolutionNode16,
	"nodenext": ResolutionNodeNext,
	"bundler":  ResolutionBundler,
}

// ParseModuleKind parses a tsconfig "module" value.
func ParseModuleKind(s string) (ModuleKind, error) {
	return parseEnum(s, "module", moduleKindNames)
}

// ParseScriptTarget parses a tsconfig "target" value.
func ParseScriptTarget(s string) (ScriptTarget, error) {
	return parseEnum(s, "target", scriptTargetNames)
}

// ParseJsxEmit parses a tsconfig "jsx" value.
func ParseJsxEmit(s string) (JsxEmit, error) {
	return parseEnum(s, "jsx", jsxEmitNames)
}

// ParseModuleResolutionKind parses a tsconfig "moduleResolution" value.
func ParseModuleResolutionKind(s string) (ModuleResolutionKind, error) {
	return parseEnum(s, "moduleResolution", moduleResolutionNames)
}

// parseEnum accepts the tsconfig name (case-insensitive) or the numeric ordinal.
func parseEnum[T ~int](s, option string, names map[string]T) (T, error) {
	if v, ok := names[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return T(n), nil
	}
	return 0, errors.Newf("unknown value %q for compiler option '%s'", s, option)
}

func (k ModuleKind) String() string           { return enumName(k, moduleKindNames) }
func (t ScriptTarget) String() string         { return enumName(t, scriptTargetNames) }
func (j JsxEmit) String() string              { return enumName(j, jsxEmitNames) }
func (r ModuleResolutionKind) String() string { return enumName(r, moduleResolutionNames) }

// enumName returns the canonical (longest, then alphabetically first) name of v.
func enumName[T ~int](v T, names map[string]T) string {
	best := ""
	for name, candidate := range names {
		if candidate != v {
			continue
		}
		if len(name) > len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	if best == "" {
		return strconv.Itoa(int(v))
	}
	return best
}
