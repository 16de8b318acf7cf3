// Package tsconfig reads TypeScript project configuration files.
package tsconfig

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// CompilerOptions is the subset of tsconfig "compilerOptions" that tswig reads.
// Every field is optional; nil means the option is not set.
type CompilerOptions struct {
	Module           *ModuleKind           `json:"module,omitempty" mapstructure:"module"`
	Target           *ScriptTarget         `json:"target,omitempty" mapstructure:"target"`
	ModuleResolution *ModuleResolutionKind `json:"moduleResolution,omitempty" mapstructure:"moduleResolution"`

	Strict              *bool `json:"strict,omitempty" mapstructure:"strict"`
	AlwaysStrict        *bool `json:"alwaysStrict,omitempty" mapstructure:"alwaysStrict"`
	NoImplicitUseStrict *bool `json:"noImplicitUseStrict,omitempty" mapstructure:"noImplicitUseStrict"`
	StrictNullChecks    *bool `json:"strictNullChecks,omitempty" mapstructure:"strictNullChecks"`

	Jsx                *JsxEmit `json:"jsx,omitempty" mapstructure:"jsx"`
	JsxFactory         *string  `json:"jsxFactory,omitempty" mapstructure:"jsxFactory"`
	JsxFragmentFactory *string  `json:"jsxFragmentFactory,omitempty" mapstructure:"jsxFragmentFactory"`
	JsxImportSource    *string  `json:"jsxImportSource,omitempty" mapstructure:"jsxImportSource"`

	ExperimentalDecorators *bool `json:"experimentalDecorators,omitempty" mapstructure:"experimentalDecorators"`
	EmitDecoratorMetadata  *bool `json:"emitDecoratorMetadata,omitempty" mapstructure:"emitDecoratorMetadata"`

	Paths   map[string][]string `json:"paths,omitempty" mapstructure:"paths"`
	BaseURL *string             `json:"baseUrl,omitempty" mapstructure:"baseUrl"`
	OutDir  *string             `json:"outDir,omitempty" mapstructure:"outDir"`
	RootDir *string             `json:"rootDir,omitempty" mapstructure:"rootDir"`

	EsModuleInterop              *bool `json:"esModuleInterop,omitempty" mapstructure:"esModuleInterop"`
	AllowSyntheticDefaultImports *bool `json:"allowSyntheticDefaultImports,omitempty" mapstructure:"allowSyntheticDefaultImports"`
	AllowJs                      *bool `json:"allowJs,omitempty" mapstructure:"allowJs"`
	SourceMap                    *bool `json:"sourceMap,omitempty" mapstructure:"sourceMap"`
	ImportHelpers                *bool `json:"importHelpers,omitempty" mapstructure:"importHelpers"`
}

// IsEmpty reports whether no option is set. A nil receiver is empty.
func (o *CompilerOptions) IsEmpty() bool {
	return o == nil || reflect.ValueOf(*o).IsZero()
}

// pathOptionKeys are the options holding paths relative to the declaring file.
var pathOptionKeys = []string{"baseUrl", "outDir", "rootDir"}

// DecodeCompilerOptions decodes a raw "compilerOptions" object. Enumerations
// accept their tsconfig names ("ESNext", "react-jsx") or numeric ordinals, and
// unknown options are ignored.
func DecodeCompilerOptions(raw map[string]any) (*CompilerOptions, error) {
	var opts CompilerOptions
	if len(raw) == 0 {
		return &opts, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(enumDecodeHook),
		Result:     &opts,
		TagName:    "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &opts, nil
}

var (
	moduleKindType       = reflect.TypeOf(ModuleKind(0))
	scriptTargetType     = reflect.TypeOf(ScriptTarget(0))
	jsxEmitType          = reflect.TypeOf(JsxEmit(0))
	moduleResolutionType = reflect.TypeOf(ModuleResolutionKind(0))
)

// enumDecodeHook turns tsconfig strings into the enumeration types.
func enumDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	s, ok := data.(string)
	if !ok || from.Kind() != reflect.String {
		return data, nil
	}

	switch to {
	case moduleKindType:
		return ParseModuleKind(s)
	case scriptTargetType:
		return ParseScriptTarget(s)
	case jsxEmitType:
		return ParseJsxEmit(s)
	case moduleResolutionType:
		return ParseModuleResolutionKind(s)
	default:
		return data, nil
	}
}

// Bool returns a pointer to v. Handy for building options in code.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
