// Package swc translates TypeScript compiler options into SWC configuration.
//
// The translation is a set of pure functions over tsconfig.CompilerOptions
// (module.go, target.go, translate.go) and a Builder that assembles them into
// an .swcrc tree and layers caller overrides on top. Validate checks a tree
// against the embedded .swcrc schema.
package swc

// ModuleType is the SWC "module.type" value.
type ModuleType string

const (
	ModuleCommonJS ModuleType = "commonjs"
	ModuleAMD      ModuleType = "amd"
	ModuleUMD      ModuleType = "umd"
	ModuleSystemJS ModuleType = "systemjs"
	ModuleES6      ModuleType = "es6"
	ModuleNodeNext ModuleType = "nodenext"
)

// Target is the SWC "jsc.target" value.
type Target string

const (
	TargetES3    Target = "es3"
	TargetES5    Target = "es5"
	TargetES2015 Target = "es2015"
	TargetES2016 Target = "es2016"
	TargetES2017 Target = "es2017"
	TargetES2018 Target = "es2018"
	TargetES2019 Target = "es2019"
	TargetES2020 Target = "es2020"
	TargetES2021 Target = "es2021"
	TargetES2022 Target = "es2022"
	TargetESNext Target = "esnext"
)

// Syntax is the SWC parser syntax.
type Syntax string

const (
	SyntaxTypeScript Syntax = "typescript"
	SyntaxECMAScript Syntax = "ecmascript"
)

// Import interop modes.
const (
	ImportInteropSWC  = "swc"
	ImportInteropNone = "none"
)

// React runtimes.
const (
	RuntimeAutomatic = "automatic"
	RuntimeClassic   = "classic"
)

// Options is the typed view of an .swcrc file.
type Options struct {
	SourceMaps bool         `json:"sourceMaps" mapstructure:"sourceMaps"`
	Module     ModuleConfig `json:"module" mapstructure:"module"`
	Jsc        JscConfig    `json:"jsc" mapstructure:"jsc"`
}

// ModuleConfig is the "module" section.
type ModuleConfig struct {
	Type ModuleType `json:"type" mapstructure:"type"`
	// StrictMode is omitted unless the project sets alwaysStrict or noImplicitUseStrict.
	StrictMode    *bool  `json:"strictMode,omitempty" mapstructure:"strictMode"`
	NoInterop     bool   `json:"noInterop" mapstructure:"noInterop"`
	ImportInterop string `json:"importInterop,omitempty" mapstructure:"importInterop"`
}

// JscConfig is the "jsc" section.
type JscConfig struct {
	ExternalHelpers bool                `json:"externalHelpers" mapstructure:"externalHelpers"`
	Target          Target              `json:"target" mapstructure:"target"`
	Parser          ParserConfig        `json:"parser" mapstructure:"parser"`
	Transform       TransformConfig     `json:"transform" mapstructure:"transform"`
	KeepClassNames  bool                `json:"keepClassNames" mapstructure:"keepClassNames"`
	Paths           map[string][]string `json:"paths" mapstructure:"paths"`
	BaseURL         string              `json:"baseUrl,omitempty" mapstructure:"baseUrl"`
}

// ParserConfig is the "jsc.parser" section.
type ParserConfig struct {
	Syntax        Syntax `json:"syntax" mapstructure:"syntax"`
	// TSX is always true.
	TSX           bool   `json:"tsx" mapstructure:"tsx"`
	Decorators    bool   `json:"decorators" mapstructure:"decorators"`
	DynamicImport bool   `json:"dynamicImport" mapstructure:"dynamicImport"`
}

// TransformConfig is the "jsc.transform" section.
type TransformConfig struct {
	LegacyDecorator   bool        `json:"legacyDecorator" mapstructure:"legacyDecorator"`
	DecoratorMetadata bool        `json:"decoratorMetadata" mapstructure:"decoratorMetadata"`
	React             ReactConfig `json:"react" mapstructure:"react"`
}

// ReactConfig is the "jsc.transform.react" section. The zero value renders
// as an empty object, which is what a project without JSX gets.
type ReactConfig struct {
	Pragma           *string `json:"pragma,omitempty" mapstructure:"pragma"`
	PragmaFrag       *string `json:"pragmaFrag,omitempty" mapstructure:"pragmaFrag"`
	ImportSource     *string `json:"importSource,omitempty" mapstructure:"importSource"`
	Runtime          *string `json:"runtime,omitempty" mapstructure:"runtime"`
	ThrowIfNamespace *bool   `json:"throwIfNamespace,omitempty" mapstructure:"throwIfNamespace"`
	Development      *bool   `json:"development,omitempty" mapstructure:"development"`
}

// IsEmpty reports whether no React option is set.
func (r ReactConfig) IsEmpty() bool {
	return r == ReactConfig{}
}
