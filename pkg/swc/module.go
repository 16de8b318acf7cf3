package swc

import "github.com/cloudposse/tswig/pkg/tsconfig"

// ModuleKindToSWC maps a TypeScript module kind to the SWC module type.
// Kinds SWC has no counterpart for, and an unset kind, map to commonjs.
func ModuleKindToSWC(kind *tsconfig.ModuleKind) ModuleType {
	if kind == nil {
		return ModuleCommonJS
	}

	switch *kind {
	case tsconfig.ModuleAMD:
		return ModuleAMD
	case tsconfig.ModuleUMD:
		return ModuleUMD
	case tsconfig.ModuleSystem:
		return ModuleSystemJS
	case tsconfig.ModuleES2015:
		return ModuleES6
	case tsconfig.ModuleES2020, tsconfig.ModuleESNext:
		return ModuleNodeNext
	default:
		return ModuleCommonJS
	}
}
