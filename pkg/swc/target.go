package swc

import "github.com/cloudposse/tswig/pkg/tsconfig"

var scriptTargets = map[tsconfig.ScriptTarget]Target{
	tsconfig.TargetES3:    TargetES3,
	tsconfig.TargetES5:    TargetES5,
	tsconfig.TargetES2015: TargetES2015,
	tsconfig.TargetES2016: TargetES2016,
	tsconfig.TargetES2017: TargetES2017,
	tsconfig.TargetES2018: TargetES2018,
	tsconfig.TargetES2019: TargetES2019,
	tsconfig.TargetES2020: TargetES2020,
	tsconfig.TargetES2021: TargetES2021,
	tsconfig.TargetES2022: TargetES2022,
	tsconfig.TargetESNext: TargetESNext,
}

// ScriptTargetToSWC maps a TypeScript script target to the SWC target.
// Unknown and unset targets map to esnext.
func ScriptTargetToSWC(target *tsconfig.ScriptTarget) Target {
	if target == nil {
		return TargetESNext
	}
	if t, ok := scriptTargets[*target]; ok {
		return t
	}
	return TargetESNext
}
