package analysis

import "maps"

const environmentKey = "environment"

// DefaultCompilerOptions returns the options every analysis run starts from.
// The analysis never emits code; it only reports.
func DefaultCompilerOptions() map[string]any {
	return map[string]any{
		"noEmit":         true,
		"panicThreshold": "none",
		environmentKey: map[string]any{
			"validateRefAccessDuringRender":           true,
			"validateNoSetStateInRender":              true,
			"validateNoSetStateInEffects":             true,
			"validateNoJSXInTryStatements":            true,
			"validateNoImpureFunctionsInRender":       true,
			"validateStaticComponents":                true,
			"validateNoFreezingKnownMutableFunctions": true,
			"validateNoVoidUseMemo":                   true,
			"validateNoCapitalizedCalls":              []any{},
			"validateHooksUsage":                      true,
			"validateNoDerivedComputationsInEffects":  true,
		},
	}
}

// MergeCompilerOptions overlays user options on the defaults. The
// "environment" table is merged one level deep; every other key replaces.
func MergeCompilerOptions(user map[string]any) map[string]any {
	merged := DefaultCompilerOptions()
	defaultEnv, _ := merged[environmentKey].(map[string]any)

	for k, v := range user {
		if k == environmentKey {
			continue
		}

		merged[k] = v
	}

	env := make(map[string]any, len(defaultEnv))
	maps.Copy(env, defaultEnv)

	if userEnv, ok := user[environmentKey].(map[string]any); ok {
		maps.Copy(env, userEnv)
	}

	merged[environmentKey] = env

	return merged
}
