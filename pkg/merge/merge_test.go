package merge

import (
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameObject(t *testing.T, expected, actual any) {
	t.Helper()
	e, ok := expected.(map[string]any)
	require.True(t, ok, "expected is not an object")
	a, ok := actual.(map[string]any)
	require.True(t, ok, "actual is not an object")
	assert.Equal(t, reflect.ValueOf(e).UnsafePointer(), reflect.ValueOf(a).UnsafePointer(), "objects are not the same instance")
}

func TestMerge_NonObjectTargetReturnsSource(t *testing.T) {
	source := map[string]any{"a": 1, "b": 2}

	assert.Equal(t, source, Merge(nil, source))
	assert.Equal(t, source, Merge([]any{1, 2, 3}, source))
}

func TestMerge_ScalarSourceReplacesContainer(t *testing.T) {
	assert.Equal(t, "x", Merge(map[string]any{"a": 1}, "x"))
}

func TestMerge_FlatObjects(t *testing.T) {
	source := map[string]any{"a": 1, "b": 2}
	target := map[string]any{"c": 3, "d": 4}

	assert.Equal(t, map[string]any{"a": 1, "b": 2, "c": 3, "d": 4}, Merge(target, source))
}

func TestMerge_SourceWins(t *testing.T) {
	result := Merge(map[string]any{"a": 2, "keep": true}, map[string]any{"a": 1})

	assert.Equal(t, map[string]any{"a": 1, "keep": true}, result)
}

func TestMerge_NestedObjects(t *testing.T) {
	source := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1}}}
	target := map[string]any{"a": map[string]any{"b": map[string]any{"d": 2}}}

	expected := map[string]any{"a": map[string]any{"b": map[string]any{"c": 1, "d": 2}}}
	assert.Equal(t, expected, Merge(target, source))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	source := map[string]any{"a": map[string]any{"x": 1}, "list": []any{3}}
	target := map[string]any{"a": map[string]any{"y": 2}, "list": []any{1, 2}}

	_ = Merge(target, source)

	assert.Equal(t, map[string]any{"a": map[string]any{"x": 1}, "list": []any{3}}, source)
	assert.Equal(t, map[string]any{"a": map[string]any{"y": 2}, "list": []any{1, 2}}, target)
}

func TestMerge_ArraysConcatenate(t *testing.T) {
	source := map[string]any{"a": []any{1, 2, 3}}
	target := map[string]any{"a": []any{4, 5, 6}}

	assert.Equal(t, map[string]any{"a": []any{4, 5, 6, 1, 2, 3}}, Merge(target, source))
}

func TestMerge_TypedSlicesConcatenate(t *testing.T) {
	source := map[string]any{"paths": []string{"src/*"}}
	target := map[string]any{"paths": []string{"lib/*"}}

	assert.Equal(t, map[string]any{"paths": []any{"lib/*", "src/*"}}, Merge(target, source))
}

func TestMerge_TopLevelSequences(t *testing.T) {
	assert.Equal(t, []any{1, 2, "a"}, Merge([]any{1, 2}, []string{"a"}))
}

func TestMerge_ArrayReplacesScalar(t *testing.T) {
	result := Merge(map[string]any{"a": "x"}, map[string]any{"a": []any{1}})

	assert.Equal(t, map[string]any{"a": []any{1}}, result)
}

func TestMerge_ArraysOfObjects(t *testing.T) {
	source := map[string]any{
		"a": []any{
			map[string]any{"id": 1, "value": "source"},
			map[string]any{"id": 2, "value": "source"},
		},
	}
	target := map[string]any{
		"a": []any{
			map[string]any{"id": 1, "value": "target"},
			map[string]any{"id": 3, "value": "target"},
		},
	}

	expected := map[string]any{
		"a": []any{
			map[string]any{"id": 1, "value": "target"},
			map[string]any{"id": 3, "value": "target"},
			map[string]any{"id": 1, "value": "source"},
			map[string]any{"id": 2, "value": "source"},
		},
	}
	assert.Equal(t, expected, Merge(target, source))
}

func TestMerge_ArraysOfObjectsAndPrimitives(t *testing.T) {
	source := map[string]any{"a": []any{map[string]any{"id": 1, "value": "source"}, 2, "hello"}}
	target := map[string]any{"a": []any{map[string]any{"id": 1, "value": "target"}, 3, "world"}}

	expected := map[string]any{
		"a": []any{
			map[string]any{"id": 1, "value": "target"}, 3, "world",
			map[string]any{"id": 1, "value": "source"}, 2, "hello",
		},
	}
	assert.Equal(t, expected, Merge(target, source))
}

func TestMerge_ComplexNested(t *testing.T) {
	source := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": []any{1, 2, 3},
				"d": map[string]any{"e": "source"},
			},
		},
	}
	target := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": []any{4, 5, 6},
				"d": map[string]any{"f": "target"},
			},
		},
	}

	expected := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": []any{4, 5, 6, 1, 2, 3},
				"d": map[string]any{"e": "source", "f": "target"},
			},
		},
	}
	assert.Equal(t, expected, Merge(target, source))
}

func TestMerge_CircularReference(t *testing.T) {
	circular := map[string]any{"a": 1}
	circular["circular"] = circular

	source := map[string]any{"b": 2, "circular": circular}
	target := map[string]any{"a": 1}

	result := Merge(target, source).(map[string]any)

	resultCircular := result["circular"].(map[string]any)
	assert.Equal(t, 1, resultCircular["a"])
	sameObject(t, resultCircular, resultCircular["circular"])
	// The cycle points into the result, not back into the source.
	assert.NotEqual(t, reflect.ValueOf(circular).UnsafePointer(), reflect.ValueOf(resultCircular).UnsafePointer())
}

func TestMerge_MultipleCircularReferences(t *testing.T) {
	circular1 := map[string]any{"a": 1}
	circular1["circular"] = circular1

	circular2 := map[string]any{"b": 2}
	circular2["circular"] = circular2

	source := map[string]any{"c": 3, "circular1": circular1}
	target := map[string]any{"d": 4, "circular2": circular2}

	result := Merge(target, source).(map[string]any)

	c1 := result["circular1"].(map[string]any)
	sameObject(t, c1, c1["circular"])
	c2 := result["circular2"].(map[string]any)
	sameObject(t, c2, c2["circular"])
}

func TestMerge_SharedSourceNodeMergedOnce(t *testing.T) {
	shared := map[string]any{"x": 1}
	source := map[string]any{"left": shared, "right": shared}

	result := Merge(map[string]any{}, source).(map[string]any)

	sameObject(t, result["left"], result["right"])
}

func TestMerge_CustomMerge(t *testing.T) {
	customMerge := func(key string, targetVal, sourceVal any) (any, bool) {
		if key != "custom" {
			return nil, false
		}
		// Source first, unlike the default concatenation.
		return append(append([]any{}, sourceVal.([]any)...), targetVal.([]any)...), true
	}

	source := map[string]any{"a": 1, "custom": []any{1, 2, 3}}
	target := map[string]any{"a": 2, "custom": []any{4, 5, 6}}

	expected := map[string]any{"a": 1, "custom": []any{1, 2, 3, 4, 5, 6}}
	assert.Equal(t, expected, Merge(target, source, WithCustomMerge(customMerge)))
}

func TestMerge_CustomMergeAppliesToNestedKeys(t *testing.T) {
	replaceLists := func(_ string, _, sourceVal any) (any, bool) {
		if KindOf(sourceVal) == KindSequence {
			return sourceVal, true
		}
		return nil, false
	}

	source := map[string]any{"jsc": map[string]any{"paths": map[string]any{"@/*": []any{"src/*"}}}}
	target := map[string]any{"jsc": map[string]any{"paths": map[string]any{"@/*": []any{"lib/*"}}}}

	result := Merge(target, source, WithCustomMerge(replaceLists))

	expected := map[string]any{"jsc": map[string]any{"paths": map[string]any{"@/*": []any{"src/*"}}}}
	assert.Equal(t, expected, result)
}

func TestMerge_Time(t *testing.T) {
	sourceDate := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	targetDate := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	result := Merge(map[string]any{"date": &targetDate}, map[string]any{"date": &sourceDate}).(map[string]any)

	got := result["date"].(*time.Time)
	assert.NotSame(t, &sourceDate, got)
	assert.NotSame(t, &targetDate, got)
	assert.True(t, got.Equal(sourceDate))

	result = Merge(map[string]any{}, map[string]any{"date": sourceDate}).(map[string]any)
	assert.Equal(t, sourceDate, result["date"])
}

func TestMerge_Pattern(t *testing.T) {
	sourceRe := regexp.MustCompile(`(?i)source`)
	targetRe := regexp.MustCompile(`target`)

	result := Merge(map[string]any{"regex": targetRe}, map[string]any{"regex": sourceRe}).(map[string]any)

	got := result["regex"].(*regexp.Regexp)
	assert.NotSame(t, sourceRe, got)
	assert.NotSame(t, targetRe, got)
	assert.Equal(t, sourceRe.String(), got.String())
	assert.True(t, got.MatchString("SOURCE"))
}

func TestMerge_PatternKeepsLongest(t *testing.T) {
	sourceRe := regexp.MustCompile(`a|aa`)
	sourceRe.Longest()

	result := Merge(map[string]any{}, map[string]any{"regex": sourceRe}).(map[string]any)

	got := result["regex"].(*regexp.Regexp)
	assert.NotSame(t, sourceRe, got)
	assert.Equal(t, "aa", got.FindString("aa"))
	assert.Equal(t, sourceRe.FindString("aa"), got.FindString("aa"))
}

func TestMerge_Map(t *testing.T) {
	sourceMap := Map{"a": 1, "b": 2}
	targetMap := Map{"b": 3, "c": 4}

	result := Merge(map[string]any{"map": targetMap}, map[string]any{"map": sourceMap}).(map[string]any)

	got := result["map"].(Map)
	assert.Equal(t, Map{"a": 1, "b": 2, "c": 4}, got)
	got["z"] = 0
	assert.NotContains(t, sourceMap, "z")
	assert.NotContains(t, targetMap, "z")
}

func TestMerge_MapWithNonStringKeys(t *testing.T) {
	type symbol struct{ name string }
	a, b, c := symbol{"a"}, symbol{"b"}, symbol{"c"}

	source := map[string]any{"symbols": Map{a: 1, b: 2}}
	target := map[string]any{"symbols": Map{b: 3, a: 4, c: 5}}

	got := Merge(target, source).(map[string]any)["symbols"].(Map)

	assert.Equal(t, 1, got[a])
	assert.Equal(t, 2, got[b])
	assert.Equal(t, 5, got[c])
}

func TestMerge_MapReplacesIncompatibleTarget(t *testing.T) {
	result := Merge(map[string]any{"map": "scalar"}, map[string]any{"map": Map{"a": 1}}).(map[string]any)

	assert.Equal(t, Map{"a": 1}, result["map"])
}

func TestMerge_Set(t *testing.T) {
	sourceSet := NewSet(1, 2)
	targetSet := NewSet(2, 3)

	result := Merge(map[string]any{"set": targetSet}, map[string]any{"set": sourceSet}).(map[string]any)

	got := result["set"].(Set)
	assert.Equal(t, NewSet(1, 2, 3), got)
	assert.Len(t, sourceSet, 2)
	assert.Len(t, targetSet, 2)
}

func TestMerge_EmptySourceIsIdentity(t *testing.T) {
	a := map[string]any{"module": map[string]any{"type": "commonjs"}, "list": []any{1}}
	b := map[string]any{"module": map[string]any{"strictMode": true}, "list": []any{2}}

	merged := Merge(a, b)

	assert.Equal(t, merged, Merge(merged, map[string]any{}))
}

func TestMergeMaps_NilArguments(t *testing.T) {
	assert.Equal(t, map[string]any{}, MergeMaps(nil, nil))
	assert.Equal(t, map[string]any{"a": 1}, MergeMaps(map[string]any{"a": 1}, nil))
	assert.Equal(t, map[string]any{"a": 1}, MergeMaps(nil, map[string]any{"a": 1}))
}

func TestMergeAll(t *testing.T) {
	inputs := []map[string]any{
		{"foo": "bar"},
		nil,
		{"baz": "bat"},
		{"foo": "ood"},
	}

	assert.Equal(t, map[string]any{"foo": "ood", "baz": "bat"}, MergeAll(inputs))
	assert.Equal(t, map[string]any{}, MergeAll(nil))
}

func TestMergePlainMapAndSet(t *testing.T) {
	result := MergeMaps(
		map[string]any{"m": map[any]any{1: "a"}, "s": map[any]struct{}{"x": {}}},
		map[string]any{"m": map[any]any{2: "b"}, "s": map[any]struct{}{"y": {}}},
	)
	assert.Equal(t, Map{1: "a", 2: "b"}, result["m"])
	assert.Equal(t, NewSet("x", "y"), result["s"])
}

func TestKindOf(t *testing.T) {
	now := time.Now()
	tests := []struct {
		value    any
		expected Kind
	}{
		{nil, KindScalar},
		{"s", KindScalar},
		{1.5, KindScalar},
		{[]byte("raw"), KindScalar},
		{[]any{1}, KindSequence},
		{[]string{"a"}, KindSequence},
		{[2]int{1, 2}, KindSequence},
		{map[string]any{}, KindObject},
		{Map{}, KindMap},
		{Set{}, KindSet},
		{map[any]any{}, KindMap},
		{map[any]struct{}{}, KindSet},
		{now, KindTime},
		{&now, KindTime},
		{regexp.MustCompile("x"), KindPattern},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.value))
		})
	}
}
