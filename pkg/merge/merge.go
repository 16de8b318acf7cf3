// Package merge implements a cycle-safe deep merge of configuration trees.
//
// Trees are built from map[string]any objects, slices, scalars and a few
// special values (time.Time, *regexp.Regexp, Map, Set). Merge never mutates
// its inputs: it returns a new tree in which the source takes precedence.
package merge

import (
	"reflect"
	"regexp"
	"sort"
	"time"
	"unsafe"

	"github.com/samber/lo"
)

// CustomMergeFunc merges a single key. It returns handled=false to fall back
// to the default strategy for that key.
type CustomMergeFunc func(key string, target, source any) (value any, handled bool)

type options struct {
	customMerge CustomMergeFunc
}

// Option configures a merge.
type Option func(*options)

// WithCustomMerge installs a per-key merge hook that runs before the default rules.
func WithCustomMerge(fn CustomMergeFunc) Option {
	return func(o *options) {
		o.customMerge = fn
	}
}

// merger holds the state of one top-level Merge call.
type merger struct {
	opts options
	// seen maps a source object to the result object built for it.
	seen map[unsafe.Pointer]map[string]any
}

// Merge deep-merges source into target and returns the result.
//
// When both values are objects they merge key by key; when both are
// sequences they concatenate (target entries first); otherwise source wins.
// A source object reached twice yields the same result object, so cycles in
// source are reproduced in the result instead of recursing forever.
func Merge(target, source any, opts ...Option) any {
	m := &merger{seen: make(map[unsafe.Pointer]map[string]any)}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m.merge(target, source)
}

// MergeMaps is Merge for two objects. A nil source returns a copy of target.
func MergeMaps(target, source map[string]any, opts ...Option) map[string]any {
	if target == nil {
		target = map[string]any{}
	}
	if source == nil {
		source = map[string]any{}
	}
	return Merge(target, source, opts...).(map[string]any)
}

// MergeAll folds inputs left to right; later inputs win. Nil inputs are skipped.
func MergeAll(inputs []map[string]any, opts ...Option) map[string]any {
	result := map[string]any{}
	for _, input := range inputs {
		if input == nil {
			continue
		}
		result = MergeMaps(result, input, opts...)
	}
	return result
}

func (m *merger) merge(target, source any) any {
	src, srcIsObject := asObject(source)
	if srcIsObject {
		if result, ok := m.seen[identity(src)]; ok {
			return result
		}
	}

	dst, dstIsObject := asObject(target)
	if !srcIsObject || !dstIsObject {
		if KindOf(target) == KindSequence && KindOf(source) == KindSequence {
			return concat(target, source)
		}
		return source
	}

	result := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		result[k] = v
	}
	m.seen[identity(src)] = result

	keys := lo.Keys(src)
	sort.Strings(keys)
	for _, key := range keys {
		result[key] = m.mergeKey(key, dst[key], src[key])
	}

	return result
}

func (m *merger) mergeKey(key string, targetVal, sourceVal any) any {
	if m.opts.customMerge != nil {
		if v, handled := m.opts.customMerge(key, targetVal, sourceVal); handled {
			return v
		}
	}

	switch KindOf(sourceVal) {
	case KindTime:
		return cloneTime(sourceVal)
	case KindPattern:
		return clonePattern(sourceVal.(*regexp.Regexp))
	case KindMap:
		return lo.Assign(Map{}, asMap(targetVal), asMap(sourceVal))
	case KindSet:
		return lo.Assign(Set{}, asSet(targetVal), asSet(sourceVal))
	case KindSequence:
		if KindOf(targetVal) == KindSequence {
			return concat(targetVal, sourceVal)
		}
		return sourceVal
	case KindObject:
		base, ok := asObject(targetVal)
		if !ok {
			base = map[string]any{}
		}
		return m.merge(base, sourceVal)
	default:
		return sourceVal
	}
}

// asObject returns v as a non-nil map[string]any.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok && obj != nil
}

func asMap(v any) Map {
	switch m := v.(type) {
	case Map:
		return m
	case map[any]any:
		return m
	}
	return nil
}

func asSet(v any) Set {
	switch s := v.(type) {
	case Set:
		return s
	case map[any]struct{}:
		return s
	}
	return nil
}

func identity(obj map[string]any) unsafe.Pointer {
	return reflect.ValueOf(obj).UnsafePointer()
}

// concat appends the elements of two sequences into a new []any.
func concat(a, b any) []any {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	out := make([]any, 0, av.Len()+bv.Len())
	for _, v := range []reflect.Value{av, bv} {
		for i := 0; i < v.Len(); i++ {
			out = append(out, v.Index(i).Interface())
		}
	}
	return out
}

func cloneTime(v any) any {
	switch t := v.(type) {
	case *time.Time:
		if t == nil {
			return t
		}
		c := *t
		return &c
	default:
		return t
	}
}

// clonePattern copies re, keeping flags set outside the expression text such as Longest.
func clonePattern(re *regexp.Regexp) *regexp.Regexp {
	if re == nil {
		return nil
	}
	c := *re
	return &c
}
