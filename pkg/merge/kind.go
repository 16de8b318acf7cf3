package merge

import (
	"reflect"
	"regexp"
	"time"
)

// Kind is the merge strategy class of a value.
type Kind int

const (
	// KindScalar is any value the engine does not look into. The source replaces the target.
	KindScalar Kind = iota
	// KindSequence is a slice or array. Sequences concatenate, target first.
	KindSequence
	// KindObject is a plain keyed container (map[string]any). Objects merge key by key.
	KindObject
	// KindTime is a time.Time or *time.Time. It is copied, never aliased.
	KindTime
	// KindPattern is a *regexp.Regexp. It is recompiled, never aliased.
	KindPattern
	// KindMap is an associative Map. Source entries win on key collision.
	KindMap
	// KindSet is a Set. Elements are unioned.
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindObject:
		return "object"
	case KindTime:
		return "time"
	case KindPattern:
		return "pattern"
	case KindMap:
		return "map"
	case KindSet:
		return "set"
	default:
		return "scalar"
	}
}

// Map is a key-set mapping with arbitrary comparable keys.
type Map map[any]any

// Set is a collection of unique comparable elements.
type Set map[any]struct{}

// NewSet returns a Set holding elems.
func NewSet(elems ...any) Set {
	s := make(Set, len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether e is in the set.
func (s Set) Has(e any) bool {
	_, ok := s[e]
	return ok
}

// KindOf classifies v.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindScalar
	case map[string]any:
		return KindObject
	case Map, map[any]any:
		return KindMap
	case Set, map[any]struct{}:
		return KindSet
	case time.Time, *time.Time:
		return KindTime
	case *regexp.Regexp:
		return KindPattern
	case []any:
		return KindSequence
	case []byte:
		return KindScalar
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return KindSequence
	default:
		return KindScalar
	}
}
