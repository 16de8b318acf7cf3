package merge

import (
	"strings"
)

// FromPath builds a nested object that holds value under a dot-separated path,
// e.g. FromPath("jsc.parser.syntax", "ecmascript"). An empty path returns an empty object.
func FromPath(path string, value any) map[string]any {
	if path == "" {
		return map[string]any{}
	}

	keys := strings.Split(path, ".")
	var node any = value
	for i := len(keys) - 1; i >= 0; i-- {
		node = map[string]any{keys[i]: node}
	}
	return node.(map[string]any)
}

// ValueAtPath returns the value stored under a dot-separated path.
func ValueAtPath(tree map[string]any, path string) (any, bool) {
	if path == "" {
		return tree, tree != nil
	}

	var node any = tree
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(node)
		if !ok {
			return nil, false
		}
		if node, ok = obj[key]; !ok {
			return nil, false
		}
	}
	return node, true
}
