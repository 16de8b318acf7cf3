// Package glob compiles glob patterns into case-insensitive, anchored
// regular expressions.
//
// Supported syntax:
//   - '*' matches any sequence of non-separator characters, including none.
//   - '?' matches exactly one non-separator character.
//   - '**/' at the start of a pattern and '/**/' inside it match zero or more
//     whole path segments.
//   - '/**' at the end of a pattern matches the directory and everything
//     below it; a bare '**' matches everything.
//
// A '**' that is not a whole path segment (for example "a**b") behaves like
// two single wildcards. Every other character, including regular expression
// metacharacters and brackets, is matched literally.
package glob

import (
	"regexp"
	"strings"
)

const (
	separator = '/'

	anySegmentChars = `[^/]*`
	oneSegmentChar  = `[^/]`
	anySegments     = `(?:[^/]*/)*`
	anything        = `.*`
	anythingBelow   = `(?:/.*)?`
)

// Compile converts pattern into a regular expression that matches whole strings.
// It never fails: every string is a valid pattern.
func Compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(Translate(pattern))
}

// Translate returns the regular expression source for pattern.
func Translate(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?i)^`)

	// "dir/**" also matches "dir" itself.
	tail := ""
	if strings.HasSuffix(pattern, "/**") {
		pattern, tail = pattern[:len(pattern)-3], anythingBelow
	}

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch {
		case c == '*' && i+1 < len(pattern) && pattern[i+1] == '*':
			i = writeDoubleStar(&b, pattern, i)
		case c == '*':
			b.WriteString(anySegmentChars)
			i++
		case c == '?':
			b.WriteString(oneSegmentChar)
			i++
		default:
			// Copy the literal run up to the next wildcard in one go.
			j := i + 1
			for j < len(pattern) && pattern[j] != '*' && pattern[j] != '?' {
				j++
			}
			b.WriteString(regexp.QuoteMeta(pattern[i:j]))
			i = j
		}
	}

	b.WriteString(tail)
	b.WriteString(`$`)
	return b.String()
}

// writeDoubleStar writes the expansion of the "**" starting at i and returns
// the index of the first unconsumed byte.
func writeDoubleStar(b *strings.Builder, pattern string, i int) int {
	end := i + 2
	startsSegment := i == 0 || pattern[i-1] == separator
	endsPattern := end == len(pattern)
	endsSegment := endsPattern || pattern[end] == separator

	switch {
	case !startsSegment || !endsSegment:
		b.WriteString(anySegmentChars + anySegmentChars)
		return end
	case endsPattern:
		b.WriteString(anything)
		return end
	default:
		// "**/" or "dir/**/": consume the trailing separator too.
		b.WriteString(anySegments)
		return end + 1
	}
}

// Match reports whether name matches pattern.
func Match(pattern, name string) bool {
	return Compile(pattern).MatchString(name)
}

// MatchAny reports whether name matches at least one of patterns.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if Match(p, name) {
			return true
		}
	}
	return false
}
