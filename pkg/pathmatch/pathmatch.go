// Package pathmatch matches paths the way find -path does.
//
// Semantics follow fnmatch(3) without FNM_PATHNAME: no metacharacter is
// stopped by a directory separator. * matches any run of characters,
// ? matches exactly one, [...] matches one character from a set (with
// ! negation and a-z ranges), and \ makes the next character literal.
// Patterns are anchored at both ends.
//
// filepath.Match is deliberately not used: its * refuses to cross /.
package pathmatch

import "fmt"

// Match reports whether path matches pattern.
func Match(pattern, path string) (bool, error) {
	if err := checkSyntax(pattern); err != nil {
		return false, err
	}

	return match([]rune(pattern), []rune(path)), nil
}

// Matcher holds a set of validated patterns for matching many paths.
type Matcher struct {
	patterns [][]rune
}

// NewMatcher validates the patterns and builds a Matcher. Malformed
// patterns (unclosed class, trailing backslash) are rejected here, so
// MatchAny never has to report errors.
func NewMatcher(patterns []string) (*Matcher, error) {
	matcher := &Matcher{patterns: make([][]rune, 0, len(patterns))}

	for _, pattern := range patterns {
		if err := checkSyntax(pattern); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		matcher.patterns = append(matcher.patterns, []rune(pattern))
	}

	return matcher, nil
}

// MatchAny reports whether path matches at least one of the patterns.
func (m *Matcher) MatchAny(path string) bool {
	name := []rune(path)

	for _, pattern := range m.patterns {
		if match(pattern, name) {
			return true
		}
	}

	return false
}

// checkSyntax walks a pattern once and rejects constructs the matcher
// cannot interpret. match and its helpers rely on this having passed:
// every backslash has a successor and every class has a closing bracket.
func checkSyntax(pattern string) error {
	runes := []rune(pattern)

	for idx := 0; idx < len(runes); idx++ {
		switch runes[idx] {
		case '\\':
			if idx+1 >= len(runes) {
				return fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			idx++

		case '[':
			end, ok := scanClass(runes, idx)
			if !ok {
				return fmt.Errorf("unclosed character class in pattern %q", pattern)
			}

			idx = end
		}
	}

	return nil
}

// scanClass returns the index of the ] closing the class that starts at
// start. A ! right after [ negates; a ] in the first member position is a
// literal member, not the terminator.
func scanClass(runes []rune, start int) (int, bool) {
	idx := start + 1

	if idx < len(runes) && runes[idx] == '!' {
		idx++
	}

	if idx < len(runes) && runes[idx] == ']' {
		idx++
	}

	for ; idx < len(runes); idx++ {
		if runes[idx] == ']' {
			return idx, true
		}
	}

	return 0, false
}

// match runs the pattern against name with single-star backtracking: the
// position of the most recent * is remembered, and whenever the rest of
// the pattern stops matching, the * is stretched by one more rune and
// matching resumes after it. Since * crosses separators, one remembered
// star is always enough.
func match(pattern, name []rune) bool {
	var pi, ni int

	starPi, starNi := -1, 0

	for ni < len(name) {
		if pi < len(pattern) {
			if pattern[pi] == '*' {
				starPi, starNi = pi, ni
				pi++

				continue
			}

			if ok, next := matchOne(pattern, pi, name[ni]); ok {
				pi = next
				ni++

				continue
			}
		}

		if starPi < 0 {
			return false
		}

		starNi++
		pi, ni = starPi+1, starNi
	}

	// Trailing stars match the empty remainder.
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	return pi == len(pattern)
}

// matchOne matches the single-character token at pattern[pi] against r and
// returns the index of the following token.
func matchOne(pattern []rune, pi int, r rune) (bool, int) {
	switch pattern[pi] {
	case '?':
		return true, pi + 1
	case '[':
		return matchClass(pattern, pi, r)
	case '\\':
		return pattern[pi+1] == r, pi + 2
	default:
		return pattern[pi] == r, pi + 1
	}
}

// matchClass matches the class starting at pattern[pi] against r. Members
// are literals or lo-hi ranges; a - in the first or last position is a
// literal member.
func matchClass(pattern []rune, pi int, r rune) (bool, int) {
	idx := pi + 1

	negated := pattern[idx] == '!'
	if negated {
		idx++
	}

	matched := false

	for first := true; first || pattern[idx] != ']'; first = false {
		lo := pattern[idx]
		idx++

		if pattern[idx] == '-' && pattern[idx+1] != ']' {
			hi := pattern[idx+1]
			idx += 2

			if lo <= r && r <= hi {
				matched = true
			}

			continue
		}

		if lo == r {
			matched = true
		}
	}

	return matched != negated, idx + 1
}
