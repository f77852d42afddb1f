package herald

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// Pattern addresses every materialized key whose name matches a regular
// expression. Patterns never create keys.
type Pattern struct {
	re   *regexp.Regexp
	ecma *regexp2.Regexp
}

// Match returns a Pattern backed by an RE2 regular expression.
// Panics if re is nil.
func Match(re *regexp.Regexp) Pattern {
	if re == nil {
		panic("herald: nil pattern")
	}
	return Pattern{re: re}
}

// MatchECMA compiles expr with ECMAScript semantics (lookaround and
// backreferences are supported) and returns a Pattern backed by it.
func MatchECMA(expr string) (Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return Pattern{}, fmt.Errorf("herald: compile pattern %q: %w", expr, err)
	}
	return Pattern{ecma: re}, nil
}

// MustMatchECMA is like MatchECMA but panics if expr cannot be compiled.
func MustMatchECMA(expr string) Pattern {
	p, err := MatchECMA(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source expression.
func (p Pattern) String() string {
	switch {
	case p.re != nil:
		return p.re.String()
	case p.ecma != nil:
		return p.ecma.String()
	}
	return ""
}

func (Pattern) isTarget() {}

// matches reports whether key matches the pattern. A zero Pattern matches
// nothing.
func (p Pattern) matches(key Key) (bool, error) {
	switch {
	case p.re != nil:
		return p.re.MatchString(string(key)), nil
	case p.ecma != nil:
		return p.ecma.MatchString(string(key))
	}
	return false, nil
}
