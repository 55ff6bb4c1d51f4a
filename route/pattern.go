package route

import (
	"fmt"
	"net/url"
	"regexp"
)

var (
	namedPlaceholder    = regexp.MustCompile(`([:*])(\w+)`)
	wildcardPlaceholder = regexp.MustCompile(`\*`)
)

const (
	segmentExpr  = `([^/]+)`
	wildcardExpr = `(?:.*)`
	trailingExpr = `(?:/$|$)`
)

// A Pattern is the source a [Matcher] compiles from.
// It is one of [Template] or [Expr].
type Pattern interface {
	compile() (Matcher, error)
	String() string
}

// A Template is a path pattern with :name, *name and * placeholders.
type Template string

func (t Template) String() string { return string(t) }

func (t Template) compile() (Matcher, error) {
	names := make([]string, 0)
	expr := namedPlaceholder.ReplaceAllStringFunc(string(t), func(m string) string {
		names = append(names, m[1:])
		return segmentExpr
	})
	expr = wildcardPlaceholder.ReplaceAllString(expr, wildcardExpr) + trailingExpr

	re, err := regexp.Compile(expr)
	if err != nil {
		return Matcher{}, fmt.Errorf("%w: %q: %s", ErrBadPattern, t, err)
	}

	if n := re.NumSubexp(); n != len(names) {
		return Matcher{}, fmt.Errorf("%w: %q captures %d groups for %d parameters", ErrBadPattern, t, n, len(names))
	}

	return Matcher{Names: names, Expr: re}, nil
}

// An Expr is a precompiled pattern.
type Expr struct {
	re *regexp.Regexp
}

// Regexp wraps re as a Pattern.
func Regexp(re *regexp.Regexp) Expr { return Expr{re: re} }

func (e Expr) String() string {
	if e.re == nil {
		return ""
	}
	return e.re.String()
}

func (e Expr) compile() (Matcher, error) {
	if e.re == nil {
		return Matcher{}, fmt.Errorf("%w: nil regexp", ErrBadPattern)
	}

	names := make([]string, 0)
	for i, name := range e.re.SubexpNames()[1:] {
		if name == "" {
			return Matcher{}, fmt.Errorf("%w: %q: group %d is unnamed", ErrBadPattern, e.re, i+1)
		}
		names = append(names, name)
	}

	return Matcher{Names: names, Expr: e.re}, nil
}

// Compile turns p into a Matcher.
// Compiling equal patterns yields Matchers with identical behavior.
func Compile(p Pattern) (Matcher, error) {
	if p == nil {
		return Matcher{}, fmt.Errorf("%w: nil pattern", ErrBadPattern)
	}

	return p.compile()
}

// A Matcher pairs a compiled expression with the names of the parameters it captures,
// in the order they appear.
type Matcher struct {
	Names []string
	Expr  *regexp.Regexp
}

// Match reports whether path matches m.
// If it does, Match returns the percent-decoded parameters captured from path.
// Groups not participating in the match are left out.
func (m Matcher) Match(path string) (map[string]string, bool) {
	if m.Expr == nil {
		return nil, false
	}

	idx := m.Expr.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}

	params := make(map[string]string, len(m.Names))
	for i, name := range m.Names {
		if 2*(i+1)+1 >= len(idx) {
			break
		}

		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		if start < 0 {
			continue
		}

		params[name] = decodeParam(path[start:end])
	}

	return params, true
}

// decodeParam percent-decodes val, keeping it raw if it is not validly encoded.
func decodeParam(val string) string {
	decoded, err := url.PathUnescape(val)
	if err != nil {
		return val
	}

	return decoded
}
