package expect

import (
	"regexp"
	"strings"

	"github.com/wippyai/odin-inspect/errors"
)

const (
	PtrWildcard = "%PTR%"
	IntWildcard = "%INT%"

	ptrPattern = `0x[0-9a-fA-F]+`
	intPattern = `[0-9]+`
)

var tokenRe = regexp.MustCompile(`%PTR%|%INT%|` + ptrPattern)

// Pattern is a compiled expectation.
type Pattern struct {
	re   *regexp.Regexp
	text string
}

// Compile turns an expectation into a Pattern.
func Compile(expected string) (*Pattern, error) {
	expected = strings.TrimSpace(expected)

	var b strings.Builder
	b.WriteByte('^')
	last := 0
	for _, loc := range tokenRe.FindAllStringIndex(expected, -1) {
		b.WriteString(regexp.QuoteMeta(expected[last:loc[0]]))
		if expected[loc[0]:loc[1]] == IntWildcard {
			b.WriteString(intPattern)
		} else {
			b.WriteString(ptrPattern)
		}
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(expected[last:]))
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, errors.ParseFailed("expectation "+expected, err)
	}
	return &Pattern{re: re, text: expected}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expected string) *Pattern {
	p, err := Compile(expected)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether actual satisfies the pattern.
func (p *Pattern) Match(actual string) bool {
	return p.re.MatchString(strings.TrimSpace(actual))
}

func (p *Pattern) String() string {
	return p.text
}

// Match reports whether actual satisfies expected. A malformed expectation
// matches nothing.
func Match(expected, actual string) bool {
	p, err := Compile(expected)
	if err != nil {
		return false
	}
	return p.Match(actual)
}

// Case is one expectation for a named variable.
type Case struct {
	Variable string
	Expected string
}

// Check renders every case and collects the ones that do not match. It
// returns a *errors.MismatchError when any case fails.
func Check(cases []Case, render func(variable string) (string, error)) error {
	var failed []errors.Mismatch
	for _, c := range cases {
		actual, err := render(c.Variable)
		if err != nil {
			actual = "<" + err.Error() + ">"
		}
		if err != nil || !Match(c.Expected, actual) {
			failed = append(failed, errors.Mismatch{
				Variable: c.Variable,
				Expected: c.Expected,
				Actual:   actual,
			})
		}
	}
	if len(failed) > 0 {
		return &errors.MismatchError{Mismatches: failed, Total: len(cases)}
	}
	return nil
}
