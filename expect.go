package domcheck

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Expectation applies registered matchers to one receiver. Failed
// assertions are reported with assert.Fail and do not stop the test;
// misuse such as an unsupported receiver stops it through require.
type Expectation struct {
	t         testing.TB
	received  any
	not       bool
	stringify func(any) string
}

// Expect starts an assertion on received, which may be a *Screen, a
// Locator or a Node.
func Expect(t testing.TB, received any) *Expectation {
	return &Expectation{t: t, received: received, stringify: stringifyFor(received)}
}

// stringifyFor returns the formatter of the session received belongs to,
// or Stringify.
func stringifyFor(received any) func(any) string {
	var runner Runner
	switch r := received.(type) {
	case *Screen:
		if r != nil {
			runner = r.root.runner
		}
	case Locator:
		runner = r.runner
	case *Locator:
		if r != nil {
			runner = r.runner
		}
	}
	if sr, ok := runner.(sessionRunner); ok && sr.stringify != nil {
		return sr.stringify
	}
	return Stringify
}

// Not returns a negated copy of e.
func (e *Expectation) Not() *Expectation {
	n := *e
	n.not = !n.not
	return &n
}

// To evaluates the matcher registered under name and reports whether the
// assertion held.
func (e *Expectation) To(name string, expected any) bool {
	e.t.Helper()

	m, ok := registry[name]
	if !ok {
		require.FailNow(e.t, fmt.Sprintf("domcheck: expect: unknown matcher %q", name))
		return false
	}
	res, err := m(MatcherContext{IsNot: e.not, Stringify: e.stringify}, e.received, expected)
	require.NoError(e.t, err)
	if err != nil {
		return false
	}
	if res.Pass == e.not {
		return assert.Fail(e.t, res.Message())
	}
	return true
}

// ToMatchSelector asserts that the receiver, or a descendant, matches
// selector.
func (e *Expectation) ToMatchSelector(selector string) bool {
	e.t.Helper()
	return e.To(NameMatchSelector, selector)
}

// ToHaveClass asserts that the receiver, or a descendant, carries every
// space-separated class in classes.
func (e *Expectation) ToHaveClass(classes string) bool {
	e.t.Helper()
	return e.To(NameHaveClass, classes)
}

// ToContainText asserts that the own text of a receiver match contains
// text.
func (e *Expectation) ToContainText(text string) bool {
	e.t.Helper()
	return e.To(NameContainText, text)
}

// ToContainTextMatch asserts that the own text of a receiver match
// matches re.
func (e *Expectation) ToContainTextMatch(re *regexp.Regexp) bool {
	e.t.Helper()
	return e.To(NameContainText, re)
}

// ToHaveURLPath asserts the URL path of the receiver's document, polling
// while navigation settles.
func (e *Expectation) ToHaveURLPath(path string) bool {
	e.t.Helper()
	return e.To(NameHaveURLPath, path)
}

// ToHaveTitle asserts the title of the receiver's document.
func (e *Expectation) ToHaveTitle(title string) bool {
	e.t.Helper()
	return e.To(NameHaveTitle, title)
}

// ToBeInTheDocument asserts that the receiver matches at least one node.
func (e *Expectation) ToBeInTheDocument() bool {
	e.t.Helper()
	return e.To(NameBeInTheDocument, nil)
}
