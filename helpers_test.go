package domcheck_test

import (
	"fmt"
	"testing"

	"github.com/cboone/domcheck"
	"github.com/cboone/domcheck/htmltree"
)

// noEnv keeps the process environment out of test sessions.
func noEnv(string) (string, bool) {
	return "", false
}

func open(t *testing.T, content any, opts ...domcheck.Option) (*htmltree.Document, *domcheck.Screen) {
	t.Helper()
	doc := htmltree.NewDocument()
	opts = append([]domcheck.Option{domcheck.WithLookupEnv(noEnv)}, opts...)
	return doc, domcheck.Open(t, doc, content, opts...)
}

// recordingT collects failures instead of failing the enclosing test.
type recordingT struct {
	testing.TB
	errors []string
	fatal  bool
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) Fatalf(format string, args ...any) {
	r.Errorf(format, args...)
	r.fatal = true
}

func (r *recordingT) FailNow() {
	r.fatal = true
}

// hookRecorder stands in for a test's cleanup registration.
type hookRecorder struct {
	fns []func()
}

func (h *hookRecorder) Cleanup(fn func()) {
	h.fns = append(h.fns, fn)
}

func (h *hookRecorder) run() {
	for _, fn := range h.fns {
		fn()
	}
}

func element(t *testing.T, l domcheck.Locator) *htmltree.Element {
	t.Helper()
	n, err := l.Element()
	if err != nil {
		t.Fatalf("element %s: %v", l, err)
	}
	return n.(*htmltree.Element)
}
