// Package domcheck provides locators and assertions for testing rendered
// HTML trees.
//
// A test mounts content through an [Environment], the render lifecycle of
// the UI layer under test, and receives a [Screen]. The screen exposes a
// root [Locator]; chaining narrows the set of matched nodes, and matchers
// assert against it. The htmltree subpackage provides an Environment over
// golang.org/x/net/html.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//		doc := htmltree.NewDocument()
//		scr := domcheck.Open(t, doc, fixture.Counter{})
//		require.NoError(t, scr.Locate("button").Click())
//		domcheck.Expect(t, scr.LocateRole("status")).ToContainText("Count: 1")
//	}
//
// Cleanup is automatic through t.Cleanup. Use [Setup] directly to get the
// [Session] and render more than once.
//
// # Locators
//
// A [Locator] is an immutable value. [Locator.Locate], [Locator.LocateRole]
// and [Locator.LocateText] search the descendants of the current matches and
// never include the matches themselves. [Locator.FilterText] is the only
// self-scoped operator: it narrows the current matches. Nothing is evaluated
// until [Locator.AllElements], [Locator.Element] or an action is called, and
// every evaluation walks the tree as it is at that moment.
//
// Own text is the concatenation of a node's direct text children with
// whitespace runs collapsed to a single space and the ends trimmed. Text
// inputs use their current value instead.
//
// # Actions
//
// [Locator.Click], [Locator.Press], [Locator.Fill] and [Locator.Blur] require
// exactly one match and dispatch a scripted event sequence inside the
// environment's [Runner]. Press and Fill accept input, textarea and select
// elements only. Only printable keys change a control's value.
//
// # Matchers
//
// [Matchers] returns the named matcher functions for registration with an
// assertion library. [Expect] wraps them for use with testify:
//
//	domcheck.Expect(t, scr).ToMatchSelector("form")
//	domcheck.Expect(t, scr.Locate("a")).Not().ToHaveClass("active")
//	domcheck.Expect(t, scr).ToHaveURLPath("/about")
//
// toHaveURLPath is retried: up to [RetryAttempts] evaluations with a delay
// that starts at [RetryBaseDelay] and doubles. All other matchers evaluate
// once.
//
// # Snapshots
//
// [Screen.MatchSnapshot] compares the rendered tree to a golden file under
// testdata/<test-name>-<hash>/. Set DOMCHECK_UPDATE=1 to create or update
// golden files. DOMCHECK_SNAPSHOT_DIR moves the base directory.
//
// # Tracing
//
// domcheck traces through github.com/npillmayer/schuko/tracing with the
// key "domcheck".
package domcheck

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'domcheck'.
func tracer() tracing.Trace {
	return tracing.Select("domcheck")
}
