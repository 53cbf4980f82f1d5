/*
Package htmltree is an in-process host for domcheck: a document over
golang.org/x/net/html with a minimal component model and a deterministic
scheduler.

A Document implements domcheck.Environment. Containers are div elements
appended to the body and marked with a data-domcheck-root attribute.
Content rendered into a container is either static markup (string or
Markup) or a Component, which sets up its markup and event handlers on
a Root.

Scheduling is virtual. Document.Schedule queues a microtask that runs
when the outermost Act returns. Document.SetTimeout registers a timer
on a virtual clock that only advances in Document.Sleep, which
domcheck's retrying matchers call between attempts. Nothing runs on a
goroutine, and a Document is not safe for concurrent use.

Selectors are compiled by github.com/andybalholm/cascadia; descendant
queries run through github.com/PuerkitoBio/goquery.
*/
package htmltree

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'domcheck.htmltree'.
func tracer() tracing.Trace {
	return tracing.Select("domcheck.htmltree")
}
