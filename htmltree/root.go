package htmltree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Markup is static HTML rendered into a container as is.
type Markup string

// Component sets up the content of a Root: its markup, event handlers
// and unmount hooks.
type Component interface {
	Mount(r *Root) error
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(r *Root) error

// Mount calls f(r).
func (f ComponentFunc) Mount(r *Root) error {
	return f(r)
}

// Root is a render root bound to one container element.
type Root struct {
	doc       *Document
	container *Element
	unmounts  []func()
	destroyed bool
}

// Document returns the document the root lives in.
func (r *Root) Document() *Document {
	return r.doc
}

// Container returns the container element.
func (r *Root) Container() *Element {
	return r.container
}

// SetHTML replaces the container's children with the parsed markup.
func (r *Root) SetHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), r.container.node)
	if err != nil {
		return &Error{Op: "set html", Err: err}
	}
	r.container.clear()
	for _, n := range nodes {
		r.container.node.AppendChild(n)
	}
	return nil
}

// Query returns the first element in the container matching selector.
func (r *Root) Query(selector string) (*Element, error) {
	els, err := r.container.queryAll(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, &Error{Op: "query", Err: fmt.Errorf("%w: %s", ErrNotFound, selector)}
	}
	return els[0], nil
}

// QueryAll returns every element in the container matching selector.
func (r *Root) QueryAll(selector string) ([]*Element, error) {
	return r.container.queryAll(selector)
}

// On registers a delegated handler on the container. For each event of
// type typ dispatched inside the container, h runs once with
// CurrentTarget set to the closest ancestor-or-self of the target that
// matches selector. An empty selector matches the container itself.
func (r *Root) On(typ, selector string, h Handler) error {
	if selector == "" {
		r.container.AddEventListener(typ, h)
		return nil
	}
	sel, err := r.doc.compile(selector)
	if err != nil {
		return &Error{Op: "on", Err: err}
	}
	r.container.AddEventListener(typ, func(ev *Event) error {
		for n := ev.Target.node; n != nil && n != r.container.node; n = n.Parent {
			if sel.Match(n) {
				ev.CurrentTarget = r.doc.wrap(n)
				return h(ev)
			}
		}
		return nil
	})
	return nil
}

// OnUnmount registers fn to run when the content is replaced or the
// root is destroyed.
func (r *Root) OnUnmount(fn func()) {
	r.unmounts = append(r.unmounts, fn)
}

func (r *Root) render(content any) error {
	if r.destroyed {
		return &Error{Op: "render", Err: ErrDestroyed}
	}
	r.unmount()
	switch c := content.(type) {
	case string:
		return r.SetHTML(c)
	case Markup:
		return r.SetHTML(string(c))
	case Component:
		if err := c.Mount(r); err != nil {
			return &Error{Op: "render", Err: err}
		}
		return nil
	}
	return &Error{Op: "render", Err: fmt.Errorf("%w: %T", ErrUnsupportedContent, content)}
}

func (r *Root) destroy() {
	if r.destroyed {
		return
	}
	r.unmount()
	r.destroyed = true
}

// unmount runs the unmount hooks and empties the container.
func (r *Root) unmount() {
	unmounts := r.unmounts
	r.unmounts = nil
	for _, fn := range unmounts {
		fn()
	}
	r.container.listeners = nil
	r.container.clear()
}
