package htmltree

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cboone/domcheck"
	"golang.org/x/net/html"
)

// Handler receives a dispatched event. A returned error is passed back to
// the caller of DispatchEvent.
type Handler func(ev *Event) error

// Event is the event object handed to a Handler.
type Event struct {
	Type    string
	Key     string
	Code    string
	KeyCode int
	// Target is the element the event was dispatched to.
	Target *Element
	// CurrentTarget is the element whose handler is running. For
	// handlers registered with Root.On it is the element that matched
	// the delegation selector.
	CurrentTarget *Element

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Element is an element node of a Document. It implements domcheck.Node.
type Element struct {
	doc       *Document
	node      *html.Node
	listeners map[string][]Handler

	value    string
	hasValue bool
}

var _ domcheck.Node = (*Element)(nil)

// Node returns the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Attributes returns the attributes in source order.
func (e *Element) Attributes() []domcheck.Attribute {
	attrs := make([]domcheck.Attribute, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + a.Key
		}
		attrs = append(attrs, domcheck.Attribute{Key: key, Value: a.Val})
	}
	return attrs
}

// Attr returns the value of an attribute.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute.
func (e *Element) SetAttr(key, value string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// RemoveAttr removes an attribute if present.
func (e *Element) RemoveAttr(key string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Children returns the element children in document order.
func (e *Element) Children() []domcheck.Node {
	var children []domcheck.Node
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, e.doc.wrap(c))
		}
	}
	return children
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// OwnText concatenates the direct text children.
func (e *Element) OwnText() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(s string) {
	e.clear()
	setText(e.node, s)
}

// Matches reports whether the element satisfies a CSS selector.
func (e *Element) Matches(selector string) (bool, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return false, &Error{Op: "matches", Err: err}
	}
	return sel.Match(e.node), nil
}

// QuerySelectorAll returns the descendants satisfying a CSS selector in
// document order. The element itself is not included.
func (e *Element) QuerySelectorAll(selector string) ([]domcheck.Node, error) {
	els, err := e.queryAll(selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]domcheck.Node, len(els))
	for i, el := range els {
		nodes[i] = el
	}
	return nodes, nil
}

func (e *Element) queryAll(selector string) ([]*Element, error) {
	sel, err := e.doc.compile(selector)
	if err != nil {
		return nil, &Error{Op: "query", Err: err}
	}
	found := goquery.NewDocumentFromNode(e.node).FindMatcher(sel)
	els := make([]*Element, len(found.Nodes))
	for i, n := range found.Nodes {
		els[i] = e.doc.wrap(n)
	}
	return els, nil
}

// DispatchEvent delivers ev to the element and, if it bubbles, to its
// ancestors.
func (e *Element) DispatchEvent(ev domcheck.Event) error {
	return e.doc.dispatch(e, ev)
}

// AddEventListener registers h for events of type typ dispatched to the
// element or, for bubbling events, to its descendants.
func (e *Element) AddEventListener(typ string, h Handler) {
	if e.listeners == nil {
		e.listeners = make(map[string][]Handler)
	}
	e.listeners[typ] = append(e.listeners[typ], h)
}

// Value returns the current value of a form control. Until SetValue is
// called it is derived from the markup: the value attribute of an input,
// the text of a textarea, or the selected option of a select.
func (e *Element) Value() string {
	if e.hasValue {
		return e.value
	}
	switch e.Tag() {
	case "textarea":
		return e.OwnText()
	case "select":
		return e.selectedOption()
	}
	v, _ := e.Attr("value")
	return v
}

// SetValue replaces the current value.
func (e *Element) SetValue(v string) {
	e.value = v
	e.hasValue = true
}

func (e *Element) selectedOption() string {
	options, err := e.queryAll("option")
	if err != nil || len(options) == 0 {
		return ""
	}
	chosen := options[0]
	for _, o := range options {
		if _, ok := o.Attr("selected"); ok {
			chosen = o
			break
		}
	}
	if v, ok := chosen.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(chosen.OwnText())
}

// OwnerDocument returns the document the element belongs to.
func (e *Element) OwnerDocument() domcheck.Document {
	return e.doc
}

// OuterHTML renders the element and its subtree.
func (e *Element) OuterHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, e.node)
	return buf.String()
}

func (e *Element) id() string {
	v, _ := e.Attr(ContainerAttr)
	return v
}

// clear removes all children and drops their cached Elements.
func (e *Element) clear() {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		e.doc.forget(c)
		c = next
	}
}

func setText(n *html.Node, s string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}
