package htmltree

import (
	"bytes"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/cboone/domcheck"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ContainerAttr marks container elements created by NewContainer. Its
// value is a unique id.
const ContainerAttr = "data-domcheck-root"

// Document is a single HTML document together with its URL, title and
// scheduler.
type Document struct {
	root *html.Node
	head *html.Node
	body *html.Node

	elements   map[*html.Node]*Element
	selectors  map[string]cascadia.Selector
	containers []*Element
	active     *Element

	url          *url.URL
	title        string
	initialURL   *url.URL
	initialTitle string

	scheduler
}

var (
	_ domcheck.Environment = (*Document)(nil)
	_ domcheck.Sleeper     = (*Document)(nil)
	_ domcheck.Document    = (*Document)(nil)
)

// DocumentOption configures a Document created by NewDocument.
type DocumentOption func(*Document)

// WithURL sets the initial URL. Relative references resolve against
// "/". An unparseable URL is ignored.
func WithURL(rawURL string) DocumentOption {
	return func(d *Document) {
		if u, err := d.url.Parse(rawURL); err == nil {
			d.url = u
		}
	}
}

// WithTitle sets the initial title.
func WithTitle(title string) DocumentOption {
	return func(d *Document) {
		d.title = title
	}
}

// NewDocument creates an empty document at URL "/".
func NewDocument(opts ...DocumentOption) *Document {
	root, _ := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body></body></html>"))
	d := &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		selectors: make(map[string]cascadia.Selector),
		url:       &url.URL{Path: "/"},
	}
	d.head = findElement(root, "head")
	d.body = findElement(root, "body")
	for _, o := range opts {
		o(d)
	}
	d.initialURL = d.url
	d.initialTitle = d.title
	d.syncTitle()
	return d
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// URLPath returns the path of the current URL.
func (d *Document) URLPath() string {
	if d.url.Path == "" {
		return "/"
	}
	return d.url.Path
}

// URL returns the current URL.
func (d *Document) URL() string {
	return d.url.String()
}

// Title returns the document title.
func (d *Document) Title() string {
	return d.title
}

// SetTitle changes the document title.
func (d *Document) SetTitle(title string) {
	d.title = title
	d.syncTitle()
}

// syncTitle mirrors the title into a <title> element in the head.
func (d *Document) syncTitle() {
	t := findElement(d.head, "title")
	if t == nil {
		if d.title == "" {
			return
		}
		t = &html.Node{Type: html.ElementNode, DataAtom: atom.Title, Data: "title"}
		d.head.AppendChild(t)
	}
	setText(t, d.title)
}

// Navigate resolves ref against the current URL and makes it current.
func (d *Document) Navigate(ref string) error {
	u, err := d.url.Parse(ref)
	if err != nil {
		return &Error{Op: "navigate", Err: err}
	}
	tracer().Debugf("navigate %s -> %s", d.url, u)
	d.url = u
	return nil
}

// Body returns the body element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// Containers returns the containers currently attached to the body.
func (d *Document) Containers() []*Element {
	return append([]*Element(nil), d.containers...)
}

// ActiveElement returns the element that last received focus, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

// HTML renders the whole document.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

// Act runs fn and then flushes every microtask it queued, including
// microtasks queued by those microtasks. Nested calls flush once, when
// the outermost call returns.
func (d *Document) Act(fn func() error) error {
	d.depth++
	defer func() {
		d.depth--
		if d.depth == 0 {
			d.flush()
		}
	}()
	return fn()
}

// Sleep advances the virtual clock by dur, firing due timers in order
// and flushing microtasks after each.
func (d *Document) Sleep(dur time.Duration) {
	d.advance(dur)
}

// NewContainer appends a fresh container div to the body.
func (d *Document) NewContainer() (domcheck.Node, error) {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Div,
		Data:     "div",
		Attr:     []html.Attribute{{Key: ContainerAttr, Val: uuid.NewString()}},
	}
	d.body.AppendChild(n)
	el := d.wrap(n)
	d.containers = append(d.containers, el)
	tracer().Debugf("container %s attached", el.id())
	return el, nil
}

// RemoveContainer detaches a container created by NewContainer.
func (d *Document) RemoveContainer(container domcheck.Node) error {
	el, err := d.own("remove container", container)
	if err != nil {
		return err
	}
	i := d.containerIndex(el)
	if i < 0 || el.node.Parent == nil {
		return &Error{Op: "remove container", Err: ErrDetached}
	}
	d.containers = append(d.containers[:i], d.containers[i+1:]...)
	el.node.Parent.RemoveChild(el.node)
	d.forget(el.node)
	if d.active != nil && !d.contains(d.active.node) {
		d.active = nil
	}
	tracer().Debugf("container %s removed", el.id())
	return nil
}

// ResetDocument restores the initial URL and title and discards pending
// timers and microtasks.
func (d *Document) ResetDocument() error {
	d.url = d.initialURL
	d.title = d.initialTitle
	d.syncTitle()
	d.active = nil
	d.scheduler.reset()
	return nil
}

// CreateRoot creates a render root for a container of this document.
func (d *Document) CreateRoot(container domcheck.Node) (domcheck.Root, error) {
	el, err := d.own("create root", container)
	if err != nil {
		return nil, err
	}
	return &Root{doc: d, container: el}, nil
}

// Render replaces the root's content. content is a string or Markup for
// static markup, or a Component.
func (d *Document) Render(root domcheck.Root, content any) error {
	r, ok := root.(*Root)
	if !ok || r.doc != d {
		return &Error{Op: "render", Err: ErrForeignNode}
	}
	return r.render(content)
}

// DestroyRoot unmounts the root's content.
func (d *Document) DestroyRoot(root domcheck.Root) error {
	r, ok := root.(*Root)
	if !ok || r.doc != d {
		return &Error{Op: "destroy root", Err: ErrForeignNode}
	}
	r.destroy()
	return nil
}

func (d *Document) own(op string, n domcheck.Node) (*Element, error) {
	el, ok := n.(*Element)
	if !ok || el == nil || el.doc != d {
		return nil, &Error{Op: op, Err: ErrForeignNode}
	}
	return el, nil
}

func (d *Document) containerIndex(el *Element) int {
	for i, c := range d.containers {
		if c == el {
			return i
		}
	}
	return -1
}

// wrap returns the Element for n, creating it on first use so that a
// node always maps to the same Element.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// forget drops the cached Elements of the subtree at n.
func (d *Document) forget(n *html.Node) {
	delete(d.elements, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

func (d *Document) contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

func (d *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, err
	}
	d.selectors[selector] = sel
	return sel, nil
}

// dispatch delivers ev to target and, for bubbling events, to each
// ancestor element in turn.
func (d *Document) dispatch(target *Element, ev domcheck.Event) error {
	switch ev.Type {
	case domcheck.EventFocus:
		d.active = target
	case domcheck.EventBlur:
		if d.active == target {
			d.active = nil
		}
	}
	e := &Event{
		Type:    ev.Type,
		Key:     ev.Key,
		Code:    ev.Code,
		KeyCode: ev.KeyCode,
		Target:  target,
	}
	var errs []error
	for n := target.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if el, ok := d.elements[n]; ok {
			for _, l := range el.listeners[ev.Type] {
				e.CurrentTarget = el
				if err := l(e); err != nil {
					errs = append(errs, err)
				}
			}
		}
		if !ev.Bubbles || e.stopped {
			break
		}
	}
	return errors.Join(errs...)
}
