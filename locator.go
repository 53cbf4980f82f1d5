package domcheck

import (
	"regexp"
	"strings"
)

// step is one named transformation in a Locator chain.
type step struct {
	method string
	arg    string
	apply  transform
}

func (s step) description() string {
	return s.method + "(" + s.arg + ")"
}

// Locator is an immutable, lazily evaluated query rooted at a node.
//
// Chaining methods return a new Locator and never modify the receiver.
// Nothing is evaluated until elements are requested through AllElements,
// Element or one of the actions, and no result is cached: every call
// walks the tree as it is at that moment.
type Locator struct {
	root   Node
	runner Runner
	steps  []step
}

// NewLocator creates a Locator with no steps rooted at root. Actions run
// inside runner; a nil runner calls them directly.
func NewLocator(root Node, runner Runner) Locator {
	return Locator{root: root, runner: runner}
}

// Root returns the node the Locator is rooted at.
func (l Locator) Root() Node {
	return l.root
}

func (l Locator) with(method, arg string, apply transform) Locator {
	steps := append(l.steps[:len(l.steps):len(l.steps)], step{method: method, arg: arg, apply: apply})
	return Locator{root: l.root, runner: l.runner, steps: steps}
}

// Locate narrows to all descendants of the current matches that satisfy
// a CSS selector. An empty selector returns l unchanged.
func (l Locator) Locate(selector string) Locator {
	if selector == "" {
		return l
	}
	return l.with("locate", selector, selectorDescendants(selector))
}

// LocateRole narrows to descendants whose role attribute contains role
// as one of its space-separated tokens. Implicit roles are not inferred.
func (l Locator) LocateRole(role string) Locator {
	return l.with("locateRole", role, roleDescendants(role))
}

// LocateText narrows to descendants whose own text contains text.
func (l Locator) LocateText(text string) Locator {
	p := textPattern{substr: text}
	return l.with("locateText", p.String(), textDescendants(p))
}

// LocateTextMatch narrows to descendants whose own text matches re.
func (l Locator) LocateTextMatch(re *regexp.Regexp) Locator {
	p := textPattern{re: re}
	return l.with("locateText", p.String(), textDescendants(p))
}

// FilterText keeps the current matches whose own text contains text.
// Unlike LocateText it tests the matches themselves, not their
// descendants.
func (l Locator) FilterText(text string) Locator {
	p := textPattern{substr: text}
	return l.with("filterText", p.String(), textSelf(p))
}

// FilterTextMatch keeps the current matches whose own text matches re.
func (l Locator) FilterTextMatch(re *regexp.Regexp) Locator {
	p := textPattern{re: re}
	return l.with("filterText", p.String(), textSelf(p))
}

// First narrows the matches to the first one in traversal order.
func (l Locator) First() Locator {
	return l.with("first", "", firstOf)
}

// Describe returns one "method(argument)" entry per step, in order.
func (l Locator) Describe() []string {
	d := make([]string, len(l.steps))
	for i, s := range l.steps {
		d[i] = s.description()
	}
	return d
}

// FormatDescription joins Describe with " -> ".
func (l Locator) FormatDescription() string {
	return strings.Join(l.Describe(), " -> ")
}

func (l Locator) String() string {
	return l.FormatDescription()
}

// AllElements evaluates the chain against the current tree.
func (l Locator) AllElements() ([]Node, error) {
	if l.root == nil {
		return nil, ErrNoHost
	}
	nodes := []Node{l.root}
	for _, s := range l.steps {
		var err error
		if nodes, err = s.apply(nodes); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("materialized %q: %d element(s)", l.FormatDescription(), len(nodes))
	return nodes, nil
}

// Element returns the single element the Locator matches. It fails with
// a *CardinalityError when there are no matches or more than one.
func (l Locator) Element() (Node, error) {
	return l.single("element")
}

func (l Locator) single(op string) (Node, error) {
	nodes, err := l.AllElements()
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 {
		return nil, &CardinalityError{Op: op, Count: len(nodes), Locator: describeLocator(l)}
	}
	return nodes[0], nil
}

func (l Locator) act(fn func() error) error {
	r := l.runner
	if r == nil {
		return fn()
	}
	return r.Act(fn)
}

// Click dispatches a pointer and mouse click sequence to the single
// matching element.
func (l Locator) Click() error {
	el, err := l.single("click")
	if err != nil {
		return err
	}
	return l.act(func() error {
		return dispatchAll(el,
			EventPointerDown, EventMouseDown, EventFocus,
			EventPointerUp, EventMouseUp, EventClick)
	})
}

// Press types a single key into the matching input, textarea or select.
// Printable keys append their character to the value; control keys
// only produce keyboard events.
func (l Locator) Press(key Key) error {
	el, err := l.single("press")
	if err != nil {
		return err
	}
	if !acceptsInput(el) {
		return &CapabilityError{Op: "press", Tag: el.Tag(), Err: ErrUnsupportedTag}
	}
	def, ok := lookupKey(key)
	if !ok {
		return &CapabilityError{Op: "press", Tag: el.Tag(), Key: key, Err: ErrUnknownKey}
	}
	return l.act(func() error {
		if err := el.DispatchEvent(keyEvent(EventKeyDown, def)); err != nil {
			return err
		}
		if def.Printable() {
			if err := el.DispatchEvent(keyEvent(EventKeyPress, def)); err != nil {
				return err
			}
			el.SetValue(el.Value() + def.Text)
			if err := el.DispatchEvent(Event{Type: EventInput, Bubbles: true}); err != nil {
				return err
			}
		}
		return el.DispatchEvent(keyEvent(EventKeyUp, def))
	})
}

// Fill replaces the value of the matching input, textarea or select.
func (l Locator) Fill(value string) error {
	el, err := l.single("fill")
	if err != nil {
		return err
	}
	if !acceptsInput(el) {
		return &CapabilityError{Op: "fill", Tag: el.Tag(), Err: ErrUnsupportedTag}
	}
	return l.act(func() error {
		if err := el.DispatchEvent(Event{Type: EventFocus}); err != nil {
			return err
		}
		el.SetValue(value)
		return dispatchAll(el, EventInput, EventChange)
	})
}

// Blur moves focus away from the matching element.
func (l Locator) Blur() error {
	el, err := l.single("blur")
	if err != nil {
		return err
	}
	return l.act(func() error {
		if err := el.DispatchEvent(Event{Type: EventBlur}); err != nil {
			return err
		}
		return el.DispatchEvent(Event{Type: EventFocusOut, Bubbles: true})
	})
}

func keyEvent(typ string, def keyDefinition) Event {
	return Event{Type: typ, Key: def.Key, Code: def.Code, KeyCode: def.KeyCode, Bubbles: true}
}

// dispatchAll sends bubbling events of the given types in order and stops
// at the first error.
func dispatchAll(n Node, types ...string) error {
	for _, typ := range types {
		if err := n.DispatchEvent(Event{Type: typ, Bubbles: typ != EventFocus}); err != nil {
			return err
		}
	}
	return nil
}

// describeLocator names a Locator in diagnostics: its step chain, or the
// root node itself when there are no steps.
func describeLocator(l Locator) string {
	if len(l.steps) == 0 {
		if l.root == nil {
			return "<nil>"
		}
		return Stringify(l.root)
	}
	return l.FormatDescription()
}
