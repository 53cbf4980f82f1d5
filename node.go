package domcheck

import "strings"

// Node is the capability set domcheck needs from a rendered tree node.
//
// Implementations must be comparable (typically a pointer type) and must
// return the same Node value for the same underlying node, because match
// sets are deduplicated by identity.
type Node interface {
	// Tag returns the lower-case element name.
	Tag() string
	// Attributes returns the node's attributes in source order.
	Attributes() []Attribute
	// Children returns the element children in document order.
	Children() []Node
	// OwnText returns the direct text-node children, concatenated.
	// Text of descendant elements is not included.
	OwnText() string
	// Matches reports whether the node itself satisfies a CSS selector.
	Matches(selector string) (bool, error)
	// QuerySelectorAll returns all descendants satisfying a CSS selector,
	// in document order. The node itself is never part of the result.
	QuerySelectorAll(selector string) ([]Node, error)
	// DispatchEvent delivers an event to the node.
	DispatchEvent(ev Event) error
	// Value returns the current value of a form control.
	Value() string
	// SetValue replaces the current value of a form control.
	SetValue(v string)
	// OwnerDocument returns the document hosting the node, or nil for a
	// detached tree.
	OwnerDocument() Document
}

// Attribute is a single name/value pair of a Node.
type Attribute struct {
	Key   string
	Value string
}

// Document is the document-level state a tree node belongs to.
type Document interface {
	URLPath() string
	Title() string
}

// Event is a synthetic UI event dispatched by Locator actions.
type Event struct {
	Type    string
	Key     string
	Code    string
	KeyCode int
	Bubbles bool
}

// Event types dispatched by Locator actions.
const (
	EventPointerDown = "pointerdown"
	EventMouseDown   = "mousedown"
	EventPointerUp   = "pointerup"
	EventMouseUp     = "mouseup"
	EventClick       = "click"
	EventFocus       = "focus"
	EventBlur        = "blur"
	EventFocusOut    = "focusout"
	EventKeyDown     = "keydown"
	EventKeyPress    = "keypress"
	EventKeyUp       = "keyup"
	EventInput       = "input"
	EventChange      = "change"
)

// AttributeValue looks up a single attribute of n.
func AttributeValue(n Node, key string) (string, bool) {
	for _, a := range n.Attributes() {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// OwnText returns the text a node is matched against by the text
// operators: the current value for input and textarea controls, the
// direct text children otherwise. In both cases whitespace runs collapse
// to a single space and both ends are trimmed.
func OwnText(n Node) string {
	if isTextControl(n) {
		return normalizeSpace(n.Value())
	}
	return normalizeSpace(n.OwnText())
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isTextControl(n Node) bool {
	switch n.Tag() {
	case "input", "textarea":
		return true
	}
	return false
}

// acceptsInput reports whether n can receive typed text or a selection.
func acceptsInput(n Node) bool {
	return isTextControl(n) || n.Tag() == "select"
}
