package domcheck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"
)

// Stringify formats a value for diagnostics. Nodes print as a start tag,
// Locators as their step chain, strings quoted.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case Node:
		return startTag(x)
	case Locator:
		return describeLocator(x)
	case *Locator:
		if x == nil {
			return "<nil>"
		}
		return describeLocator(*x)
	case *Screen:
		if x == nil {
			return "<nil>"
		}
		return startTag(x.Root())
	case *regexp.Regexp:
		return "/" + x.String() + "/"
	case string:
		return strconv.Quote(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprintf("%v", v)
}

func startTag(n Node) string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Tag())
	for _, a := range n.Attributes() {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(a.Value)
		b.WriteByte('"')
	}
	b.WriteByte('>')
	return b.String()
}

// PrettyTree renders the subtree at n, one element per line, with each
// element's own text as a quoted leaf. Input-like elements show their
// current value.
func PrettyTree(n Node) string {
	if n == nil {
		return "<nil>\n"
	}
	tree := treeprint.NewWithRoot(startTag(n))
	addTreeChildren(tree, n)
	return tree.String()
}

// prettyForest renders the children of n under label. It keeps
// host-generated container attributes out of golden files.
func prettyForest(label string, n Node) string {
	tree := treeprint.NewWithRoot(label)
	if n != nil {
		addTreeChildren(tree, n)
	}
	return tree.String()
}

func addTreeChildren(tree treeprint.Tree, n Node) {
	if acceptsInput(n) {
		if v := n.Value(); v != "" {
			tree.AddNode("value=" + strconv.Quote(v))
		}
	} else if text := normalizeSpace(n.OwnText()); text != "" {
		tree.AddNode(strconv.Quote(text))
	}
	for _, ch := range n.Children() {
		if len(ch.Children()) == 0 && !hasTreeLeaf(ch) {
			tree.AddNode(startTag(ch))
			continue
		}
		addTreeChildren(tree.AddBranch(startTag(ch)), ch)
	}
}

func hasTreeLeaf(n Node) bool {
	if acceptsInput(n) {
		return n.Value() != ""
	}
	return normalizeSpace(n.OwnText()) != ""
}
