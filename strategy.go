package domcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// A transform maps one match set to the next. Transforms never include
// the input nodes themselves unless they are self-scoped filters.
type transform func(nodes []Node) ([]Node, error)

// textPattern matches own text either by substring or by regexp.
type textPattern struct {
	substr string
	re     *regexp.Regexp
}

func (p textPattern) match(s string) bool {
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return strings.Contains(s, p.substr)
}

func (p textPattern) String() string {
	if p.re != nil {
		return "/" + p.re.String() + "/"
	}
	return p.substr
}

// selectorDescendants unions QuerySelectorAll over every input node.
func selectorDescendants(selector string) transform {
	return func(nodes []Node) ([]Node, error) {
		var out []Node
		for _, n := range nodes {
			found, err := n.QuerySelectorAll(selector)
			if err != nil {
				return nil, fmt.Errorf("domcheck: locate(%s): %w", selector, err)
			}
			out = append(out, found...)
		}
		return uniqueNodes(out), nil
	}
}

// roleDescendants keeps descendants whose explicit role attribute lists
// role as one of its whitespace-separated tokens.
func roleDescendants(role string) transform {
	return func(nodes []Node) ([]Node, error) {
		return descendantsWhere(nodes, func(n Node) bool {
			return hasRole(n, role)
		}), nil
	}
}

// textDescendants keeps descendants whose own text matches.
func textDescendants(p textPattern) transform {
	return func(nodes []Node) ([]Node, error) {
		return descendantsWhere(nodes, func(n Node) bool {
			return p.match(OwnText(n))
		}), nil
	}
}

// textSelf narrows the input set itself to nodes whose own text matches.
func textSelf(p textPattern) transform {
	return func(nodes []Node) ([]Node, error) {
		var out []Node
		for _, n := range nodes {
			if p.match(OwnText(n)) {
				out = append(out, n)
			}
		}
		return out, nil
	}
}

// firstOf narrows to the first node in traversal order.
func firstOf(nodes []Node) ([]Node, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[:1:1], nil
}

func hasRole(n Node, role string) bool {
	roles, ok := AttributeValue(n, "role")
	if !ok {
		return false
	}
	for _, r := range strings.Fields(roles) {
		if r == role {
			return true
		}
	}
	return false
}

// descendantsWhere walks the subtrees below every input node in pre-order
// and keeps the nodes satisfying pred. Input nodes are never visited.
func descendantsWhere(nodes []Node, pred func(Node) bool) []Node {
	var out []Node
	var walk func(n Node)
	walk = func(n Node) {
		for _, ch := range n.Children() {
			if pred(ch) {
				out = append(out, ch)
			}
			walk(ch)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return uniqueNodes(out)
}

// uniqueNodes drops repeated nodes, keeping the first occurrence.
func uniqueNodes(nodes []Node) []Node {
	if len(nodes) < 2 {
		return nodes
	}
	seen := make(map[Node]struct{}, len(nodes))
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
