package domcheck

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher names as registered by Matchers.
const (
	NameMatchSelector   = "toMatchSelector"
	NameHaveClass       = "toHaveClass"
	NameContainText     = "toContainText"
	NameHaveURLPath     = "toHaveURLPath"
	NameHaveTitle       = "toHaveTitle"
	NameBeInTheDocument = "toBeInTheDocument"
)

// MatcherContext carries the state an assertion library hands to a
// matcher.
type MatcherContext struct {
	// IsNot is set when the assertion is negated.
	IsNot bool
	// Stringify formats values for the failure message. Nil means
	// the package-level Stringify.
	Stringify func(any) string
}

func (c MatcherContext) format(v any) string {
	if c.Stringify == nil {
		return Stringify(v)
	}
	return c.Stringify(v)
}

// Result is the outcome of one matcher evaluation. Pass reports whether
// the predicate held, regardless of negation. Message builds the failure
// text lazily and is framed for the negation state it was evaluated in.
type Result struct {
	Pass    bool
	Message func() string
}

// A MatcherFunc evaluates one named predicate against a receiver. The
// receiver may be a *Screen, a Locator, a *Locator or a Node. Errors are
// reserved for misuse (unsupported receiver, invalid expected value,
// missing host) and are never retried.
type MatcherFunc func(ctx MatcherContext, received, expected any) (Result, error)

// Matchers returns a fresh name to matcher mapping for registration with
// an assertion library. toHaveURLPath is wrapped with WithRetry.
func Matchers() map[string]MatcherFunc {
	return map[string]MatcherFunc{
		NameMatchSelector:   matchSelector,
		NameHaveClass:       haveClass,
		NameContainText:     containText,
		NameHaveURLPath:     WithRetry(haveURLPath),
		NameHaveTitle:       haveTitle,
		NameBeInTheDocument: beInTheDocument,
	}
}

var registry = Matchers()

// normalizeReceiver turns a matcher receiver into a Locator.
func normalizeReceiver(received any) (Locator, error) {
	switch r := received.(type) {
	case *Screen:
		if r != nil {
			return r.Locator(), nil
		}
	case Locator:
		return r, nil
	case *Locator:
		if r != nil {
			return *r, nil
		}
	case Node:
		return NewLocator(r, nil), nil
	}
	return Locator{}, fmt.Errorf("%w: %T", ErrUnsupportedReceiver, received)
}

func matchSelector(ctx MatcherContext, received, expected any) (Result, error) {
	selector, ok := expected.(string)
	if !ok || selector == "" {
		return Result{}, fmt.Errorf("%w: %s wants a non-empty selector, got %T", ErrInvalidExpectation, NameMatchSelector, expected)
	}
	return evalSelector(ctx, NameMatchSelector, "to match selector", received, selector, selector)
}

func haveClass(ctx MatcherContext, received, expected any) (Result, error) {
	classes, ok := expected.(string)
	if !ok || len(strings.Fields(classes)) == 0 {
		return Result{}, fmt.Errorf("%w: %s wants class names, got %#v", ErrInvalidExpectation, NameHaveClass, expected)
	}
	selector := "." + strings.Join(strings.Fields(classes), ".")
	return evalSelector(ctx, NameHaveClass, "to have class", received, classes, selector)
}

// evalSelector passes when the receiver's matches themselves, or any of
// their descendants, satisfy selector.
func evalSelector(ctx MatcherContext, name, phrase string, received, expected any, selector string) (Result, error) {
	loc, err := normalizeReceiver(received)
	if err != nil {
		return Result{}, err
	}
	self, err := loc.AllElements()
	if err != nil {
		return Result{}, err
	}
	var matched []Node
	for _, n := range self {
		ok, err := n.Matches(selector)
		if err != nil {
			return Result{}, fmt.Errorf("domcheck: %s: %w", name, err)
		}
		if ok {
			matched = append(matched, n)
		}
	}
	below, err := loc.Locate(selector).AllElements()
	if err != nil {
		return Result{}, err
	}
	matched = uniqueNodes(append(matched, below...))
	return elementsResult(ctx, name, phrase, loc, expected, matched), nil
}

func containText(ctx MatcherContext, received, expected any) (Result, error) {
	loc, err := normalizeReceiver(received)
	if err != nil {
		return Result{}, err
	}
	var filtered Locator
	switch x := expected.(type) {
	case string:
		filtered = loc.FilterText(x)
	case *regexp.Regexp:
		if x == nil {
			return Result{}, fmt.Errorf("%w: %s wants a string or regexp, got nil", ErrInvalidExpectation, NameContainText)
		}
		filtered = loc.FilterTextMatch(x)
	default:
		return Result{}, fmt.Errorf("%w: %s wants a string or regexp, got %T", ErrInvalidExpectation, NameContainText, expected)
	}
	matched, err := filtered.AllElements()
	if err != nil {
		return Result{}, err
	}
	return elementsResult(ctx, NameContainText, "to contain text", loc, expected, matched), nil
}

func beInTheDocument(ctx MatcherContext, received, _ any) (Result, error) {
	loc, err := normalizeReceiver(received)
	if err != nil {
		return Result{}, err
	}
	matched, err := loc.AllElements()
	if err != nil {
		return Result{}, err
	}
	return elementsResult(ctx, NameBeInTheDocument, "to be in the document", loc, noExpected, matched), nil
}

func haveURLPath(ctx MatcherContext, received, expected any) (Result, error) {
	return evalDocument(ctx, NameHaveURLPath, "to have URL path", received, expected, Document.URLPath)
}

func haveTitle(ctx MatcherContext, received, expected any) (Result, error) {
	return evalDocument(ctx, NameHaveTitle, "to have title", received, expected, Document.Title)
}

// evalDocument compares a property of the receiver's owning document to
// expected.
func evalDocument(ctx MatcherContext, name, phrase string, received, expected any, get func(Document) string) (Result, error) {
	want, ok := expected.(string)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s wants a string, got %T", ErrInvalidExpectation, name, expected)
	}
	loc, err := normalizeReceiver(received)
	if err != nil {
		return Result{}, err
	}
	if loc.Root() == nil {
		return Result{}, ErrNoHost
	}
	doc := loc.Root().OwnerDocument()
	if doc == nil {
		return Result{}, fmt.Errorf("domcheck: %s: %w", name, ErrNoHost)
	}
	got := get(doc)
	return Result{
		Pass: got == want,
		Message: func() string {
			var b strings.Builder
			writeHeader(&b, ctx, name, phrase, loc, want)
			fmt.Fprintf(&b, "\n    received: %s", ctx.format(got))
			return b.String()
		},
	}, nil
}

type noExpectedValue struct{}

// noExpected marks matchers that take no expected argument.
var noExpected = noExpectedValue{}

func writeHeader(b *strings.Builder, ctx MatcherContext, name, phrase string, loc Locator, expected any) {
	not := ""
	if ctx.IsNot {
		not = "not "
	}
	fmt.Fprintf(b, "domcheck: %s: expected %s %s%s", name, ctx.format(loc), not, phrase)
	if expected != noExpected {
		b.WriteByte(' ')
		b.WriteString(ctx.format(expected))
	}
}

// elementsResult builds a result that passes when matched is non-empty.
// The message lists the matched elements, or dumps the receiver's root
// when there are none.
func elementsResult(ctx MatcherContext, name, phrase string, loc Locator, expected any, matched []Node) Result {
	return Result{
		Pass: len(matched) > 0,
		Message: func() string {
			var b strings.Builder
			writeHeader(&b, ctx, name, phrase, loc, expected)
			b.WriteString("\n    received elements:")
			if len(matched) == 0 {
				b.WriteString("\n      (no elements)")
				if root := loc.Root(); root != nil {
					b.WriteString("\n    tree:")
					for _, line := range strings.Split(strings.TrimRight(PrettyTree(root), "\n"), "\n") {
						b.WriteString("\n      ")
						b.WriteString(line)
					}
				}
				return b.String()
			}
			for _, n := range matched {
				b.WriteString("\n      ")
				b.WriteString(ctx.format(n))
			}
			return b.String()
		},
	}
}
