package domcheck

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrNotInitialized is returned when an operation runs outside a
	// session created by Setup, or after that session was cleaned up.
	ErrNotInitialized = errors.New("domcheck: session not initialized; call Setup with a cleanup hook first")
	// ErrNoHost is returned when no host tree is available.
	ErrNoHost = errors.New("domcheck: no host tree available")
)

// Cardinality errors, matched through errors.Is on a *CardinalityError.
var (
	ErrNoElements       = errors.New("no elements found")
	ErrMultipleElements = errors.New("multiple elements found")
)

// Capability errors, matched through errors.Is on a *CapabilityError.
var (
	ErrUnsupportedTag = errors.New("cannot operate on tag")
	ErrUnknownKey     = errors.New("unknown key")
)

// Matcher argument errors.
var (
	ErrUnsupportedReceiver = errors.New("domcheck: unsupported receiver")
	ErrInvalidExpectation  = errors.New("domcheck: invalid expected value")
)

// CardinalityError reports that a single-element operation observed zero
// or more than one match.
type CardinalityError struct {
	Op      string
	Count   int
	Locator string
}

func (e *CardinalityError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("domcheck: %s: no elements found for %s", e.Op, e.Locator)
	}
	return fmt.Sprintf("domcheck: %s: multiple elements found (%d) for %s", e.Op, e.Count, e.Locator)
}

func (e *CardinalityError) Is(target error) bool {
	switch target {
	case ErrNoElements:
		return e.Count == 0
	case ErrMultipleElements:
		return e.Count > 1
	}
	return false
}

// CapabilityError reports an action against a node that cannot perform
// it, or an unknown key name. Err is ErrUnsupportedTag or ErrUnknownKey.
type CapabilityError struct {
	Op  string
	Tag string
	Key Key
	Err error
}

func (e *CapabilityError) Error() string {
	if errors.Is(e.Err, ErrUnknownKey) {
		return fmt.Sprintf("domcheck: %s: unknown key %q", e.Op, string(e.Key))
	}
	return fmt.Sprintf("domcheck: %s: cannot operate on tag <%s>", e.Op, e.Tag)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}
