package htmltree

import (
	"errors"
	"fmt"
)

var (
	// ErrForeignNode is returned for a node or root created by another
	// Document.
	ErrForeignNode = errors.New("node belongs to another document")
	// ErrUnsupportedContent is returned by Render for content that is
	// neither markup nor a Component.
	ErrUnsupportedContent = errors.New("unsupported content")
	// ErrNotFound is returned by Root.Query when nothing matches.
	ErrNotFound = errors.New("no matching element")
	// ErrDestroyed is returned when rendering into a destroyed root.
	ErrDestroyed = errors.New("root already destroyed")
	// ErrDetached is returned when removing a container that is not
	// attached to the document.
	ErrDetached = errors.New("container is not attached")
)

// Error represents a failed document operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("htmltree: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
