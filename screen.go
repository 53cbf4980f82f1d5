package domcheck

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
)

// Hooks registers teardown functions. testing.TB satisfies it.
type Hooks interface {
	Cleanup(func())
}

// Session owns the containers mounted for one test and tears them down
// when the test's cleanup hook fires.
//
// A Session is not safe for concurrent use.
type Session struct {
	env      Environment
	runner   sessionRunner
	opts     options
	cleanups []func() error
	closed   bool
}

// Setup creates a Session bound to env and registers its Cleanup with
// hooks. If hooks also has an Errorf method, as testing.TB does, teardown
// errors are reported through it.
func Setup(hooks Hooks, env Environment, userOpts ...Option) (*Session, error) {
	if hooks == nil {
		return nil, ErrNotInitialized
	}
	if env == nil {
		return nil, ErrNoHost
	}

	opts := defaultOptions()
	for _, o := range userOpts {
		o(&opts)
	}
	cfg, err := LoadConfig(opts.lookup)
	if err != nil {
		return nil, err
	}
	opts.resolve(cfg)

	s := &Session{
		env:    env,
		runner: sessionRunner{env: env, clock: opts.clock, stringify: opts.stringify},
		opts:   opts,
	}
	hooks.Cleanup(func() {
		if err := s.Cleanup(); err != nil {
			tracer().Errorf("cleanup: %v", err)
			if r, ok := hooks.(interface{ Errorf(string, ...any) }); ok {
				r.Errorf("domcheck: cleanup: %v", err)
			}
		}
	})
	return s, nil
}

// Render mounts content in a fresh container and returns a Screen scoped
// to it. Every call creates an independent container; all of them are
// torn down by Cleanup.
func (s *Session) Render(content any) (*Screen, error) {
	if s == nil || s.env == nil || s.closed {
		return nil, ErrNotInitialized
	}
	container, teardown, err := mount(s.env, content)
	if err != nil {
		return nil, fmt.Errorf("domcheck: render: %w", err)
	}
	s.cleanups = append(s.cleanups, teardown)
	tracer().Debugf("rendered %T into %s", content, Stringify(container))
	return &Screen{session: s, root: NewLocator(container, s.runner)}, nil
}

// Cleanup runs the registered teardowns in the order they were added and
// closes the session. Every teardown runs even if an earlier one fails;
// the failures are joined. Calling Cleanup again is a no-op.
func (s *Session) Cleanup() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	cleanups := s.cleanups
	s.cleanups = nil

	var errs []error
	for _, fn := range cleanups {
		if err := fn(); err != nil {
			errs = append(errs, err)
		}
	}
	tracer().Debugf("cleaned up %d container(s)", len(cleanups))
	return errors.Join(errs...)
}

// Open sets up a session for t and renders content into it. Any error
// fails the test immediately.
//
// Each Open registers its own t.Cleanup, and t.Cleanup runs last in,
// first out, so screens from separate Open calls are torn down in reverse
// order. Use Setup once and call Session.Render repeatedly when teardown
// must follow render order.
func Open(t testing.TB, env Environment, content any, userOpts ...Option) *Screen {
	t.Helper()

	s, err := Setup(t, env, userOpts...)
	if err != nil {
		t.Fatalf("domcheck: open: %v", err)
	}
	scr, err := s.Render(content)
	if err != nil {
		t.Fatalf("domcheck: open: %v", err)
	}
	return scr
}

// Screen is the handle to one mounted container.
type Screen struct {
	session *Session
	root    Locator
}

// Locator returns the zero-step Locator rooted at the container.
func (scr *Screen) Locator() Locator {
	return scr.root
}

// Root returns the container node.
func (scr *Screen) Root() Node {
	return scr.root.Root()
}

// Session returns the session the screen was rendered by.
func (scr *Screen) Session() *Session {
	return scr.session
}

// Locate is shorthand for scr.Locator().Locate(selector).
func (scr *Screen) Locate(selector string) Locator {
	return scr.root.Locate(selector)
}

// LocateRole is shorthand for scr.Locator().LocateRole(role).
func (scr *Screen) LocateRole(role string) Locator {
	return scr.root.LocateRole(role)
}

// LocateText is shorthand for scr.Locator().LocateText(text).
func (scr *Screen) LocateText(text string) Locator {
	return scr.root.LocateText(text)
}

// LocateTextMatch is shorthand for scr.Locator().LocateTextMatch(re).
func (scr *Screen) LocateTextMatch(re *regexp.Regexp) Locator {
	return scr.root.LocateTextMatch(re)
}

// Debug returns an indented dump of the container's current subtree.
func (scr *Screen) Debug() string {
	return PrettyTree(scr.Root())
}

func (scr *Screen) String() string {
	return Stringify(scr.Root())
}
