package domcheck

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
)

// Runner executes fn in a controlled environment. By the time Act
// returns, all work fn caused in the host (scheduled renders, effects,
// event handlers) has been flushed.
type Runner interface {
	Act(fn func() error) error
}

// Sleeper is implemented by runners that can let pending timed work
// progress while a retrying matcher waits between attempts.
type Sleeper interface {
	Sleep(d time.Duration)
}

// Root is an opaque render root created by a Renderer.
type Root interface{}

// Host owns the document that containers are attached to.
type Host interface {
	// NewContainer creates a fresh container node attached to the document.
	NewContainer() (Node, error)
	// RemoveContainer detaches a container from the document.
	RemoveContainer(container Node) error
	// ResetDocument restores document-level state such as the title.
	ResetDocument() error
}

// Renderer is the render lifecycle of the UI layer under test.
type Renderer interface {
	CreateRoot(container Node) (Root, error)
	Render(root Root, content any) error
	DestroyRoot(root Root) error
}

// Environment bundles everything a Session drives.
type Environment interface {
	Runner
	Host
	Renderer
}

// directRunner runs callbacks without any host involvement. It backs
// Locators created without a Runner.
type directRunner struct {
	clock clock.Clock
}

func (r directRunner) Act(fn func() error) error {
	return fn()
}

func (r directRunner) Sleep(d time.Duration) {
	r.clock.Sleep(d)
}

// sessionRunner routes Act to the environment and sleeps through the
// environment when it can, through the session clock otherwise. It also
// carries the session's value formatter to Locators.
type sessionRunner struct {
	env       Environment
	clock     clock.Clock
	stringify func(any) string
}

func (r sessionRunner) Act(fn func() error) error {
	return r.env.Act(fn)
}

func (r sessionRunner) Sleep(d time.Duration) {
	if s, ok := r.env.(Sleeper); ok {
		s.Sleep(d)
		return
	}
	r.clock.Sleep(d)
}

// sleep waits for d through r if possible.
func sleep(r Runner, d time.Duration) {
	if s, ok := r.(Sleeper); ok {
		s.Sleep(d)
		return
	}
	clock.New().Sleep(d)
}

// mount creates a root in a fresh container and renders content into it.
// The returned teardown destroys the root, detaches the container and
// resets the document, in that order, inside a single Act.
func mount(env Environment, content any) (Node, func() error, error) {
	container, err := env.NewContainer()
	if err != nil {
		return nil, nil, err
	}
	if container == nil {
		return nil, nil, ErrNoHost
	}
	var root Root
	err = env.Act(func() error {
		var err error
		if root, err = env.CreateRoot(container); err != nil {
			return err
		}
		return env.Render(root, content)
	})
	teardown := func() error {
		return env.Act(func() error {
			var errs []error
			if root != nil {
				errs = append(errs, env.DestroyRoot(root))
			}
			errs = append(errs, env.RemoveContainer(container), env.ResetDocument())
			return errors.Join(errs...)
		})
	}
	if err != nil {
		_ = teardown()
		return nil, nil, err
	}
	return container, teardown, nil
}
