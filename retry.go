package domcheck

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Retry bounds for WithRetry. Between attempts the delay starts at
// RetryBaseDelay and doubles, so a condition that never holds is
// evaluated RetryAttempts times over 5+10+20 ms.
const (
	RetryAttempts  = 4
	RetryBaseDelay = 5 * time.Millisecond
)

// WithRetry turns m into a polling matcher for conditions that only hold
// once pending asynchronous work has settled.
//
// All attempts run inside a single Act call of the receiver's runner. A
// bare Node receiver borrows its owner document as the runner when the
// document is one. Between attempts the wrapper sleeps through the
// runner when it is a Sleeper, which lets a host advance its own timers;
// otherwise it sleeps on the wall clock. Polling stops at the first attempt whose result
// satisfies the assertion, taking ctx.IsNot into account. When every
// attempt fails, the last result is returned unchanged. An error from m
// ends polling immediately.
func WithRetry(m MatcherFunc) MatcherFunc {
	return func(ctx MatcherContext, received, expected any) (Result, error) {
		loc, err := normalizeReceiver(received)
		if err != nil {
			return Result{}, err
		}
		runner := retryRunner(loc)

		var res Result
		err = runner.Act(func() error {
			delay := RetryBaseDelay
			for attempt := 1; ; attempt++ {
				var err error
				if res, err = m(ctx, received, expected); err != nil {
					return err
				}
				if res.Pass != ctx.IsNot || attempt == RetryAttempts {
					tracer().Debugf("retry: settled after %d attempt(s), pass=%t", attempt, res.Pass)
					return nil
				}
				sleep(runner, delay)
				delay *= 2
			}
		})
		if err != nil {
			return Result{}, err
		}
		return res, nil
	}
}

// retryRunner picks the runner a retry loop acts and sleeps through: the
// Locator's own, then the root's owner document, then the wall clock.
func retryRunner(loc Locator) Runner {
	if loc.runner != nil {
		return loc.runner
	}
	if root := loc.Root(); root != nil {
		if r, ok := root.OwnerDocument().(Runner); ok {
			return r
		}
	}
	return directRunner{clock: clock.New()}
}
