package domcheck_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboone/domcheck"
	"github.com/cboone/domcheck/internal/fixture"
)

// counting returns a matcher that passes from attempt passAt on (never
// when passAt is 0) and the number of times it was evaluated.
func counting(passAt int) (domcheck.MatcherFunc, *int) {
	calls := new(int)
	return func(domcheck.MatcherContext, any, any) (domcheck.Result, error) {
		*calls++
		n := *calls
		return domcheck.Result{
			Pass:    passAt > 0 && n >= passAt,
			Message: func() string { return fmt.Sprintf("attempt %d", n) },
		}, nil
	}, calls
}

func TestRetryExhaustion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "domcheck")
	defer teardown()

	doc, scr := open(t, `<p>x</p>`)
	m, calls := counting(0)

	res, err := domcheck.WithRetry(m)(domcheck.MatcherContext{}, scr, nil)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, domcheck.RetryAttempts, *calls)
	assert.Equal(t, "attempt 4", res.Message())
	assert.Equal(t, 35*time.Millisecond, doc.Now(), "delays of 5, 10 and 20ms")
}

func TestRetryStopsAtFirstSuccess(t *testing.T) {
	doc, scr := open(t, `<p>x</p>`)
	m, calls := counting(2)

	res, err := domcheck.WithRetry(m)(domcheck.MatcherContext{}, scr, nil)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, 2, *calls)
	assert.Equal(t, 5*time.Millisecond, doc.Now())
}

func TestRetryHonorsNegation(t *testing.T) {
	_, scr := open(t, `<p>x</p>`)

	m, calls := counting(0)
	res, err := domcheck.WithRetry(m)(domcheck.MatcherContext{IsNot: true}, scr, nil)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, 1, *calls)

	m, calls = counting(1)
	res, err = domcheck.WithRetry(m)(domcheck.MatcherContext{IsNot: true}, scr, nil)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, domcheck.RetryAttempts, *calls)
}

func TestRetryAbortsOnError(t *testing.T) {
	_, scr := open(t, `<p>x</p>`)
	boom := errors.New("boom")
	calls := 0
	m := func(domcheck.MatcherContext, any, any) (domcheck.Result, error) {
		calls++
		return domcheck.Result{}, boom
	}

	_, err := domcheck.WithRetry(m)(domcheck.MatcherContext{}, scr, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestRetryWithoutHost(t *testing.T) {
	m, calls := counting(0)
	start := time.Now()
	res, err := domcheck.WithRetry(m)(domcheck.MatcherContext{}, detachedNode{}, nil)
	require.NoError(t, err)
	assert.False(t, res.Pass)
	assert.Equal(t, domcheck.RetryAttempts, *calls)
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestRetryOnNodeUsesOwnerDocument(t *testing.T) {
	doc, scr := open(t, `<p>x</p>`)
	n, err := scr.Locate("p").Element()
	require.NoError(t, err)

	m, calls := counting(0)
	_, err = domcheck.WithRetry(m)(domcheck.MatcherContext{}, n, nil)
	require.NoError(t, err)
	assert.Equal(t, domcheck.RetryAttempts, *calls)
	assert.Equal(t, 35*time.Millisecond, doc.Now())
}

func TestToHaveURLPathOnNodeWaitsForNavigation(t *testing.T) {
	doc, scr := open(t, fixture.Router{})
	heading, err := scr.Locate("h1").Element()
	require.NoError(t, err)

	require.NoError(t, scr.LocateText("About").Click())
	domcheck.Expect(t, heading).ToHaveURLPath("/about")
	assert.Equal(t, 15*time.Millisecond, doc.Now())
}

// plainEnv hides the document's Sleep so the session clock is used.
type plainEnv struct {
	domcheck.Environment
}

func TestRetryUsesSessionClock(t *testing.T) {
	doc, _ := open(t, `<p>x</p>`)
	scr := domcheck.Open(t, plainEnv{doc}, `<p>y</p>`,
		domcheck.WithLookupEnv(noEnv), domcheck.WithClock(clock.New()))

	m, calls := counting(0)
	start := time.Now()
	_, err := domcheck.WithRetry(m)(domcheck.MatcherContext{}, scr, nil)
	require.NoError(t, err)
	assert.Equal(t, domcheck.RetryAttempts, *calls)
	assert.Equal(t, time.Duration(0), doc.Now(), "document clock untouched")
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestToHaveURLPathWaitsForNavigation(t *testing.T) {
	doc, scr := open(t, fixture.Router{})

	require.NoError(t, scr.LocateText("About").Click())
	domcheck.Expect(t, scr).Not().ToHaveURLPath("/")
	assert.Equal(t, 15*time.Millisecond, doc.Now(), "settled on the third attempt")
	domcheck.Expect(t, scr).ToHaveURLPath("/about")
	domcheck.Expect(t, scr).ToHaveTitle("About")
	domcheck.Expect(t, scr.Locate("h1")).ToContainText("About")
}

func TestToHaveURLPathGivesUp(t *testing.T) {
	doc, scr := open(t, fixture.Router{})
	require.NoError(t, scr.LocateText("Slow").Click())

	rec := &recordingT{TB: t}
	ok := domcheck.Expect(rec, scr).ToHaveURLPath("/slow")
	assert.False(t, ok)
	require.Len(t, rec.errors, 1)
	assert.Contains(t, rec.errors[0], `toHaveURLPath: expected <div`)
	assert.Contains(t, rec.errors[0], `to have URL path "/slow"`)
	assert.Contains(t, rec.errors[0], `received: "/"`)
	assert.Equal(t, 35*time.Millisecond, doc.Now())

	doc.Sleep(100 * time.Millisecond)
	domcheck.Expect(t, scr).ToHaveURLPath("/slow")
}

func TestTitleIsNotRetried(t *testing.T) {
	doc, scr := open(t, fixture.Router{})
	require.NoError(t, scr.LocateText("About").Click())

	domcheck.Expect(t, scr).Not().ToHaveTitle("About")
	assert.Equal(t, time.Duration(0), doc.Now())
}
