package fixture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cboone/domcheck"
	"github.com/cboone/domcheck/htmltree"
	"github.com/cboone/domcheck/internal/fixture"
)

func render(t *testing.T, doc *htmltree.Document, content any) domcheck.Root {
	t.Helper()
	c, err := doc.NewContainer()
	require.NoError(t, err)
	root, err := doc.CreateRoot(c)
	require.NoError(t, err)
	require.NoError(t, doc.Render(root, content))
	return root
}

func TestRouterNavigatesAfterDelay(t *testing.T) {
	doc := htmltree.NewDocument()
	root := render(t, doc, fixture.Router{Routes: []fixture.Route{
		{Path: "/docs", Title: "Docs", Delay: 10 * time.Millisecond},
	}})
	link, err := root.(*htmltree.Root).Query("a.nav-link")
	require.NoError(t, err)

	require.NoError(t, doc.Act(func() error {
		return link.DispatchEvent(domcheck.Event{Type: domcheck.EventClick, Bubbles: true})
	}))
	assert.Equal(t, "/", doc.URLPath())

	doc.Sleep(10 * time.Millisecond)
	assert.Equal(t, "/docs", doc.URLPath())
	assert.Equal(t, "Docs", doc.Title())
}

func TestRouterUnmountClearsTimers(t *testing.T) {
	doc := htmltree.NewDocument()
	root := render(t, doc, fixture.Router{})
	r := root.(*htmltree.Root)

	links, err := r.QueryAll("a.nav-link")
	require.NoError(t, err)
	require.Len(t, links, len(fixture.DefaultRoutes))
	for _, l := range links {
		require.NoError(t, l.DispatchEvent(domcheck.Event{Type: domcheck.EventClick, Bubbles: true}))
	}
	_, timers := doc.Pending()
	assert.Equal(t, 2, timers)

	require.NoError(t, doc.DestroyRoot(root))
	_, timers = doc.Pending()
	assert.Zero(t, timers)
	doc.Sleep(time.Second)
	assert.Equal(t, "/", doc.URLPath())
}

func TestRouterUnknownLink(t *testing.T) {
	doc := htmltree.NewDocument()
	root := render(t, doc, fixture.Router{})
	r := root.(*htmltree.Root)
	require.NoError(t, r.SetHTML(`<a href="/nowhere">x</a>`))

	link, err := r.Query("a")
	require.NoError(t, err)
	err = link.DispatchEvent(domcheck.Event{Type: domcheck.EventClick, Bubbles: true})
	assert.EqualError(t, err, `fixture: no route for "/nowhere"`)
}

func TestCounterStart(t *testing.T) {
	doc := htmltree.NewDocument()
	root := render(t, doc, fixture.Counter{Start: 41})
	status, err := root.(*htmltree.Root).Query("[role=status]")
	require.NoError(t, err)
	assert.Equal(t, "Count: 41", status.OwnText())
}
