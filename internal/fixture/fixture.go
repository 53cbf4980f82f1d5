// Package fixture provides small components for exercising domcheck
// against an htmltree document.
//
// Behavior:
//   - Counter: a status line "Count: N" and an Increment button; a click
//     schedules the increment as a microtask
//   - SearchForm: typing into the query input updates a preview; Enter
//     submits; changing the select updates a kind label
//   - Router: navigation links that change the document URL and title
//     after a per-route delay on the virtual clock
package fixture

import (
	"fmt"
	"time"

	"github.com/cboone/domcheck"
	"github.com/cboone/domcheck/htmltree"
)

// Counter renders a clickable counter.
type Counter struct {
	Start int
}

// Mount implements htmltree.Component.
func (c Counter) Mount(r *htmltree.Root) error {
	err := r.SetHTML(`
<div class="counter card">
  <h2>Counter</h2>
  <p role="status">Count: 0</p>
  <button type="button" class="btn primary">Increment</button>
  <button type="button" class="btn" disabled>Reset</button>
</div>`)
	if err != nil {
		return err
	}
	status, err := r.Query("[role=status]")
	if err != nil {
		return err
	}
	count := c.Start
	show := func() { status.SetText(fmt.Sprintf("Count: %d", count)) }
	show()
	return r.On(domcheck.EventClick, "button.primary", func(*htmltree.Event) error {
		r.Document().Schedule(func() {
			count++
			show()
		})
		return nil
	})
}

// SearchForm renders a search form with a live preview.
type SearchForm struct{}

// Mount implements htmltree.Component.
func (SearchForm) Mount(r *htmltree.Root) error {
	err := r.SetHTML(`
<form role="search" class="search">
  <label>Query <input name="q" type="text"></label>
  <textarea name="notes">  first
  note  </textarea>
  <select name="kind">
    <option value="all">All</option>
    <option value="docs" selected>Docs</option>
  </select>
  <p class="preview" role="status"></p>
  <p class="kind">Kind: docs</p>
  <p class="submitted"></p>
</form>`)
	if err != nil {
		return err
	}
	preview, err := r.Query(".preview")
	if err != nil {
		return err
	}
	kind, err := r.Query(".kind")
	if err != nil {
		return err
	}
	submitted, err := r.Query(".submitted")
	if err != nil {
		return err
	}
	if err := r.On(domcheck.EventInput, "input[name=q]", func(ev *htmltree.Event) error {
		preview.SetText("Searching for: " + ev.CurrentTarget.Value())
		return nil
	}); err != nil {
		return err
	}
	if err := r.On(domcheck.EventChange, "select", func(ev *htmltree.Event) error {
		kind.SetText("Kind: " + ev.CurrentTarget.Value())
		return nil
	}); err != nil {
		return err
	}
	return r.On(domcheck.EventKeyDown, "input[name=q]", func(ev *htmltree.Event) error {
		if ev.Key == string(domcheck.Enter) {
			submitted.SetText("Submitted: " + ev.CurrentTarget.Value())
		}
		return nil
	})
}

// Route is one link of a Router.
type Route struct {
	Path  string
	Title string
	// Delay is how long navigation takes on the document's virtual clock.
	Delay time.Duration
}

// DefaultRoutes settle at different points of a retrying matcher's
// schedule: "/about" within it, "/slow" after it.
var DefaultRoutes = []Route{
	{Path: "/about", Title: "About", Delay: 15 * time.Millisecond},
	{Path: "/slow", Title: "Slow", Delay: 100 * time.Millisecond},
}

// Router renders navigation links for its routes.
type Router struct {
	Routes []Route
}

// Mount implements htmltree.Component.
func (rt Router) Mount(r *htmltree.Root) error {
	routes := rt.Routes
	if routes == nil {
		routes = DefaultRoutes
	}
	markup := `<nav role="navigation">`
	for _, route := range routes {
		markup += fmt.Sprintf(`<a href=%q class="nav-link">%s</a>`, route.Path, route.Title)
	}
	markup += `</nav><h1>Home</h1>`
	if err := r.SetHTML(markup); err != nil {
		return err
	}
	heading, err := r.Query("h1")
	if err != nil {
		return err
	}

	doc := r.Document()
	var pending []int
	r.OnUnmount(func() {
		for _, id := range pending {
			doc.ClearTimeout(id)
		}
	})
	return r.On(domcheck.EventClick, "a[href]", func(ev *htmltree.Event) error {
		href, _ := ev.CurrentTarget.Attr("href")
		for _, route := range routes {
			if route.Path != href {
				continue
			}
			pending = append(pending, doc.SetTimeout(route.Delay, func() {
				if err := doc.Navigate(route.Path); err != nil {
					return
				}
				doc.SetTitle(route.Title)
				heading.SetText(route.Title)
			}))
			return nil
		}
		return fmt.Errorf("fixture: no route for %q", href)
	})
}
