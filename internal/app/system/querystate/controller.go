// internal/app/system/querystate/controller.go
package querystate

import (
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/clock"
	"github.com/dalemusser/floodrelief/internal/app/system/debounce"
	"github.com/dalemusser/floodrelief/internal/app/system/floodapi"
	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/floodrelief/internal/domain/models"
	"go.uber.org/zap"
)

// SearchSettled is delivered through Options.Notify once the search box
// has been idle for the debounce delay. Hand it back to CommitSearch on the
// goroutine that owns the Controller.
type SearchSettled struct {
	Generation uint64
	Text       string
}

// Totals are the server-side record counts from the last successful fetch.
type Totals struct {
	Requests      int
	Contributions int
	Known         bool
}

// Relevant returns the total that drives pagination for tab. The "all" tab
// pages requests and contributions in lockstep (the server applies the same
// limit and offset to each), so its page count follows the larger total.
func (t Totals) Relevant(tab Tab) int {
	if !t.Known {
		return 0
	}
	switch tab {
	case TabRequests:
		return t.Requests
	case TabContributions:
		return t.Contributions
	}
	return max(t.Requests, t.Contributions)
}

// Options configures a Controller.
type Options struct {
	Clock  clock.Clock
	Delay  time.Duration       // search debounce; 0 means debounce.DefaultDelay
	Notify func(SearchSettled) // called when a search settles, possibly on a timer goroutine
	Log    *zap.Logger
}

// Controller owns the dashboard's query state. It is the single source of
// truth for what should be requested next, independent of what was last
// received.
//
// A Controller is not safe for concurrent use. All methods must be called
// from one owning goroutine; the only thing that happens elsewhere is the
// debounce timer, which reports back through Options.Notify.
//
// Mutating methods report whether the derived API query changed, which is
// the owner's cue to issue a fetch.
type Controller struct {
	state     State
	rawSearch string
	gen       uint64
	totals    Totals

	debouncer *debounce.Debouncer
	notify    func(SearchSettled)
	log       *zap.Logger
}

// NewController returns a Controller starting from initial.
func NewController(initial State, opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(SearchSettled) {}
	}
	if initial.Page < 1 {
		initial.Page = 1
	}
	if !paging.ValidPageSize(initial.PerPage) {
		initial.PerPage = paging.DefaultPageSize
	}
	return &Controller{
		state:     initial,
		rawSearch: initial.Search,
		debouncer: debounce.New(opts.Clock, opts.Delay),
		notify:    notify,
		log:       log,
	}
}

// State returns the current committed state.
func (c *Controller) State() State { return c.state }

// Query returns the API request for the current state.
func (c *Controller) Query() floodapi.Query { return c.state.Query() }

// RawSearch returns the search box text, which may be ahead of the
// committed search while the debounce is pending.
func (c *Controller) RawSearch() string { return c.rawSearch }

// SearchPending reports whether typed text is waiting to be committed.
func (c *Controller) SearchPending() bool { return c.debouncer.Pending() }

// SetSearch records a keystroke. The raw text updates immediately; the
// committed search changes only after the debounce delay passes with no
// further SetSearch calls.
func (c *Controller) SetSearch(text string) {
	c.rawSearch = text
	c.gen++
	ev := SearchSettled{Generation: c.gen, Text: text}
	c.debouncer.Trigger(func() { c.notify(ev) })
}

// CommitSearch applies a settled search. Events superseded by a later
// keystroke are ignored.
func (c *Controller) CommitSearch(ev SearchSettled) bool {
	if ev.Generation != c.gen {
		c.log.Debug("dropping stale search", zap.Uint64("generation", ev.Generation), zap.Uint64("current", c.gen))
		return false
	}
	return c.apply(c.state.WithSearch(ev.Text))
}

// FlushSearch commits the raw search text immediately, cancelling any
// pending debounce.
func (c *Controller) FlushSearch() bool {
	c.debouncer.Stop()
	c.gen++
	return c.apply(c.state.WithSearch(c.rawSearch))
}

// SetFilter sets a filter; "" or "all" clears it.
func (c *Controller) SetFilter(name Filter, value string) (bool, error) {
	next, err := c.state.WithFilter(name, value)
	if err != nil {
		return false, err
	}
	return c.apply(next), nil
}

// ClearFilter unsets a filter.
func (c *Controller) ClearFilter(name Filter) bool {
	changed, err := c.SetFilter(name, All)
	return err == nil && changed
}

// SetSort changes the ordering.
func (c *Controller) SetSort(order Sort) (bool, error) {
	next, err := c.state.WithSort(order)
	if err != nil {
		return false, err
	}
	return c.apply(next), nil
}

// SetTab switches the visible record type.
func (c *Controller) SetTab(t Tab) (bool, error) {
	next, err := c.state.WithTab(t)
	if err != nil {
		return false, err
	}
	return c.apply(next), nil
}

// SetItemsPerPage changes the page size and returns to page 1.
func (c *Controller) SetItemsPerPage(n int) (bool, error) {
	next, err := c.state.WithPerPage(n)
	if err != nil {
		return false, err
	}
	return c.apply(next), nil
}

// SetLocation applies a radius filter.
func (c *Controller) SetLocation(lat, lng, radiusKm float64) (bool, error) {
	next, err := c.state.WithLocation(lat, lng, radiusKm)
	if err != nil {
		return false, err
	}
	return c.apply(next), nil
}

// ClearLocation removes the radius filter.
func (c *Controller) ClearLocation() bool {
	return c.apply(c.state.WithoutLocation())
}

// ClearAll drops search, filters and location, cancelling any pending
// search debounce.
func (c *Controller) ClearAll() bool {
	c.debouncer.Stop()
	c.gen++
	c.rawSearch = ""
	return c.apply(c.state.Cleared())
}

// GoToPage moves to page n, silently clamped to [1, TotalPages()].
func (c *Controller) GoToPage(n int) bool {
	return c.apply(c.state.WithPage(n, c.TotalPages()))
}

// NextPage advances one page if there is one.
func (c *Controller) NextPage() bool { return c.GoToPage(c.state.Page + 1) }

// PrevPage goes back one page if there is one.
func (c *Controller) PrevPage() bool { return c.GoToPage(c.state.Page - 1) }

// FirstPage jumps to page 1.
func (c *Controller) FirstPage() bool { return c.GoToPage(1) }

// LastPage jumps to the last known page.
func (c *Controller) LastPage() bool { return c.GoToPage(c.TotalPages()) }

// ObserveTotals records the totals from a fetch result. Pass nil after a
// failed fetch; pagination then falls back to a single page.
func (c *Controller) ObserveTotals(meta *models.Meta) {
	if meta == nil {
		c.totals = Totals{}
		return
	}
	c.totals = Totals{
		Requests:      meta.TotalRequests,
		Contributions: meta.TotalContributions,
		Known:         true,
	}
}

// Totals returns the last observed totals.
func (c *Controller) Totals() Totals { return c.totals }

// TotalPages is ceil(relevant total / page size), and 1 when nothing is
// known yet or the result set is empty.
func (c *Controller) TotalPages() int {
	return paging.TotalPages(c.totals.Relevant(c.state.Tab), c.state.PerPage)
}

// Range returns the display range for a page showing displayed rows.
func (c *Controller) Range(displayed int) paging.Range {
	return paging.ComputeRange(c.state.Page, c.state.PerPage, displayed, c.totals.Relevant(c.state.Tab))
}

// PageWindow returns the page-number buttons for the current page.
func (c *Controller) PageWindow() []int {
	return paging.PageWindow(c.state.Page, c.TotalPages())
}

// Close cancels any pending search debounce.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

func (c *Controller) apply(next State) bool {
	if next == c.state {
		return false
	}
	c.log.Debug("query state changed",
		zap.String("tab", string(next.Tab)),
		zap.Int("page", next.Page),
		zap.Int("per_page", next.PerPage))
	c.state = next
	return true
}
