package querystate

import (
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/clock"
	"github.com/dalemusser/floodrelief/internal/domain/models"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var epoch = time.Date(2024, 11, 27, 8, 0, 0, 0, time.UTC)

// newTestController returns a controller on a fake clock whose settled
// searches are collected into the returned slice pointer.
func newTestController(t *testing.T) (*Controller, *clock.FakeClock, *[]SearchSettled) {
	t.Helper()
	clk := clock.Fake(epoch)
	var settled []SearchSettled
	c := NewController(Default(), Options{
		Clock:  clk,
		Delay:  500 * time.Millisecond,
		Notify: func(ev SearchSettled) { settled = append(settled, ev) },
	})
	t.Cleanup(c.Close)
	return c, clk, &settled
}

func meta(requests, contributions int) *models.Meta {
	return &models.Meta{TotalRequests: requests, TotalContributions: contributions}
}

func TestController_SearchDebounce(t *testing.T) {
	c, clk, settled := newTestController(t)

	// Keystrokes at 0, 100, 200 and 490 ms ending in "flood".
	c.SetSearch("f")
	clk.Advance(100 * time.Millisecond)
	c.SetSearch("fl")
	clk.Advance(100 * time.Millisecond)
	c.SetSearch("floo")
	clk.Advance(290 * time.Millisecond)
	c.SetSearch("flood")

	if got := c.RawSearch(); got != "flood" {
		t.Errorf("RawSearch() = %q, want raw text updated immediately", got)
	}
	if c.State().Search != "" {
		t.Errorf("committed Search = %q before settling, want empty", c.State().Search)
	}
	if !c.SearchPending() {
		t.Error("SearchPending() = false while debouncing")
	}

	clk.Advance(499 * time.Millisecond) // t = 989ms
	if len(*settled) != 0 {
		t.Fatalf("settled early: %v", *settled)
	}

	clk.Advance(time.Millisecond) // t = 990ms
	if len(*settled) != 1 {
		t.Fatalf("settled %d times, want 1", len(*settled))
	}
	ev := (*settled)[0]
	if ev.Text != "flood" {
		t.Errorf("settled text = %q, want flood", ev.Text)
	}
	if !c.CommitSearch(ev) {
		t.Fatal("CommitSearch() = false, want change")
	}
	if c.State().Search != "flood" || c.Query().Search != "flood" {
		t.Errorf("committed search = %q, want flood", c.State().Search)
	}

	clk.Advance(10 * time.Second)
	if len(*settled) != 1 {
		t.Errorf("settled %d times, want exactly once", len(*settled))
	}
}

func TestController_CommitSearchIgnoresStale(t *testing.T) {
	c, clk, settled := newTestController(t)

	c.SetSearch("river")
	clk.Advance(500 * time.Millisecond)
	stale := (*settled)[0]

	c.SetSearch("river road")
	if c.CommitSearch(stale) {
		t.Error("CommitSearch(stale) = true, want ignored")
	}
	if c.State().Search != "" {
		t.Errorf("Search = %q after stale commit, want empty", c.State().Search)
	}

	clk.Advance(500 * time.Millisecond)
	if !c.CommitSearch((*settled)[1]) {
		t.Error("CommitSearch(latest) = false")
	}
	if c.State().Search != "river road" {
		t.Errorf("Search = %q, want river road", c.State().Search)
	}
}

func TestController_SearchResetsPage(t *testing.T) {
	c, clk, settled := newTestController(t)
	c.ObserveTotals(meta(200, 0))
	c.GoToPage(3)

	c.SetSearch("x")
	if c.State().Page != 3 {
		t.Errorf("Page = %d while search pending, want 3", c.State().Page)
	}
	clk.Advance(500 * time.Millisecond)
	c.CommitSearch((*settled)[0])
	if c.State().Page != 1 {
		t.Errorf("Page = %d after committed search, want 1", c.State().Page)
	}
}

func TestController_FlushSearch(t *testing.T) {
	c, clk, settled := newTestController(t)

	c.SetSearch("school")
	if !c.FlushSearch() {
		t.Fatal("FlushSearch() = false, want change")
	}
	if c.State().Search != "school" {
		t.Errorf("Search = %q, want school", c.State().Search)
	}
	clk.Advance(time.Second)
	if len(*settled) != 0 {
		t.Errorf("debounce still fired after flush: %v", *settled)
	}
}

func TestController_GoToPageClamps(t *testing.T) {
	c, _, _ := newTestController(t)
	c.ObserveTotals(meta(42, 0)) // 2 pages of 25

	tests := []struct {
		n, want int
	}{
		{2, 2},
		{7, 2},
		{0, 1},
		{-5, 1},
		{1, 1},
	}
	for _, tt := range tests {
		c.GoToPage(tt.n)
		if got := c.State().Page; got != tt.want {
			t.Errorf("GoToPage(%d) -> Page %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestController_GoToPageWithoutData(t *testing.T) {
	c, _, _ := newTestController(t)
	if c.GoToPage(3) {
		t.Error("GoToPage(3) changed state with no data, want clamp to the single page")
	}
	if c.TotalPages() != 1 {
		t.Errorf("TotalPages() = %d, want 1 with no data", c.TotalPages())
	}
}

func TestController_NextPrevFirstLast(t *testing.T) {
	c, _, _ := newTestController(t)
	c.ObserveTotals(meta(101, 0)) // 5 pages

	if !c.NextPage() || c.State().Page != 2 {
		t.Fatalf("NextPage() -> %d, want 2", c.State().Page)
	}
	if !c.LastPage() || c.State().Page != 5 {
		t.Fatalf("LastPage() -> %d, want 5", c.State().Page)
	}
	if c.NextPage() {
		t.Error("NextPage() on last page reported a change")
	}
	if !c.PrevPage() || c.State().Page != 4 {
		t.Fatalf("PrevPage() -> %d, want 4", c.State().Page)
	}
	if !c.FirstPage() || c.State().Page != 1 {
		t.Fatalf("FirstPage() -> %d, want 1", c.State().Page)
	}
	if c.PrevPage() {
		t.Error("PrevPage() on first page reported a change")
	}
}

func TestController_PageNavigationKeepsFilters(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetFilter(FilterStatus, "pending")
	c.SetSort(SortOldest)
	c.ObserveTotals(meta(100, 0))

	c.GoToPage(3)
	s := c.State()
	if s.Status != "pending" || s.Sort != SortOldest {
		t.Errorf("page navigation touched filters: %+v", s)
	}
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	c, _, _ := newTestController(t)
	c.ObserveTotals(meta(100, 80))
	c.GoToPage(3)

	changed, err := c.SetFilter(FilterStatus, "resolved")
	if err != nil || !changed {
		t.Fatalf("SetFilter() = %v, %v", changed, err)
	}
	if c.State().Page != 1 {
		t.Errorf("Page = %d, want 1", c.State().Page)
	}

	c.GoToPage(2)
	if changed := c.ClearFilter(FilterStatus); !changed {
		t.Error("ClearFilter() = false, want change")
	}
	if c.State().Page != 1 || c.Query().Status != "" {
		t.Errorf("after ClearFilter: page %d status %q", c.State().Page, c.Query().Status)
	}
	if c.ClearFilter(FilterStatus) {
		t.Error("ClearFilter() on unset filter reported a change")
	}
}

func TestController_SetItemsPerPage(t *testing.T) {
	c, _, _ := newTestController(t)
	c.ObserveTotals(meta(100, 0))
	c.GoToPage(4)

	if _, err := c.SetItemsPerPage(30); !errors.Is(err, ErrInvalidPageSize) {
		t.Errorf("SetItemsPerPage(30) error = %v, want ErrInvalidPageSize", err)
	}
	if c.State().Page != 4 {
		t.Errorf("rejected page size changed page to %d", c.State().Page)
	}

	changed, err := c.SetItemsPerPage(10)
	if err != nil || !changed {
		t.Fatalf("SetItemsPerPage(10) = %v, %v", changed, err)
	}
	if c.State().Page != 1 || c.State().PerPage != 10 {
		t.Errorf("state = %+v, want page 1 of 10", c.State())
	}
	if c.TotalPages() != 10 {
		t.Errorf("TotalPages() = %d, want 10", c.TotalPages())
	}
}

func TestController_TabSwitchClearsUrgency(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetFilter(FilterUrgency, "critical")

	c.SetTab(TabContributions)
	if c.State().Urgency != "" || c.Query().Urgency != "" {
		t.Errorf("urgency = %q after switching to contributions, want cleared", c.State().Urgency)
	}
	c.SetTab(TabRequests)
	if c.State().Urgency != "" {
		t.Errorf("urgency = %q after switching back, want not restored", c.State().Urgency)
	}
}

func TestController_TotalPagesPerTab(t *testing.T) {
	c, _, _ := newTestController(t)
	c.ObserveTotals(meta(101, 30))

	if got := c.TotalPages(); got != 5 {
		t.Errorf("requests TotalPages() = %d, want 5", got)
	}
	c.SetTab(TabContributions)
	if got := c.TotalPages(); got != 2 {
		t.Errorf("contributions TotalPages() = %d, want 2", got)
	}
	c.SetTab(TabAll)
	if got := c.TotalPages(); got != 5 {
		t.Errorf("all TotalPages() = %d, want 5 (max of totals)", got)
	}

	c.ObserveTotals(meta(0, 0))
	if got := c.TotalPages(); got != 1 {
		t.Errorf("TotalPages() with empty result = %d, want 1", got)
	}
	c.ObserveTotals(nil)
	if got := c.TotalPages(); got != 1 {
		t.Errorf("TotalPages() after failed fetch = %d, want 1", got)
	}
}

// Filters {requests, pending, newest, 25/page}; server reports 42 requests,
// so there are 2 pages and page 2 starts at offset 25.
func TestController_EndToEndPaging(t *testing.T) {
	c, _, _ := newTestController(t)
	c.SetFilter(FilterStatus, "pending")

	q := c.Query()
	if q.Type != "requests" || q.Status != "pending" || q.Sort != "newest" || q.Limit != 25 || q.Offset != 0 {
		t.Fatalf("initial Query() = %+v", q)
	}

	c.ObserveTotals(meta(42, 0))
	if c.TotalPages() != 2 {
		t.Fatalf("TotalPages() = %d, want 2", c.TotalPages())
	}
	if !c.GoToPage(2) {
		t.Fatal("GoToPage(2) = false")
	}
	if got := c.Query().Offset; got != 25 {
		t.Errorf("page 2 offset = %d, want 25", got)
	}

	rng := c.Range(17)
	if rng.Start != 26 || rng.End != 42 {
		t.Errorf("Range(17) = %d..%d, want 26..42", rng.Start, rng.End)
	}
	if w := c.PageWindow(); len(w) != 2 {
		t.Errorf("PageWindow() = %v, want [1 2]", w)
	}
}

func TestController_Location(t *testing.T) {
	c, _, _ := newTestController(t)
	changed, err := c.SetLocation(6.9, 79.8, 5)
	if err != nil || !changed {
		t.Fatalf("SetLocation() = %v, %v", changed, err)
	}
	if _, err := c.SetLocation(200, 0, 5); !errors.Is(err, ErrInvalidLocation) {
		t.Errorf("SetLocation(200, ...) error = %v", err)
	}
	if !c.ClearLocation() {
		t.Error("ClearLocation() = false")
	}
	if c.ClearLocation() {
		t.Error("second ClearLocation() = true")
	}
}

func TestNewController_NormalizesInitial(t *testing.T) {
	c := NewController(State{Tab: TabAll, Sort: SortOldest, Page: 0, PerPage: 7}, Options{Clock: clock.Fake(epoch)})
	defer c.Close()
	if c.State().Page != 1 || c.State().PerPage != 25 {
		t.Errorf("State() = %+v, want page 1 of 25", c.State())
	}
}

func TestController_ClearAll(t *testing.T) {
	c, clk, settled := newTestController(t)
	if _, err := c.SetFilter(FilterStatus, "pending"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SetSort(SortOldest); err != nil {
		t.Fatal(err)
	}
	c.SetSearch("water")

	if !c.ClearAll() {
		t.Fatal("ClearAll() = false, want change")
	}
	if c.State().Status != "" || c.RawSearch() != "" {
		t.Errorf("after ClearAll status = %q raw search = %q", c.State().Status, c.RawSearch())
	}
	if c.State().Sort != SortOldest {
		t.Errorf("Sort = %q, want oldest kept", c.State().Sort)
	}

	clk.Advance(time.Second)
	if len(*settled) != 0 {
		t.Errorf("pending search settled after ClearAll: %v", *settled)
	}
	if c.ClearAll() {
		t.Error("second ClearAll() reported a change")
	}
}
