// internal/app/features/dashboard/viewmodel.go
package dashboard

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/floodrelief/internal/app/system/fetcher"
	"github.com/dalemusser/floodrelief/internal/app/system/htmlsanitize"
	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timezones"
	"github.com/dalemusser/floodrelief/internal/app/system/viewdata"
	"github.com/dalemusser/floodrelief/internal/domain/models"
)

const createdLayout = "2 Jan 2006 15:04"

type tabVM struct {
	Label  string
	Href   string
	Active bool
	Count  int
	Known  bool
}

type optionVM struct {
	Value    string
	Label    string
	Selected bool
}

type pageLinkVM struct {
	Number  int
	Href    string
	Current bool
	Gap     bool
}

type requestRowVM struct {
	ID         string
	Name       string
	Phone      string
	Address    string
	Urgency    string
	Status     string
	Assistance string
	People     string
	Notes      template.HTML
	CreatedAt  string
	Distance   string
}

type contributionRowVM struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Status    string
	Offers    string
	Coverage  string
	Verified  bool
	Notes     template.HTML
	CreatedAt string
	Distance  string
}

type dashboardData struct {
	viewdata.BaseVM

	State querystate.State
	Tabs  []tabVM

	Search         string
	StatusOptions  []optionVM
	UrgencyOptions []optionVM
	SortOptions    []optionVM
	PerPageOptions []optionVM
	ShowUrgency    bool
	NearestEnabled bool

	ShowRequests      bool
	ShowContributions bool
	Requests          []requestRowVM
	Contributions     []contributionRowVM
	Empty             bool

	Error     string
	RetryHref string
	TimeZone  string

	Range     paging.Range
	Pages     []pageLinkVM
	FirstHref string
	PrevHref  string
	NextHref  string
	LastHref  string

	ExportCSVHref string
	ExportTSVHref string
	ClearHref     string
}

// buildDashboard turns the controller and fetch snapshot into the view
// model. It does no I/O.
func buildDashboard(ctrl *querystate.Controller, snap fetcher.Snapshot, loc *time.Location) dashboardData {
	st := ctrl.State()
	totals := ctrl.Totals()

	data := dashboardData{
		State:             st,
		Search:            st.Search,
		ShowUrgency:       st.Tab == querystate.TabRequests,
		NearestEnabled:    st.HasLocation(),
		ShowRequests:      st.Tab != querystate.TabContributions,
		ShowContributions: st.Tab != querystate.TabRequests,
		Error:             snap.Message(),
		RetryHref:         st.Href(dashboardPath),
		ExportCSVHref:     st.Href(csvPath),
		ExportTSVHref:     st.Href(tsvPath),
		ClearHref:         st.Cleared().Href(dashboardPath),
		TimeZone:          zoneLabel(loc),
	}

	for _, t := range querystate.Tabs {
		next, _ := st.WithTab(t)
		tv := tabVM{Label: label(string(t)), Href: next.Href(dashboardPath), Active: t == st.Tab, Known: totals.Known}
		switch t {
		case querystate.TabRequests:
			tv.Count = totals.Requests
		case querystate.TabContributions:
			tv.Count = totals.Contributions
		default:
			tv.Count = totals.Requests + totals.Contributions
		}
		data.Tabs = append(data.Tabs, tv)
	}

	data.StatusOptions = options(querystate.StatusesFor(st.Tab), st.Status, "All statuses")
	data.UrgencyOptions = options(models.Urgencies, st.Urgency, "All urgencies")
	for _, s := range querystate.Sorts {
		data.SortOptions = append(data.SortOptions, optionVM{
			Value:    string(s),
			Label:    sortLabel(s),
			Selected: s == st.Sort,
		})
	}
	for _, n := range paging.PageSizes {
		data.PerPageOptions = append(data.PerPageOptions, optionVM{
			Value:    strconv.Itoa(n),
			Label:    strconv.Itoa(n),
			Selected: n == st.PerPage,
		})
	}

	shown := 0
	if env := snap.Data; env != nil && snap.Err == nil {
		if data.ShowRequests {
			for _, r := range env.Requests {
				data.Requests = append(data.Requests, requestRow(r, loc))
			}
			shown = max(shown, len(env.Requests))
		}
		if data.ShowContributions {
			for _, c := range env.Contributions {
				data.Contributions = append(data.Contributions, contributionRow(c, loc))
			}
			shown = max(shown, len(env.Contributions))
		}
		data.Empty = len(data.Requests) == 0 && len(data.Contributions) == 0
	}

	pages := ctrl.TotalPages()
	data.Range = ctrl.Range(shown)
	for _, n := range ctrl.PageWindow() {
		if n == paging.Ellipsis {
			data.Pages = append(data.Pages, pageLinkVM{Gap: true})
			continue
		}
		data.Pages = append(data.Pages, pageLinkVM{
			Number:  n,
			Href:    st.WithPage(n, pages).Href(dashboardPath),
			Current: n == st.Page,
		})
	}
	if data.Range.HasPrev() {
		data.FirstHref = st.WithPage(1, pages).Href(dashboardPath)
		data.PrevHref = st.WithPage(data.Range.PrevPage, pages).Href(dashboardPath)
	}
	if data.Range.HasNext() {
		data.NextHref = st.WithPage(data.Range.NextPage, pages).Href(dashboardPath)
		data.LastHref = st.WithPage(pages, pages).Href(dashboardPath)
	}
	return data
}

func options(values []string, selected, allLabel string) []optionVM {
	out := []optionVM{{Value: querystate.All, Label: allLabel, Selected: selected == ""}}
	for _, v := range values {
		out = append(out, optionVM{Value: v, Label: label(v), Selected: v == selected})
	}
	return out
}

func sortLabel(s querystate.Sort) string {
	switch s {
	case querystate.SortNewest:
		return "Newest first"
	case querystate.SortOldest:
		return "Oldest first"
	case querystate.SortNearest:
		return "Nearest first"
	}
	return label(string(s))
}

// label turns an API value like "in_progress" into "In progress".
func label(v string) string {
	v = strings.ReplaceAll(v, "_", " ")
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func requestRow(r models.AssistanceRequest, loc *time.Location) requestRowVM {
	return requestRowVM{
		ID:         r.ID,
		Name:       htmlsanitize.PlainText(r.FullName),
		Phone:      r.MobileNumber,
		Address:    htmlsanitize.PlainText(r.Address),
		Urgency:    r.Urgency,
		Status:     r.Status,
		Assistance: strings.Join(r.AssistanceTypes, ", "),
		People:     r.PeopleSummary(),
		Notes:      htmlsanitize.PrepareForDisplay(htmlsanitize.PlainText(r.AdditionalNotes)),
		CreatedAt:  formatTime(r.CreatedAt, loc),
		Distance:   formatDistance(r.DistanceKm),
	}
}

func contributionRow(c models.Contribution, loc *time.Location) contributionRowVM {
	return contributionRowVM{
		ID:        c.ID,
		Name:      htmlsanitize.PlainText(c.FullName),
		Phone:     c.MobileNumber,
		Address:   htmlsanitize.PlainText(c.Address),
		Status:    c.Status,
		Offers:    c.OfferSummary(),
		Coverage:  strconv.FormatFloat(c.CoverageRadiusKm, 'f', -1, 64) + " km",
		Verified:  c.Verified,
		Notes:     htmlsanitize.PrepareForDisplay(htmlsanitize.PlainText(c.Notes())),
		CreatedAt: formatTime(c.CreatedAt, loc),
		Distance:  formatDistance(c.DistanceKm),
	}
}

func formatTime(ts models.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return ts.In(loc).Format(createdLayout)
}

// zoneLabel names the display zone, e.g. "Sri Lanka (Colombo)".
func zoneLabel(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return timezones.Label(loc.String())
}

func formatDistance(km *float64) string {
	if km == nil {
		return ""
	}
	return fmt.Sprintf("%.1f km", *km)
}
