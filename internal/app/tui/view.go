// internal/app/tui/view.go
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/dalemusser/floodrelief/internal/app/system/htmlsanitize"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timezones"
	"github.com/dalemusser/floodrelief/internal/domain/models"
)

const createdLayout = "2 Jan 15:04"

// View renders the dashboard.
func (m Model) View() string {
	st := m.ctrl.State()
	snap := m.orch.Snapshot()
	totals := m.ctrl.Totals()

	var b strings.Builder

	title := m.cfg.SiteName
	if title == "" {
		title = models.DefaultSiteName
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(querystate.Tabs))
	for _, t := range querystate.Tabs {
		text := label(string(t))
		if totals.Known {
			switch t {
			case querystate.TabRequests:
				text += fmt.Sprintf(" (%d)", totals.Requests)
			case querystate.TabContributions:
				text += fmt.Sprintf(" (%d)", totals.Contributions)
			}
		}
		if t == st.Tab {
			tabs = append(tabs, m.styles.ActiveTab.Render(text))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(text))
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Filters.Render(filterSummary(st)))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	r := m.ctrl.Range(displayed(m.shownTab, m.orch.Data()))
	footer := fmt.Sprintf("Page %d of %d · %d per page · times in %s", r.Page, r.Pages, st.PerPage, timezones.Label(m.cfg.Location.String()))
	// The rows on screen belong to the previous query until the fetch lands.
	if r.Total > 0 && !snap.Loading && m.shownTab == st.Tab {
		footer = fmt.Sprintf("Showing %d to %d of %d · ", r.Start, r.End, r.Total) + footer
	}
	b.WriteString(m.styles.Footer.Render(footer))
	b.WriteString("\n")

	switch {
	case snap.Loading:
		b.WriteString(m.styles.Loading.Render("Loading..."))
	case m.ctrl.SearchPending():
		b.WriteString(m.styles.Loading.Render("Searching..."))
	case snap.Err != nil:
		b.WriteString(m.styles.Error.Render(snap.Message() + " (r to retry)"))
	case m.status != "" && m.statusErr:
		b.WriteString(m.styles.Error.Render(m.status))
	case m.status != "":
		b.WriteString(m.styles.Toast.Render(m.status))
	case snap.Data != nil && displayed(m.shownTab, snap.Data) == 0:
		b.WriteString(m.styles.Footer.Render("No records match the current filters."))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpLine))
	return b.String()
}

func filterSummary(st querystate.State) string {
	parts := []string{"sort: " + string(st.Sort)}
	if n := st.ActiveFilters(); n > 0 {
		parts = append([]string{plural(n, "filter") + " active"}, parts...)
	}
	for _, f := range querystate.Filters {
		if v := st.Filter(f); v != "" {
			parts = append(parts, label(string(f))+": "+v)
		}
	}
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", st.Search))
	}
	if st.HasLocation() {
		parts = append(parts, fmt.Sprintf("within %s km", strconv.FormatFloat(st.Location.RadiusKm, 'f', -1, 64)))
	}
	return strings.Join(parts, " · ")
}

func columnsFor(tab querystate.Tab) []table.Column {
	switch tab {
	case querystate.TabRequests:
		return []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Phone", Width: 13},
			{Title: "Urgency", Width: 9},
			{Title: "Status", Width: 12},
			{Title: "Needs", Width: 24},
			{Title: "M/W/C", Width: 8},
			{Title: "Created", Width: 12},
		}
	case querystate.TabContributions:
		return []table.Column{
			{Title: "Name", Width: 20},
			{Title: "Phone", Width: 13},
			{Title: "Status", Width: 11},
			{Title: "Offers", Width: 28},
			{Title: "Radius", Width: 8},
			{Title: "Verified", Width: 8},
			{Title: "Created", Width: 12},
		}
	}
	return []table.Column{
		{Title: "Type", Width: 12},
		{Title: "Name", Width: 20},
		{Title: "Phone", Width: 13},
		{Title: "Status", Width: 12},
		{Title: "Details", Width: 32},
		{Title: "Created", Width: 12},
	}
}

func rowsFor(tab querystate.Tab, env *models.Envelope, loc *time.Location) []table.Row {
	if env == nil {
		return nil
	}
	var rows []table.Row
	if tab != querystate.TabContributions {
		for _, r := range env.Requests {
			if tab == querystate.TabRequests {
				rows = append(rows, table.Row{
					htmlsanitize.PlainText(r.FullName),
					r.MobileNumber,
					r.Urgency,
					label(r.Status),
					strings.Join(r.AssistanceTypes, ", "),
					r.PeopleSummary(),
					formatCreated(r.CreatedAt, loc),
				})
				continue
			}
			rows = append(rows, table.Row{
				"Request",
				htmlsanitize.PlainText(r.FullName),
				r.MobileNumber,
				label(r.Status),
				r.Urgency + ": " + strings.Join(r.AssistanceTypes, ", "),
				formatCreated(r.CreatedAt, loc),
			})
		}
	}
	if tab != querystate.TabRequests {
		for _, c := range env.Contributions {
			if tab == querystate.TabContributions {
				verified := "no"
				if c.Verified {
					verified = "yes"
				}
				rows = append(rows, table.Row{
					htmlsanitize.PlainText(c.FullName),
					c.MobileNumber,
					label(c.Status),
					c.OfferSummary(),
					strconv.FormatFloat(c.CoverageRadiusKm, 'f', -1, 64) + " km",
					verified,
					formatCreated(c.CreatedAt, loc),
				})
				continue
			}
			rows = append(rows, table.Row{
				"Contribution",
				htmlsanitize.PlainText(c.FullName),
				c.MobileNumber,
				label(c.Status),
				c.OfferSummary(),
				formatCreated(c.CreatedAt, loc),
			})
		}
	}
	return rows
}

func formatCreated(ts models.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format(createdLayout)
}

// label turns "in_progress" into "In progress".
func label(v string) string {
	v = strings.ReplaceAll(v, "_", " ")
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
