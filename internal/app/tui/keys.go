// internal/app/tui/keys.go
package tui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/floodrelief/internal/app/system/paging"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/domain/models"
)

const helpLine = "tab view · / search · s status · u urgency · o sort · n/p page · g/G first/last · +/- rows · x clear · r refresh · e export · c copy · q quit"

// handleKey processes a key press while the table has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.ctrl.State()

	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit

	case "/":
		m.searching = true
		return m, m.search.Focus()

	case "tab", "shift+tab":
		step := 1
		if msg.String() == "shift+tab" {
			step = -1
		}
		changed, err := m.ctrl.SetTab(querystate.Tabs[cycleIndex(slices.Index(querystate.Tabs, st.Tab), step, len(querystate.Tabs))])
		if err != nil {
			m.flashError(err.Error())
			return m, nil
		}
		return m, m.refetchIf(changed)

	case "s":
		next := cycleValue(querystate.StatusesFor(st.Tab), st.Status)
		changed, err := m.ctrl.SetFilter(querystate.FilterStatus, next)
		if err != nil {
			m.flashError(err.Error())
			return m, nil
		}
		return m, m.refetchIf(changed)

	case "u":
		if st.Tab != querystate.TabRequests {
			m.flashError("urgency only applies to requests")
			return m, nil
		}
		changed, err := m.ctrl.SetFilter(querystate.FilterUrgency, cycleValue(models.Urgencies, st.Urgency))
		if err != nil {
			m.flashError(err.Error())
			return m, nil
		}
		return m, m.refetchIf(changed)

	case "o":
		changed, err := m.ctrl.SetSort(nextSort(st))
		if err != nil {
			m.flashError(err.Error())
			return m, nil
		}
		return m, m.refetchIf(changed)

	case "n", "right", "pgdown":
		return m, m.refetchIf(m.ctrl.NextPage())
	case "p", "left", "pgup":
		return m, m.refetchIf(m.ctrl.PrevPage())
	case "g", "home":
		return m, m.refetchIf(m.ctrl.FirstPage())
	case "G", "end":
		return m, m.refetchIf(m.ctrl.LastPage())

	case "+", "=", "-":
		step := 1
		if msg.String() == "-" {
			step = -1
		}
		i := slices.Index(paging.PageSizes, st.PerPage)
		j := min(max(i+step, 0), len(paging.PageSizes)-1)
		if i < 0 || j == i {
			return m, nil
		}
		changed, err := m.ctrl.SetItemsPerPage(paging.PageSizes[j])
		if err != nil {
			m.flashError(err.Error())
			return m, nil
		}
		return m, m.refetchIf(changed)

	case "x":
		m.search.SetValue("")
		return m, m.refetchIf(m.ctrl.ClearAll())

	case "r":
		m.status = ""
		if p, ok := m.orch.Refetch(); ok {
			return m, m.fetch(p)
		}
		return m, nil

	case "e":
		return m.exportCSV()

	case "c":
		return m.copyTSV()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// updateSearch processes a key press while the search box has focus.
// Typing updates the raw text at once; the committed search follows once
// the debounce settles, or immediately on enter.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, m.refetchIf(m.ctrl.FlushSearch())
	case "esc", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.ctrl.SetSearch(v)
	}
	return m, cmd
}

// cycleIndex steps i by step, wrapping within n. A negative i starts from
// the beginning.
func cycleIndex(i, step, n int) int {
	if i < 0 {
		return 0
	}
	return ((i+step)%n + n) % n
}

// cycleValue returns the value after current in "", values[0], values[1]...
// wrapping back to "" (no filter).
func cycleValue(values []string, current string) string {
	i := slices.Index(values, current)
	if i+1 >= len(values) {
		return ""
	}
	return values[i+1]
}

// nextSort cycles the sort orders, skipping nearest when no location filter
// is set.
func nextSort(st querystate.State) querystate.Sort {
	i := slices.Index(querystate.Sorts, st.Sort)
	for range querystate.Sorts {
		i = cycleIndex(i, 1, len(querystate.Sorts))
		if s := querystate.Sorts[i]; s != querystate.SortNearest || st.HasLocation() {
			return s
		}
	}
	return st.Sort
}
