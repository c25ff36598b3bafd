// internal/app/tui/model.go
package tui

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/floodrelief/internal/app/system/clipboard"
	"github.com/dalemusser/floodrelief/internal/app/system/clock"
	"github.com/dalemusser/floodrelief/internal/app/system/csvutil"
	"github.com/dalemusser/floodrelief/internal/app/system/fetcher"
	"github.com/dalemusser/floodrelief/internal/app/system/querystate"
	"github.com/dalemusser/floodrelief/internal/app/system/timeouts"
	"github.com/dalemusser/floodrelief/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Config wires the terminal dashboard to its data source and settings.
type Config struct {
	Source    fetcher.Source
	Initial   querystate.State
	Debounce  time.Duration
	Location  *time.Location
	ExportDir string
	SiteName  string
	Clock     clock.Clock
	Log       *zap.Logger
}

type fetchDoneMsg struct{ c fetcher.Completion }

type searchSettledMsg struct{ ev querystate.SearchSettled }

type exportDoneMsg struct {
	path string
	rows int
	err  error
}

type copyDoneMsg struct {
	ok   bool
	rows int
}

// notifier forwards settled searches into the running program. The
// debounce timer fires on its own goroutine; Program.Send is safe to call
// from there.
type notifier struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (n *notifier) set(send func(tea.Msg)) {
	n.mu.Lock()
	n.send = send
	n.mu.Unlock()
}

func (n *notifier) notify(ev querystate.SearchSettled) {
	n.mu.Lock()
	send := n.send
	n.mu.Unlock()
	if send != nil {
		send(searchSettledMsg{ev: ev})
	}
}

// Model is the bubbletea model for the terminal dashboard. The controller
// and orchestrator are only touched from Update, which bubbletea runs on a
// single goroutine.
type Model struct {
	cfg      Config
	ctrl     *querystate.Controller
	orch     *fetcher.Orchestrator
	notifier *notifier

	search    textinput.Model
	searching bool
	table     table.Model
	styles    Styles

	// shownTab is the tab of the rows on screen, which lags the controller
	// while a fetch for a new tab is in flight.
	shownTab querystate.Tab

	status    string
	statusErr bool
	width     int
	height    int

	copyFn  func(tsv string, logger *zap.Logger) bool
	writeFn func(path string, t csvutil.Table) error
}

// New builds a Model. Call Attach with the program before running it so
// search debouncing can deliver its results.
func New(cfg Config) Model {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}

	n := &notifier{}
	ctrl := querystate.NewController(cfg.Initial, querystate.Options{
		Clock:  cfg.Clock,
		Delay:  cfg.Debounce,
		Notify: n.notify,
		Log:    cfg.Log,
	})

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search name, phone or address"
	ti.CharLimit = query.MaxSearchLen
	ti.Width = 40
	ti.SetValue(ctrl.RawSearch())

	styles := DefaultStyles()
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(styles.Table),
	)

	m := Model{
		cfg:      cfg,
		ctrl:     ctrl,
		orch:     fetcher.New(cfg.Source, cfg.Log),
		notifier: n,
		search:   ti,
		table:    t,
		styles:   styles,
		shownTab: ctrl.State().Tab,
		copyFn:   clipboard.CopyForSpreadsheet,
		writeFn:  writeCSVFile,
	}
	m.table.SetColumns(columnsFor(m.shownTab))
	return m
}

// Attach routes settled searches into p. Call it before p.Run.
func (m Model) Attach(p *tea.Program) { m.notifier.set(p.Send) }

// Close stops any pending search debounce.
func (m Model) Close() { m.ctrl.Close() }

// Init issues the first fetch.
func (m Model) Init() tea.Cmd {
	return m.fetch(m.orch.Begin(m.ctrl.Query()))
}

// fetch runs p off the update loop and reports back with a fetchDoneMsg.
func (m Model) fetch(p fetcher.Pending) tea.Cmd {
	log := m.cfg.Log
	return func() tea.Msg {
		ctx, cancel := timeouts.WithTimeout(context.Background(), timeouts.Fetch(), log, "tui fetch")
		defer cancel()
		return fetchDoneMsg{c: p.Run(ctx)}
	}
}

// refetchIf issues a fetch when the controller reported a query change.
func (m Model) refetchIf(changed bool) tea.Cmd {
	if !changed {
		return nil
	}
	if p, ok := m.orch.QueryChanged(m.ctrl.Query()); ok {
		return m.fetch(p)
	}
	return nil
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetWidth(max(20, msg.Width-2))
		m.table.SetHeight(max(5, msg.Height-10))
		return m, nil

	case fetchDoneMsg:
		if !m.orch.Apply(msg.c) {
			return m, nil
		}
		if msg.c.Result.Err != nil {
			m.ctrl.ObserveTotals(nil)
		} else if env := msg.c.Result.Data; env != nil {
			m.ctrl.ObserveTotals(&env.Meta)
			m.shownTab = querystate.Tab(msg.c.Query.Type)
		}
		m.refreshTable()
		return m, nil

	case searchSettledMsg:
		return m, m.refetchIf(m.ctrl.CommitSearch(msg.ev))

	case exportDoneMsg:
		if msg.err != nil {
			m.cfg.Log.Warn("csv export failed", zap.String("file", msg.path), zap.Error(msg.err))
			m.flashError("export failed: " + msg.err.Error())
			return m, nil
		}
		m.cfg.Log.Info("csv export", zap.String("file", msg.path), zap.Int("rows", msg.rows))
		m.flash(plural(msg.rows, "row") + " exported to " + msg.path)
		return m, nil

	case copyDoneMsg:
		if !msg.ok {
			m.flashError("clipboard unavailable; try e to export a CSV file")
			return m, nil
		}
		m.flash(plural(msg.rows, "row") + " copied; paste into the spreadsheet that just opened")
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) flash(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) flashError(s string) {
	m.status = s
	m.statusErr = true
}

// refreshTable rebuilds the rows from the last successful data. Rows are
// cleared before the columns change so the table never renders a row
// against a different column set.
func (m *Model) refreshTable() {
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(m.shownTab))
	m.table.SetRows(rowsFor(m.shownTab, m.orch.Data(), m.cfg.Location))
	m.table.GotoTop()
}

// displayed counts the rows the server returned for the shown tab. The
// "all" tab pages both lists in lockstep, so its count is the longer list.
func displayed(tab querystate.Tab, env *models.Envelope) int {
	if env == nil {
		return 0
	}
	switch tab {
	case querystate.TabRequests:
		return len(env.Requests)
	case querystate.TabContributions:
		return len(env.Contributions)
	}
	return max(len(env.Requests), len(env.Contributions))
}
