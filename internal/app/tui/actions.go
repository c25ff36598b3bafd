// internal/app/tui/actions.go
package tui

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/floodrelief/internal/app/system/csvutil"
)

// currentTable is the export table for the rows on screen.
func (m Model) currentTable() (csvutil.Table, bool) {
	env := m.orch.Data()
	if env == nil {
		return csvutil.Table{}, false
	}
	tbl := csvutil.TableFor(string(m.shownTab), env, m.cfg.Location)
	return tbl, !tbl.Empty()
}

// exportCSV writes the current page to ExportDir as a timestamped CSV file.
func (m Model) exportCSV() (tea.Model, tea.Cmd) {
	tbl, ok := m.currentTable()
	if !ok {
		m.flashError("nothing to export")
		return m, nil
	}
	name := csvutil.FileName(tbl.Kind, m.cfg.Clock.Now().In(m.cfg.Location))
	path := filepath.Join(m.cfg.ExportDir, name)
	write := m.writeFn
	return m, func() tea.Msg {
		return exportDoneMsg{path: path, rows: len(tbl.Rows), err: write(path, tbl)}
	}
}

// copyTSV places the current page on the clipboard as TSV and opens a
// blank spreadsheet to paste it into.
func (m Model) copyTSV() (tea.Model, tea.Cmd) {
	tbl, ok := m.currentTable()
	if !ok {
		m.flashError("nothing to copy")
		return m, nil
	}
	tsv := tbl.TSV()
	copyFn, log := m.copyFn, m.cfg.Log
	return m, func() tea.Msg {
		return copyDoneMsg{ok: copyFn(tsv, log), rows: len(tbl.Rows)}
	}
}

func writeCSVFile(path string, t csvutil.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
