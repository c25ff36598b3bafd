// internal/app/system/clipboard/clipboard.go
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"go.uber.org/zap"
)

// SpreadsheetURL opens a blank spreadsheet that copied TSV can be pasted into.
const SpreadsheetURL = "https://sheets.new"

// Package-level so tests can swap them out.
var (
	writeAll = clipboard.WriteAll
	openURL  = browser.OpenURL
)

// Copy places text on the system clipboard. It reports false when the
// clipboard is unavailable or the write is refused; the failure is logged
// and never returned as an error.
func Copy(text string, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clipboard.Unsupported {
		logger.Warn("clipboard unsupported on this system")
		return false
	}
	if err := writeAll(text); err != nil {
		logger.Warn("clipboard write failed", zap.Error(err), zap.Int("bytes", len(text)))
		return false
	}
	logger.Debug("copied to clipboard", zap.Int("bytes", len(text)))
	return true
}

// CopyForSpreadsheet copies tsv and, only when that succeeded, opens the
// spreadsheet helper in a browser. It reports whether the copy succeeded.
func CopyForSpreadsheet(tsv string, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !Copy(tsv, logger) {
		return false
	}
	if err := openURL(SpreadsheetURL); err != nil {
		logger.Info("could not open spreadsheet helper", zap.Error(err))
	}
	return true
}
