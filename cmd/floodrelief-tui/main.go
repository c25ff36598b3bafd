// Command floodrelief-tui is the terminal client for the flood relief
// dashboard. It reads the same configuration as the web server.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dalemusser/floodrelief/internal/app/bootstrap"
	"github.com/dalemusser/floodrelief/internal/app/tui"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "floodrelief-tui:", err)
		os.Exit(1)
	}
}

func run() error {
	// Config problems are reported on stderr before the screen is taken over.
	startLog, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	coreCfg, appCfg, err := bootstrap.LoadConfig(startLog)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := bootstrap.ValidateConfig(coreCfg, appCfg, startLog); err != nil {
		return err
	}
	_ = startLog.Sync()

	logger, err := fileLogger(appCfg.TUILogPath)
	if err != nil {
		return fmt.Errorf("open log %s: %w", appCfg.TUILogPath, err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	deps, err := bootstrap.ConnectDB(ctx, coreCfg, appCfg, logger)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer deps.API.CloseIdleConnections()
	bootstrap.ApplySettings(appCfg, logger)

	model := tui.New(tui.Config{
		Source:    deps.API,
		Initial:   appCfg.DefaultState(),
		Debounce:  appCfg.SearchDebounce,
		Location:  appCfg.Location(),
		ExportDir: appCfg.ExportDir,
		SiteName:  appCfg.SiteName,
		Log:       logger,
	})
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen())
	model.Attach(program)

	logger.Info("terminal client started", zap.String("api_url", appCfg.APIURL))
	_, err = program.Run()
	return err
}

// fileLogger writes JSON logs to path so they do not interfere with the
// terminal UI.
func fileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}
