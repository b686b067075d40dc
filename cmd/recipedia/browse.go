package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/boundary"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/browser"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

// newBrowserModel builds the browser wrapped in the global boundary.
func newBrowserModel(ctx context.Context, app *AppContext, logger ports.Logger) boundary.Model {
	development := app.Config.Development()
	report := func(r boundary.Report) {
		logger.Warn(ctx, "ui failure reported",
			"message", r.Message,
			"level", string(r.Level),
			"retries", r.Retries,
			"timestamp", r.Timestamp,
		)
	}

	root := theme.NewRoot(app.Detect)
	styles := components.NewStyles(components.PaletteFor(root.Apply(app.Themes.Mode())))

	opts := browser.Options{
		Context:     ctx,
		Logger:      logger,
		Development: development,
		Report:      report,
		Unicode:     supportsUnicode(os.Stdout),
	}

	return boundary.New(func() tea.Model {
		return browser.NewModel(app.Recipes, app.Themes, root, opts)
	}, boundary.Options{
		Level:       boundary.LevelGlobal,
		Development: development,
		Logger:      logger,
		Report:      report,
		Styles:      &styles,
		OnReload: func() {
			logger.Info(ctx, "reloading after failure")
			app.Recipes.ClearCache()
		},
	})
}

func runBrowser(ctx context.Context, app *AppContext, logger ports.Logger) error {
	m := newBrowserModel(ctx, app, logger)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error(ctx, "browser execution failed", "error", err)
		return fmt.Errorf("failed to run browser: %w", err)
	}

	logger.Info(ctx, "browser closed")
	return nil
}
