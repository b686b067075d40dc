package browser

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/boundary"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// System messages
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = min(40, max(10, msg.Width-8))
		if m.screen == ScreenDetail {
			return m, m.updateDetail(m.detailSize())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case boundary.HomeMsg:
		m.screen, m.prev = ScreenHome, ScreenHome
		m.input.Blur()
		return m, nil

	case boundary.StylesChangedMsg:
		m.styles = msg.Styles
		m.spinner.Style = msg.Styles.Spinner
		if m.screen == ScreenDetail {
			return m, m.updateDetail(msg)
		}
		return m, nil

	// Data messages
	case RandomLoadedMsg:
		m.loading = false
		m.recipes, m.err = msg.Recipes, msg.Err
		if msg.Err != nil {
			m.logger.Warn(m.ctx, "random recipes failed", "error", msg.Err, "attempts", m.guard.Attempts())
		} else {
			m.guard.Reset()
		}
		m.cursor = 0
		return m, nil

	case PopularLoadedMsg:
		if msg.Err != nil {
			m.logger.Warn(m.ctx, "popular recipes failed", "error", msg.Err)
			return m, nil
		}
		m.popular = msg.Recipes
		return m, nil

	case FavoritesLoadedMsg:
		m.favLoading = false
		m.favorites, m.favErr = msg.Recipes, msg.Err
		if msg.Err != nil {
			m.logger.Warn(m.ctx, "favorites failed", "error", msg.Err, "attempts", m.favGuard.Attempts())
		} else {
			m.favGuard.Reset()
		}
		if m.favCursor >= len(m.favorites) {
			m.favCursor = 0
		}
		return m, nil

	// Search messages
	case SearchDebouncedMsg:
		if msg.Seq != m.seq || !recipes.SearchEnabled(msg.Term) {
			return m, nil
		}
		return m, searchCmd(m.ctx, m.svc, msg.Seq, msg.Term)

	case SearchResultMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.searchLoading = false
		m.results, m.searchErr = msg.Recipes, msg.Err
		m.dropCursor = 0
		return m, nil

	// Navigation messages
	case OpenRecipeMsg:
		return m.openDetail(msg.ID)

	case BackMsg:
		return m.goBack()

	case DetailLoadedMsg, RelatedLoadedMsg:
		if m.screen == ScreenDetail {
			return m, m.updateDetail(msg)
		}
		return m, nil
	}

	if m.screen == ScreenDetail {
		return m, m.updateDetail(msg)
	}
	return m, nil
}

// handleKeyPress routes keys to the search box, the detail page or the
// browser itself.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.input.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.screen == ScreenDetail {
		switch key {
		case "t":
			return m.toggleTheme()
		case "q":
			return m, tea.Quit
		}
		return m, m.updateDetail(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "/":
		m.screen = ScreenHome
		cmd := m.input.Focus()
		return m, cmd

	case "t":
		return m.toggleTheme()

	case "?":
		if m.screen == ScreenHelp {
			m.screen = m.prev
			return m, nil
		}
		m.prev = m.screen
		m.screen = ScreenHelp
		return m, nil

	case "f":
		if m.screen == ScreenFavorites {
			return m, nil
		}
		m.prev = m.screen
		m.screen = ScreenFavorites
		m.favLoading = true
		return m, tea.Batch(loadFavoritesCmd(m.ctx, m.svc), m.spinner.Tick)

	case "esc":
		if m.screen != ScreenHome {
			m.screen = ScreenHome
		}
		return m, nil

	case "up", "k":
		m.move(0, -1)
		return m, nil
	case "down", "j":
		m.move(0, 1)
		return m, nil
	case "left", "h":
		m.move(-1, 0)
		return m, nil
	case "right", "l":
		m.move(1, 0)
		return m, nil

	case "enter":
		if r, ok := m.selectedRecipe(); ok && (m.screen == ScreenHome || m.screen == ScreenFavorites) {
			return m.openDetail(r.ID)
		}
		return m, nil

	case "r":
		return m.retry()

	case "n":
		if m.screen != ScreenHome || m.loading {
			return m, nil
		}
		m.svc.InvalidateRandom()
		m.guard.Reset()
		m.loading, m.err = true, nil
		return m, tea.Batch(loadRandomCmd(m.ctx, m.svc, m.opts.RandomCount), m.spinner.Tick)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		return m, nil

	case "up":
		if m.dropCursor > 0 {
			m.dropCursor--
		}
		return m, nil

	case "down":
		if m.dropCursor < len(m.dropdownItems())-1 {
			m.dropCursor++
		}
		return m, nil

	case "enter":
		items := m.dropdownItems()
		if m.dropCursor < len(items) {
			return m.openDetail(items[m.dropCursor].ID)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.queryChanged())
}

// queryChanged starts a new input revision. Only the tick scheduled for the
// latest revision triggers a search, and only at three characters or more.
func (m *Model) queryChanged() tea.Cmd {
	m.seq++
	m.results, m.searchErr = nil, nil
	m.dropCursor = 0

	term := m.searchText()
	m.searchTerm = term
	if !recipes.SearchEnabled(term) {
		m.searchLoading = false
		return nil
	}
	m.searchLoading = true
	return debounceCmd(m.seq, term, m.opts.Debounce)
}

func (m *Model) move(dx, dy int) {
	switch m.screen {
	case ScreenHome:
		m.cursor = moveCursor(m.cursor, len(m.recipes), m.opts.Columns, dx, dy)
	case ScreenFavorites:
		m.favCursor = moveCursor(m.favCursor, len(m.favorites), m.opts.Columns, dx, dy)
	}
}

// retry reloads a failed page while the guard allows it.
func (m Model) retry() (tea.Model, tea.Cmd) {
	switch m.screen {
	case ScreenHome:
		if m.err == nil || !m.guard.Try(nil) {
			return m, nil
		}
		m.logger.Info(m.ctx, "retrying random recipes", "attempt", m.guard.Attempts())
		m.loading, m.err = true, nil
		return m, tea.Batch(loadRandomCmd(m.ctx, m.svc, m.opts.RandomCount), m.spinner.Tick)
	case ScreenFavorites:
		if m.favErr == nil || !m.favGuard.Try(nil) {
			return m, nil
		}
		m.logger.Info(m.ctx, "retrying favorites", "attempt", m.favGuard.Attempts())
		m.favLoading, m.favErr = true, nil
		return m, loadFavoritesCmd(m.ctx, m.svc)
	}
	return m, nil
}

// toggleTheme cycles the stored mode, reapplies the root class and
// broadcasts the new styles to every boundary.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := theme.Next(m.themes.Mode())
	m.themes.SetMode(next)
	appearance := m.root.Apply(next)
	m.styles = components.NewStyles(components.PaletteFor(appearance))
	m.spinner.Style = m.styles.Spinner

	m.logger.Debug(m.ctx, "theme changed", "mode", string(next), "appearance", string(appearance))

	styles := m.styles
	return m, func() tea.Msg { return boundary.StylesChangedMsg{Styles: styles} }
}

func (m Model) openDetail(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}
	if m.screen != ScreenDetail {
		m.prev = m.screen
	}
	m.input.Blur()
	m.screen = ScreenDetail

	ctx, svc, styles, unicode := m.ctx, m.svc, m.styles, m.opts.Unicode
	m.detail = boundary.New(func() tea.Model {
		return newDetail(ctx, svc, id, styles, unicode)
	}, boundary.Options{
		Level:       boundary.LevelPage,
		Development: m.opts.Development,
		Logger:      m.logger,
		Report:      m.opts.Report,
		Styles:      &styles,
	})

	sizeCmd := m.updateDetail(m.detailSize())
	return m, tea.Batch(m.detail.Init(), sizeCmd)
}

func (m Model) goBack() (tea.Model, tea.Cmd) {
	m.screen = m.prev
	if m.screen == ScreenDetail || m.screen == ScreenHelp {
		m.screen = ScreenHome
	}
	m.prev = ScreenHome
	if m.screen == ScreenFavorites {
		m.favLoading = true
		return m, loadFavoritesCmd(m.ctx, m.svc)
	}
	return m, nil
}

// detailSize is the area left for the detail page below the header.
func (m Model) detailSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(m.height-headerHeight, 0)}
}

func (m *Model) updateDetail(msg tea.Msg) tea.Cmd {
	next, cmd := m.detail.Update(msg)
	if d, ok := next.(boundary.Model); ok {
		m.detail = d
	}
	return cmd
}
