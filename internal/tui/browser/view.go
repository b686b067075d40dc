package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

// headerHeight is the number of rows used by the title and search box.
const headerHeight = 4

// View renders the current screen
func (m Model) View() string {
	s := m.styles

	var body string
	switch m.screen {
	case ScreenDetail:
		body = m.detail.View()
	case ScreenFavorites:
		body = m.favoritesView()
	case ScreenHelp:
		body = m.helpView()
	default:
		body = m.homeView()
	}

	sections := []string{m.headerView(), s.Input.Render(m.input.View())}
	if m.input.Focused() {
		sections = append(sections, m.dropdownView())
	}
	sections = append(sections, "", body, "", m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	s := m.styles
	mode := m.root.Mode()
	label := string(m.root.Appearance())
	if string(mode) != label {
		label = fmt.Sprintf("%s (%s)", mode, label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.Title.Render("Recipedia"),
		"  ",
		s.Muted.Render("theme: "+label),
	)
}

// homeView renders the random grid with its loading, error and empty states.
func (m Model) homeView() string {
	s := m.styles
	header := s.Header.Render("Discover something new")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.gridView(m.recipes, m.cursor, m.loading, m.err, m.guard, "Maximum retries reached. Press n for a new batch."))
}

func (m Model) gridView(list []mealdb.Recipe, cursor int, loading bool, err error, guard components.RetryGuard, exhausted string) string {
	s := m.styles
	width := m.cardWidth()

	switch {
	case loading:
		cells := make([]string, recipes.DefaultRandomCount)
		for i := range cells {
			cells[i] = s.RenderSkeleton(width)
		}
		return m.spinner.View() + " " + s.Muted.Render("Loading recipes...") + "\n" + components.Grid(cells, m.opts.Columns)

	case err != nil:
		var b strings.Builder
		b.WriteString(s.Title.Render("Oh no! Something went wrong."))
		b.WriteString("\n\n")
		b.WriteString(s.Text.Render(err.Error()))
		b.WriteString("\n\n")
		if guard.Visible() {
			b.WriteString(s.Button.Render(fmt.Sprintf("[r] Try again (%d left)", guard.Remaining())))
		} else {
			b.WriteString(s.ErrorText.Render(exhausted))
		}
		return s.ErrorBanner.Render(b.String())

	case len(list) == 0:
		return s.Muted.Render("No recipes found.")
	}

	cells := make([]string, len(list))
	for i, r := range list {
		card := components.Card{
			Title:    r.Name,
			Subtitle: subtitle(r),
			Favorite: m.svc.IsFavorite(r.ID),
		}
		cells[i] = s.RenderCard(card, i == cursor, m.opts.Unicode, width)
	}
	return components.Grid(cells, m.opts.Columns)
}

func (m Model) favoritesView() string {
	s := m.styles
	header := s.Header.Render("Your favorites")
	if !m.favLoading && m.favErr == nil && len(m.favorites) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "",
			s.Muted.Render("No favorites yet. Press f on a recipe to save it."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "",
		m.gridView(m.favorites, m.favCursor, m.favLoading, m.favErr, m.favGuard, "Maximum retries reached. Press esc to go home."))
}

// dropdownView renders the search suggestions for the current input.
func (m Model) dropdownView() string {
	s := m.styles
	term := m.searchText()

	var lines []string
	switch {
	case term != "" && !recipes.SearchEnabled(term):
		lines = append(lines, s.Muted.Render(fmt.Sprintf("Type at least %d characters", recipes.MinSearchLength)))
	case term != "" && m.searchLoading:
		lines = append(lines, m.spinner.View()+" "+s.Muted.Render("Searching..."))
	case term != "" && m.searchErr != nil:
		lines = append(lines, s.ErrorText.Render("Search failed: "+m.searchErr.Error()))
	case term != "" && len(m.results) == 0:
		lines = append(lines, s.Muted.Render("No recipes found."))
	default:
		section := ""
		for i, item := range m.dropdownItems() {
			if item.Section != section && term == "" {
				section = item.Section
				lines = append(lines, s.Section.Render(section))
			}
			row := "  " + item.Name
			if i == m.dropCursor {
				row = s.Selected.Render("> " + item.Name)
			} else if term != "" && item.Section != "" {
				row += " " + s.Muted.Render(item.Section)
			}
			lines = append(lines, row)
		}
		if len(lines) == 0 {
			lines = append(lines, s.Muted.Render("Start typing to search"))
		}
	}
	return s.Dropdown.Render(strings.Join(lines, "\n"))
}

func (m Model) helpView() string {
	s := m.styles
	bindings := [][2]string{
		{"/", "Search"},
		{"esc", "Close search / back"},
		{"arrows hjkl", "Move"},
		{"enter", "Open recipe"},
		{"f", "Favorites (toggle on a recipe)"},
		{"n", "New random batch"},
		{"r", "Retry"},
		{"1-3", "Open related recipe"},
		{"t", "Cycle theme"},
		{"?", "Help"},
		{"q", "Quit"},
	}
	lines := []string{s.Header.Render("Keyboard shortcuts"), ""}
	for _, b := range bindings {
		lines = append(lines, s.HelpKey.Render(fmt.Sprintf("%-12s", b[0]))+s.HelpDesc.Render(b[1]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	s := m.styles
	var keys [][2]string
	switch {
	case m.input.Focused():
		keys = [][2]string{{"↑/↓", "select"}, {"enter", "open"}, {"esc", "close"}}
	case m.screen == ScreenDetail:
		keys = [][2]string{{"f", "favorite"}, {"1-3", "related"}, {"esc", "back"}, {"t", "theme"}, {"q", "quit"}}
	default:
		keys = [][2]string{{"/", "search"}, {"enter", "open"}, {"f", "favorites"}, {"n", "new"}, {"t", "theme"}, {"?", "help"}, {"q", "quit"}}
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, s.HelpKey.Render(k[0])+" "+s.HelpDesc.Render(k[1]))
	}
	return s.Footer.Render(strings.Join(parts, "  "))
}

func subtitle(r mealdb.Recipe) string {
	switch {
	case r.Category != "" && r.Area != "":
		return r.Category + " · " + r.Area
	case r.Category != "":
		return r.Category
	default:
		return r.Area
	}
}
