// Package browser is the interactive recipe browser: a random grid on the
// home screen, a debounced search box with a dropdown, recipe details,
// favorites and a theme toggle.
package browser

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/boundary"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

const (
	// DefaultDebounce is the pause in typing before a search runs.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultColumns is the width of the recipe grid in cards.
	DefaultColumns = 3
)

// Options configures the browser.
type Options struct {
	Context     context.Context
	Logger      ports.Logger
	Development bool
	Report      boundary.Reporter
	// Unicode selects ♥/♡ favorite markers over ASCII.
	Unicode     bool
	Debounce    time.Duration
	RandomCount int
	Columns     int
}

// Model is the root browser model
type Model struct {
	ctx    context.Context
	svc    RecipeService
	themes *theme.Store
	root   *theme.Root
	opts   Options
	logger ports.Logger
	styles components.Styles

	// Navigation
	screen Screen
	prev   Screen

	// Home grid
	recipes []mealdb.Recipe
	loading bool
	err     error
	guard   components.RetryGuard
	cursor  int

	// Search
	input         textinput.Model
	seq           int
	searchTerm    string
	searchLoading bool
	results       []mealdb.Recipe
	searchErr     error
	dropCursor    int
	popular       []mealdb.Recipe

	// Favorites
	favorites  []mealdb.Recipe
	favLoading bool
	favErr     error
	favGuard   components.RetryGuard
	favCursor  int

	// Detail page, wrapped in its own boundary
	detail boundary.Model

	spinner spinner.Model

	// Dimensions
	width  int
	height int
}

// NewModel creates the browser and applies the stored theme to root.
func NewModel(svc RecipeService, themes *theme.Store, root *theme.Root, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RandomCount <= 0 {
		opts.RandomCount = recipes.DefaultRandomCount
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}

	appearance := root.Apply(themes.Mode())
	styles := components.NewStyles(components.PaletteFor(appearance))

	ti := textinput.New()
	ti.Placeholder = "Search recipes..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return Model{
		ctx:      opts.Context,
		svc:      svc,
		themes:   themes,
		root:     root,
		opts:     opts,
		logger:   logger.OrNoOp(opts.Logger).With("component", "browser"),
		styles:   styles,
		screen:   ScreenHome,
		prev:     ScreenHome,
		loading:  true,
		guard:    components.NewRetryGuard(components.DefaultMaxRetries),
		favGuard: components.NewRetryGuard(components.DefaultMaxRetries),
		input:    ti,
		spinner:  s,
		width:    80,
		height:   24,
	}
}

// Init starts the spinner and loads the home grid and popular recipes
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadRandomCmd(m.ctx, m.svc, m.opts.RandomCount),
		loadPopularCmd(m.ctx, m.svc),
	)
}

// Screen returns the active page.
func (m Model) Screen() Screen {
	return m.screen
}

// Styles returns the styles for the current theme.
func (m Model) Styles() components.Styles {
	return m.styles
}

// FavoritesGuard returns the favorites grid retry guard.
func (m Model) FavoritesGuard() components.RetryGuard {
	return m.favGuard
}

// Guard returns the home grid retry guard.
func (m Model) Guard() components.RetryGuard {
	return m.guard
}

// Detail returns the boundary around the detail page.
func (m Model) Detail() boundary.Model {
	return m.detail
}

// Helper Methods

func (m Model) cardWidth() int {
	w := m.width / m.opts.Columns
	if w < 16 {
		w = 16
	}
	return w
}

func (m Model) selectedRecipe() (mealdb.Recipe, bool) {
	list, cursor := m.recipes, m.cursor
	if m.screen == ScreenFavorites {
		list, cursor = m.favorites, m.favCursor
	}
	if cursor < 0 || cursor >= len(list) {
		return mealdb.Recipe{}, false
	}
	return list[cursor], true
}

// dropItem is one selectable row in the search dropdown.
type dropItem struct {
	ID      string
	Name    string
	Section string
}

// searchText is the trimmed search input.
func (m Model) searchText() string {
	return strings.TrimSpace(m.input.Value())
}

func (m Model) dropdownItems() []dropItem {
	term := m.searchText()
	if term == "" {
		var items []dropItem
		for _, e := range m.svc.Recent() {
			items = append(items, dropItem{ID: e.ID, Name: e.Name, Section: "Recently viewed"})
		}
		for _, r := range m.popular {
			items = append(items, dropItem{ID: r.ID, Name: r.Name, Section: "Most popular"})
		}
		return items
	}
	if !recipes.SearchEnabled(term) || m.searchLoading {
		return nil
	}
	items := make([]dropItem, 0, len(m.results))
	for _, r := range m.results {
		items = append(items, dropItem{ID: r.ID, Name: r.Name, Section: r.Category})
	}
	return items
}

// moveCursor moves a grid cursor by dx/dy within n cells.
func moveCursor(cursor, n, columns, dx, dy int) int {
	if n == 0 {
		return 0
	}
	next := cursor + dx + dy*columns
	if next < 0 || next >= n {
		return cursor
	}
	return next
}
