package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/boundary"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

// detailChrome is the number of rows around the scrolling body.
const detailChrome = 10

// detailModel shows one recipe. It runs inside a page boundary so a failure
// here never takes the rest of the browser down.
type detailModel struct {
	ctx     context.Context
	svc     RecipeService
	id      string
	styles  components.Styles
	unicode bool

	loading  bool
	recipe   *mealdb.Recipe
	err      error
	guard    components.RetryGuard
	favorite bool

	related        []mealdb.Recipe
	relatedLoading bool
	relatedErr     error

	viewport viewport.Model
	width    int
	height   int
}

func newDetail(ctx context.Context, svc RecipeService, id string, styles components.Styles, unicode bool) detailModel {
	return detailModel{
		ctx:      ctx,
		svc:      svc,
		id:       id,
		styles:   styles,
		unicode:  unicode,
		loading:  true,
		guard:    components.NewRetryGuard(components.DefaultMaxRetries),
		favorite: svc.IsFavorite(id),
		viewport: viewport.New(76, 12),
		width:    80,
		height:   24,
	}
}

func (d detailModel) Init() tea.Cmd {
	return loadDetailCmd(d.ctx, d.svc, d.id)
}

func (d detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
		d.resize()
		return d, nil

	case boundary.StylesChangedMsg:
		d.styles = msg.Styles
		d.refreshBody()
		return d, nil

	case DetailLoadedMsg:
		if msg.ID != d.id {
			return d, nil
		}
		d.loading = false
		d.recipe, d.err = msg.Recipe, msg.Err
		if d.err != nil || d.recipe == nil {
			return d, nil
		}
		d.refreshBody()
		d.relatedLoading = true
		return d, loadRelatedCmd(d.ctx, d.svc, d.recipe.Category, d.recipe.ID)

	case RelatedLoadedMsg:
		if msg.ID != d.id {
			return d, nil
		}
		d.relatedLoading = false
		d.related, d.relatedErr = msg.Recipes, msg.Err
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d detailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		return d, backCmd

	case "f", " ", "space":
		if d.recipe != nil {
			d.favorite = d.svc.ToggleFavorite(d.ctx, d.recipe.ID)
		}
		return d, nil

	case "r":
		if d.err == nil || !d.guard.Try(nil) {
			return d, nil
		}
		d.loading, d.err = true, nil
		return d, loadDetailCmd(d.ctx, d.svc, d.id)

	case "1", "2", "3":
		idx := int(msg.Runes[0] - '1')
		if idx < len(d.related) {
			return d, openRecipeCmd(d.related[idx].ID)
		}
		return d, nil
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *detailModel) resize() {
	w := d.width - 4
	if w < 20 {
		w = 20
	}
	h := d.height - detailChrome
	if h < 5 {
		h = 5
	}
	d.viewport.Width = w
	d.viewport.Height = h
	d.refreshBody()
}

// refreshBody renders ingredients, instructions and links into the viewport.
func (d *detailModel) refreshBody() {
	if d.recipe == nil {
		return
	}
	s := d.styles
	r := d.recipe
	var b strings.Builder

	b.WriteString(s.Section.Render("Ingredients"))
	b.WriteString("\n")
	for i, ing := range r.Ingredients {
		line := "• " + ing
		if m := r.Measure(i); m != "" {
			line = fmt.Sprintf("• %s %s", s.Muted.Render(m), ing)
		}
		b.WriteString(s.Text.Render(line))
		b.WriteString("\n")
	}

	if r.Instructions != "" {
		b.WriteString("\n")
		b.WriteString(s.Section.Render("Instructions"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(d.viewport.Width).Render(r.Instructions))
		b.WriteString("\n")
	}

	if r.YouTube != "" || r.Source != "" {
		b.WriteString("\n")
		if r.YouTube != "" {
			b.WriteString(s.Muted.Render("YouTube: ") + s.Link.Render(r.YouTube) + "\n")
		}
		if r.Source != "" {
			b.WriteString(s.Muted.Render("Source:  ") + s.Link.Render(r.Source) + "\n")
		}
	}

	d.viewport.SetContent(b.String())
}

func (d detailModel) View() string {
	s := d.styles

	switch {
	case d.loading:
		return s.Muted.Render("Loading recipe...")

	case d.err != nil:
		var b strings.Builder
		b.WriteString(s.Title.Render("Oh no! Something went wrong."))
		b.WriteString("\n\n")
		b.WriteString(s.Text.Render(d.err.Error()))
		b.WriteString("\n\n")
		if d.guard.Visible() {
			b.WriteString(s.Button.Render(fmt.Sprintf("[r] Try again (%d left)", d.guard.Remaining())))
		} else {
			b.WriteString(s.ErrorText.Render("Maximum retries reached."))
		}
		return s.ErrorBanner.Render(b.String())

	case d.recipe == nil:
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("Recipe not found"),
			s.Muted.Render("The recipe you're looking for doesn't exist."),
			"",
			s.HelpKey.Render("esc")+" "+s.HelpDesc.Render("Back"),
		)
	}

	r := d.recipe
	marker := s.Muted.Render(components.Marker(d.favorite, d.unicode))
	if d.favorite {
		marker = s.Favorite.Render(components.Marker(true, d.unicode))
	}

	var badges []string
	for _, b := range []string{r.Category, r.Area} {
		if b != "" {
			badges = append(badges, s.Badge.Render(b))
		}
	}
	var tags []string
	for _, t := range r.Tags {
		tags = append(tags, "#"+t)
	}

	parts := []string{
		s.Title.Render(r.Name) + " " + marker,
		strings.Join(badges, " "),
	}
	if len(tags) > 0 {
		parts = append(parts, s.Muted.Render(strings.Join(tags, " ")))
	}
	parts = append(parts, "", d.viewport.View(), "", d.relatedView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (d detailModel) relatedView() string {
	s := d.styles
	header := s.Section.Render("Related recipes")
	switch {
	case d.relatedLoading:
		return header + "\n" + s.Muted.Render("Loading...")
	case d.relatedErr != nil:
		return header + "\n" + s.ErrorText.Render("! This section failed to load.")
	case len(d.related) == 0:
		return header + "\n" + s.Muted.Render("No related recipes.")
	}
	lines := []string{header}
	for i, r := range d.related {
		lines = append(lines, s.Selected.Render(fmt.Sprintf("[%d]", i+1))+" "+s.Text.Render(r.Name))
	}
	return strings.Join(lines, "\n")
}
