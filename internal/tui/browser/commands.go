package browser

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// loadRandomCmd fetches the home grid
func loadRandomCmd(ctx context.Context, svc RecipeService, count int) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Random(ctx, count)
		return RandomLoadedMsg{Recipes: recipes, Err: err}
	}
}

// loadPopularCmd fetches the popular selection
func loadPopularCmd(ctx context.Context, svc RecipeService) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Popular(ctx)
		return PopularLoadedMsg{Recipes: recipes, Err: err}
	}
}

// loadFavoritesCmd resolves the favorite ids to recipes
func loadFavoritesCmd(ctx context.Context, svc RecipeService) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Favorites(ctx)
		return FavoritesLoadedMsg{Recipes: recipes, Err: err}
	}
}

// debounceCmd waits for typing to pause before searching
func debounceCmd(seq int, term string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchDebouncedMsg{Seq: seq, Term: term}
	})
}

// searchCmd runs a search for the given input revision
func searchCmd(ctx context.Context, svc RecipeService, seq int, term string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Search(ctx, term)
		return SearchResultMsg{Seq: seq, Term: term, Recipes: recipes, Err: err}
	}
}

// loadDetailCmd looks up one recipe
func loadDetailCmd(ctx context.Context, svc RecipeService, id string) tea.Cmd {
	return func() tea.Msg {
		recipe, err := svc.Recipe(ctx, id)
		return DetailLoadedMsg{ID: id, Recipe: recipe, Err: err}
	}
}

// loadRelatedCmd fetches recipes sharing a category
func loadRelatedCmd(ctx context.Context, svc RecipeService, category, id string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := svc.Related(ctx, category, id)
		return RelatedLoadedMsg{ID: id, Recipes: recipes, Err: err}
	}
}

func openRecipeCmd(id string) tea.Cmd {
	return func() tea.Msg { return OpenRecipeMsg{ID: id} }
}

func backCmd() tea.Msg {
	return BackMsg{}
}
