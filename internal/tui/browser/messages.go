package browser

import (
	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
)

// Screen determines which page to render
type Screen int

const (
	ScreenHome Screen = iota
	ScreenDetail
	ScreenFavorites
	ScreenHelp
)

// Data Messages

// RandomLoadedMsg carries the home grid
type RandomLoadedMsg struct {
	Recipes []mealdb.Recipe
	Err     error
}

// PopularLoadedMsg carries the popular selection shown in the empty dropdown
type PopularLoadedMsg struct {
	Recipes []mealdb.Recipe
	Err     error
}

// FavoritesLoadedMsg carries the resolved favorites
type FavoritesLoadedMsg struct {
	Recipes []mealdb.Recipe
	Err     error
}

// Search Messages

// SearchDebouncedMsg fires once typing has paused. Seq identifies the input
// revision it was scheduled for; stale ticks are dropped.
type SearchDebouncedMsg struct {
	Seq  int
	Term string
}

// SearchResultMsg carries results for the input revision Seq
type SearchResultMsg struct {
	Seq     int
	Term    string
	Recipes []mealdb.Recipe
	Err     error
}

// Detail Messages

// DetailLoadedMsg carries a looked up recipe; a nil Recipe means not found
type DetailLoadedMsg struct {
	ID     string
	Recipe *mealdb.Recipe
	Err    error
}

// RelatedLoadedMsg carries recipes related to ID
type RelatedLoadedMsg struct {
	ID      string
	Recipes []mealdb.Recipe
	Err     error
}

// Navigation Messages

// OpenRecipeMsg requests the detail page for ID
type OpenRecipeMsg struct {
	ID string
}

// BackMsg requests return to the previous page
type BackMsg struct{}
