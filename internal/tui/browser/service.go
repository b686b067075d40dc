package browser

import (
	"context"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/recent"
)

// RecipeService exposes the operations the browser requires.
type RecipeService interface {
	Random(ctx context.Context, count int) ([]mealdb.Recipe, error)
	Search(ctx context.Context, term string) ([]mealdb.Recipe, error)
	Recipe(ctx context.Context, id string) (*mealdb.Recipe, error)
	Related(ctx context.Context, category, id string) ([]mealdb.Recipe, error)
	Popular(ctx context.Context) ([]mealdb.Recipe, error)
	Favorites(ctx context.Context) ([]mealdb.Recipe, error)
	ToggleFavorite(ctx context.Context, id string) bool
	IsFavorite(id string) bool
	Recent() []recent.Entry
	InvalidateRandom()
}
