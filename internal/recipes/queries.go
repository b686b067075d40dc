package recipes

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/query"
)

// MinSearchLength is the shortest trimmed term that triggers a search.
const MinSearchLength = 3

// DefaultRandomCount is the size of the home grid.
const DefaultRandomCount = 9

// KeyRoot prefixes every recipe query key.
const KeyRoot = "recipes"

// SearchEnabled reports whether term is long enough to search for.
func SearchEnabled(term string) bool {
	return len([]rune(strings.TrimSpace(term))) >= MinSearchLength
}

// SearchQuery matches recipes by name. Terms differing only in case or
// surrounding space share a cache entry.
func SearchQuery(api mealdb.API, term string) query.Query[[]mealdb.Recipe] {
	term = strings.TrimSpace(term)
	return query.Query[[]mealdb.Recipe]{
		Key:       []string{KeyRoot, "search", strings.ToLower(term)},
		Enabled:   SearchEnabled(term),
		StaleTime: 30 * time.Minute,
		GCTime:    time.Hour,
		Fetch: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return api.SearchByName(ctx, term)
		},
	}
}

// DetailQuery looks up one recipe. A nil value means not found.
func DetailQuery(api mealdb.API, id string) query.Query[*mealdb.Recipe] {
	return query.Query[*mealdb.Recipe]{
		Key:       []string{KeyRoot, "detail", id},
		Enabled:   id != "",
		StaleTime: time.Hour,
		GCTime:    2 * time.Hour,
		Fetch: func(ctx context.Context) (*mealdb.Recipe, error) {
			return api.LookupByID(ctx, id)
		},
	}
}

// ManyQuery looks up several recipes at once.
func ManyQuery(api mealdb.API, ids []string) query.Query[[]mealdb.Recipe] {
	return query.Query[[]mealdb.Recipe]{
		Key:       append([]string{KeyRoot, "multiple"}, ids...),
		Enabled:   len(ids) > 0,
		StaleTime: time.Hour,
		GCTime:    2 * time.Hour,
		Fetch: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return api.LookupMany(ctx, ids)
		},
	}
}

// RandomQuery draws count distinct recipes. The key rolls over each hour so
// the grid changes through the day.
func RandomQuery(api mealdb.API, count int, now time.Time) query.Query[[]mealdb.Recipe] {
	hour := now.Unix() / int64(time.Hour/time.Second)
	return query.Query[[]mealdb.Recipe]{
		Key:       []string{KeyRoot, "random", strconv.Itoa(count), strconv.FormatInt(hour, 10)},
		Enabled:   true,
		StaleTime: 15 * time.Minute,
		GCTime:    30 * time.Minute,
		Fetch: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return api.FetchRandomUnique(ctx, count)
		},
	}
}

// PopularQuery fetches the popular selection with cache defaults.
func PopularQuery(api mealdb.API) query.Query[[]mealdb.Recipe] {
	return query.Query[[]mealdb.Recipe]{
		Key:     []string{KeyRoot, "popular"},
		Enabled: true,
		Fetch:   api.FetchMostPopular,
	}
}

// RelatedQuery fetches recipes sharing category with id.
func RelatedQuery(api mealdb.API, category, id string) query.Query[[]mealdb.Recipe] {
	return query.Query[[]mealdb.Recipe]{
		Key:       []string{KeyRoot, "related", category, id},
		Enabled:   category != "" && id != "",
		StaleTime: 30 * time.Minute,
		GCTime:    time.Hour,
		Fetch: func(ctx context.Context) ([]mealdb.Recipe, error) {
			return api.FetchRelated(ctx, category, id)
		},
	}
}
