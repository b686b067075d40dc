// Package recipes is the application layer: it reads recipes through the
// query cache and keeps favorites and the recently viewed list in step.
package recipes

import (
	"context"
	"errors"
	"time"

	"github.com/alexisbeaulieu97/recipedia/internal/favorites"
	"github.com/alexisbeaulieu97/recipedia/internal/logger"
	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/ports"
	"github.com/alexisbeaulieu97/recipedia/internal/query"
	"github.com/alexisbeaulieu97/recipedia/internal/recent"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
)

// Service exposes the recipe use cases.
type Service struct {
	api       mealdb.API
	cache     *query.Client
	store     *storage.Accessor
	favorites *favorites.Set
	recent    *recent.List
	now       func() time.Time
	logger    ports.Logger
}

// Deps wires a Service.
type Deps struct {
	API       mealdb.API
	Cache     *query.Client
	Store     *storage.Accessor
	Namespace string
	Now       func() time.Time
	Logger    ports.Logger
}

// NewService builds a Service. A nil cache gets a default one.
func NewService(deps Deps) *Service {
	log := logger.OrNoOp(deps.Logger)
	cache := deps.Cache
	if cache == nil {
		cache = query.New(query.Options{Logger: log})
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		api:       deps.API,
		cache:     cache,
		store:     deps.Store,
		favorites: favorites.New(deps.Store, deps.Namespace, log),
		recent:    recent.New(deps.Store, deps.Namespace, log),
		now:       now,
		logger:    log.With("component", "recipes"),
	}
}

// Search returns recipes matching term. Terms shorter than MinSearchLength
// return no results without touching the API.
func (s *Service) Search(ctx context.Context, term string) ([]mealdb.Recipe, error) {
	found, err := query.Fetch(ctx, s.cache, SearchQuery(s.api, term))
	if errors.Is(err, query.ErrDisabled) {
		return []mealdb.Recipe{}, nil
	}
	return found, err
}

// Recipe looks up id and records it as viewed when found. A nil recipe with a
// nil error means not found.
func (s *Service) Recipe(ctx context.Context, id string) (*mealdb.Recipe, error) {
	found, err := query.Fetch(ctx, s.cache, DetailQuery(s.api, id))
	if errors.Is(err, query.ErrDisabled) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if found != nil {
		s.RecordView(*found)
	}
	return found, nil
}

// RecordView pushes r onto the recently viewed list.
func (s *Service) RecordView(r mealdb.Recipe) []recent.Entry {
	return s.recent.Record(recent.Entry{ID: r.ID, Name: r.Name, Image: r.Image})
}

// Random returns up to count distinct random recipes; count <= 0 means
// DefaultRandomCount.
func (s *Service) Random(ctx context.Context, count int) ([]mealdb.Recipe, error) {
	if count <= 0 {
		count = DefaultRandomCount
	}
	return query.Fetch(ctx, s.cache, RandomQuery(s.api, count, s.now()))
}

// Popular returns the popular selection.
func (s *Service) Popular(ctx context.Context) ([]mealdb.Recipe, error) {
	return query.Fetch(ctx, s.cache, PopularQuery(s.api))
}

// Related returns recipes in category other than id.
func (s *Service) Related(ctx context.Context, category, id string) ([]mealdb.Recipe, error) {
	found, err := query.Fetch(ctx, s.cache, RelatedQuery(s.api, category, id))
	if errors.Is(err, query.ErrDisabled) {
		return []mealdb.Recipe{}, nil
	}
	return found, err
}

// Favorites resolves the favorited ids to recipes.
func (s *Service) Favorites(ctx context.Context) ([]mealdb.Recipe, error) {
	found, err := query.Fetch(ctx, s.cache, ManyQuery(s.api, s.favorites.IDs()))
	if errors.Is(err, query.ErrDisabled) {
		return []mealdb.Recipe{}, nil
	}
	return found, err
}

// FavoriteIDs lists the favorited ids.
func (s *Service) FavoriteIDs() []string {
	return s.favorites.IDs()
}

// IsFavorite reports whether id is favorited.
func (s *Service) IsFavorite(id string) bool {
	return s.favorites.IsFavorite(id)
}

// ToggleFavorite flips id and returns the new state.
func (s *Service) ToggleFavorite(ctx context.Context, id string) bool {
	state := s.favorites.Toggle(id)
	s.logger.Debug(ctx, "favorite toggled", "recipe_id", id, "favorite", state)
	return state
}

// Recent returns the recently viewed list, newest first.
func (s *Service) Recent() []recent.Entry {
	return s.recent.Entries()
}

// Storage returns the accessor backing favorites and the recent list.
func (s *Service) Storage() *storage.Accessor {
	return s.store
}

// CacheStats summarizes the query cache.
func (s *Service) CacheStats() query.Stats {
	return s.cache.Stats()
}

// ClearCache drops every cached query.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// InvalidateSearches marks cached searches stale.
func (s *Service) InvalidateSearches() {
	s.cache.Invalidate(KeyRoot, "search")
}

// InvalidateRandom marks cached random draws stale.
func (s *Service) InvalidateRandom() {
	s.cache.Invalidate(KeyRoot, "random")
}

// Reset wipes persisted state and the cache.
func (s *Service) Reset(ctx context.Context) {
	s.store.Clear()
	s.favorites.Load()
	s.cache.Clear()
	s.logger.Info(ctx, "state reset")
}
