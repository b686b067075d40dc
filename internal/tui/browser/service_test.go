package browser

import (
	"context"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/recent"
	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
)

var _ RecipeService = (*recipes.Service)(nil)

// stubService is an in-memory RecipeService that counts calls.
type stubService struct {
	mu        sync.Mutex
	recipes   []mealdb.Recipe
	favorites map[string]bool
	recent    []recent.Entry
	err       error
	panicOn   string
	calls     map[string]int
}

func newStubService(list ...mealdb.Recipe) *stubService {
	return &stubService{
		recipes:   list,
		favorites: make(map[string]bool),
		calls:     make(map[string]int),
	}
}

func (s *stubService) count(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
}

func (s *stubService) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubService) Random(_ context.Context, count int) ([]mealdb.Recipe, error) {
	s.count("random")
	if s.err != nil {
		return nil, s.err
	}
	if count > len(s.recipes) {
		count = len(s.recipes)
	}
	return append([]mealdb.Recipe(nil), s.recipes[:count]...), nil
}

func (s *stubService) Search(_ context.Context, term string) ([]mealdb.Recipe, error) {
	s.count("search")
	if s.err != nil {
		return nil, s.err
	}
	var out []mealdb.Recipe
	for _, r := range s.recipes {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubService) Recipe(_ context.Context, id string) (*mealdb.Recipe, error) {
	s.count("recipe")
	if s.err != nil {
		return nil, s.err
	}
	for _, r := range s.recipes {
		if r.ID == id {
			r := r
			s.recent = append([]recent.Entry{{ID: r.ID, Name: r.Name, Image: r.Image}}, s.recent...)
			return &r, nil
		}
	}
	return nil, nil
}

func (s *stubService) Related(_ context.Context, category, id string) ([]mealdb.Recipe, error) {
	s.count("related")
	var out []mealdb.Recipe
	for _, r := range s.recipes {
		if r.Category == category && r.ID != id && len(out) < mealdb.RelatedLimit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubService) Popular(_ context.Context) ([]mealdb.Recipe, error) {
	s.count("popular")
	return s.recipes, nil
}

func (s *stubService) Favorites(_ context.Context) ([]mealdb.Recipe, error) {
	s.count("favorites")
	var out []mealdb.Recipe
	for _, r := range s.recipes {
		if s.favorites[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubService) ToggleFavorite(_ context.Context, id string) bool {
	if id == s.panicOn {
		panic("favorites unavailable")
	}
	s.favorites[id] = !s.favorites[id]
	return s.favorites[id]
}

func (s *stubService) IsFavorite(id string) bool {
	return s.favorites[id]
}

func (s *stubService) Recent() []recent.Entry {
	return s.recent
}

func (s *stubService) InvalidateRandom() {
	s.count("invalidate_random")
}
