// Package mealdbtest provides an in-memory mealdb.API for tests.
package mealdbtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
)

// Fake serves recipes from memory and counts calls per operation.
type Fake struct {
	mu      sync.Mutex
	recipes map[string]mealdb.Recipe
	calls   map[string]int

	// Err, when set, is returned by every operation.
	Err error
}

var _ mealdb.API = (*Fake)(nil)

// New returns a Fake holding recipes.
func New(recipes ...mealdb.Recipe) *Fake {
	f := &Fake{recipes: make(map[string]mealdb.Recipe), calls: make(map[string]int)}
	for _, r := range recipes {
		f.recipes[r.ID] = r
	}
	return f
}

// Recipe builds a minimal recipe.
func Recipe(id, name, category string) mealdb.Recipe {
	return mealdb.Recipe{
		ID:          id,
		Name:        name,
		Category:    category,
		Area:        "Unknown",
		Image:       "https://img.test/" + id + ".jpg",
		Ingredients: []string{"Salt"},
		Measures:    []string{"pinch"},
	}
}

// SetErr changes the injected error.
func (f *Fake) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

// Calls returns how many times op ran.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *Fake) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.Err
}

func (f *Fake) sorted() []mealdb.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]mealdb.Recipe, 0, len(f.recipes))
	for _, r := range f.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *Fake) get(id string) (mealdb.Recipe, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	return r, ok
}

func (f *Fake) SearchByName(_ context.Context, term string) ([]mealdb.Recipe, error) {
	if err := f.enter("search"); err != nil {
		return nil, err
	}
	out := []mealdb.Recipe{}
	for _, r := range f.sorted() {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(strings.TrimSpace(term))) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) LookupByID(_ context.Context, id string) (*mealdb.Recipe, error) {
	if err := f.enter("lookup"); err != nil {
		return nil, err
	}
	r, ok := f.get(id)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *Fake) LookupMany(_ context.Context, ids []string) ([]mealdb.Recipe, error) {
	if err := f.enter("lookup_many"); err != nil {
		return nil, err
	}
	out := []mealdb.Recipe{}
	for _, id := range ids {
		if r, ok := f.get(id); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) Random(_ context.Context) (*mealdb.Recipe, error) {
	if err := f.enter("random"); err != nil {
		return nil, err
	}
	all := f.sorted()
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

// FetchRandomUnique returns the first count recipes by id.
func (f *Fake) FetchRandomUnique(_ context.Context, count int) ([]mealdb.Recipe, error) {
	if err := f.enter("random_unique"); err != nil {
		return nil, err
	}
	all := f.sorted()
	if count < len(all) {
		all = all[:count]
	}
	return all, nil
}

func (f *Fake) FetchMostPopular(ctx context.Context) ([]mealdb.Recipe, error) {
	if err := f.enter("popular"); err != nil {
		return nil, err
	}
	out := []mealdb.Recipe{}
	for _, id := range mealdb.MostPopularIDs {
		if r, ok := f.get(id); ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) FetchRelated(_ context.Context, category, excludeID string) ([]mealdb.Recipe, error) {
	if err := f.enter("related"); err != nil {
		return nil, err
	}
	out := []mealdb.Recipe{}
	for _, r := range f.sorted() {
		if r.Category == category && r.ID != excludeID && len(out) < mealdb.RelatedLimit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *Fake) ListCategory(_ context.Context, category string) ([]mealdb.Summary, error) {
	if err := f.enter("filter"); err != nil {
		return nil, err
	}
	out := []mealdb.Summary{}
	for _, r := range f.sorted() {
		if r.Category == category {
			out = append(out, mealdb.Summary{ID: r.ID, Name: r.Name, Image: r.Image})
		}
	}
	return out, nil
}
