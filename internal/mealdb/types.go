// Package mealdb is a client for TheMealDB JSON API.
package mealdb

import "context"

// DefaultBaseURL is the free TheMealDB v1 endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// MaxIngredients is the number of ingredient slots in a wire record.
const MaxIngredients = 20

// Recipe is a normalized meal record.
type Recipe struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Area         string   `json:"area"`
	Instructions string   `json:"instructions"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	// Measures is aligned with Ingredients; an entry may be empty.
	Measures []string `json:"measures,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	YouTube  string   `json:"youtube,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// Summary is the reduced record returned by the filter endpoint.
type Summary struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Image string `json:"strMealThumb"`
}

// API is the set of recipe operations the rest of the program depends on.
type API interface {
	SearchByName(ctx context.Context, term string) ([]Recipe, error)
	LookupByID(ctx context.Context, id string) (*Recipe, error)
	LookupMany(ctx context.Context, ids []string) ([]Recipe, error)
	Random(ctx context.Context) (*Recipe, error)
	FetchRandomUnique(ctx context.Context, count int) ([]Recipe, error)
	FetchMostPopular(ctx context.Context) ([]Recipe, error)
	FetchRelated(ctx context.Context, category, excludeID string) ([]Recipe, error)
	ListCategory(ctx context.Context, category string) ([]Summary, error)
}

// MostPopularIDs is a fixed placeholder list; no popularity signal backs it.
var MostPopularIDs = []string{"52982", "52806", "53014", "52995"}

// RelatedLimit caps the number of related recipes.
const RelatedLimit = 3

// wireMeal is a raw meal record. Values are strings or null.
type wireMeal map[string]any

type mealsResponse struct {
	Meals []wireMeal `json:"meals"`
}

type filterResponse struct {
	Meals []Summary `json:"meals"`
}
