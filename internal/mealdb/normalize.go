package mealdb

import (
	"strconv"
	"strings"
)

func (m wireMeal) str(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// normalize compacts the flat wire record into a Recipe. Ingredient slots
// 1..20 are kept in order; empty or missing slots are skipped, and each kept
// ingredient carries the measure from the same slot.
func normalize(m wireMeal) Recipe {
	r := Recipe{
		ID:           m.str("idMeal"),
		Name:         m.str("strMeal"),
		Category:     m.str("strCategory"),
		Area:         m.str("strArea"),
		Instructions: m.str("strInstructions"),
		Image:        m.str("strMealThumb"),
		Ingredients:  []string{},
		YouTube:      strings.TrimSpace(m.str("strYoutube")),
		Source:       strings.TrimSpace(m.str("strSource")),
	}

	hasMeasure := false
	measures := make([]string, 0, MaxIngredients)
	for i := 1; i <= MaxIngredients; i++ {
		slot := strconv.Itoa(i)
		ingredient := strings.TrimSpace(m.str("strIngredient" + slot))
		if ingredient == "" {
			continue
		}
		measure := strings.TrimSpace(m.str("strMeasure" + slot))
		if measure != "" {
			hasMeasure = true
		}
		r.Ingredients = append(r.Ingredients, ingredient)
		measures = append(measures, measure)
	}
	if hasMeasure {
		r.Measures = measures
	}

	r.Tags = splitTags(m.str("strTags"))
	return r
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Measure returns the measure paired with ingredient i, or "".
func (r Recipe) Measure(i int) string {
	if i < 0 || i >= len(r.Measures) {
		return ""
	}
	return r.Measures[i]
}
