package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

type listOptions struct {
	jsonOutput bool
}

func (o *listOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.jsonOutput, "json", false, "Output in JSON format")
}

type recipeJSON struct {
	mealdb.Recipe
	Favorite bool `json:"favorite"`
}

type listJSONPayload struct {
	Version string       `json:"version"`
	Count   int          `json:"count"`
	Recipes []recipeJSON `json:"recipes"`
}

func renderRecipes(cmd *cobra.Command, svc *recipes.Service, list []mealdb.Recipe, opts *listOptions, empty string) error {
	if opts.jsonOutput {
		return renderRecipesJSON(cmd, svc, list)
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), empty)
		return nil
	}
	return renderRecipeTable(cmd, svc, list)
}

func renderRecipeTable(cmd *cobra.Command, svc *recipes.Service, list []mealdb.Recipe) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tCATEGORY\tAREA\tFAV")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, r := range list {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			valueOrFallback(r.Name, "(no name)"),
			valueOrFallback(r.Category, "-"),
			valueOrFallback(r.Area, "-"),
			components.Marker(svc.IsFavorite(r.ID), useUnicode),
		)
	}

	return writer.Flush()
}

func renderRecipesJSON(cmd *cobra.Command, svc *recipes.Service, list []mealdb.Recipe) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(list),
		Recipes: make([]recipeJSON, len(list)),
	}
	for i, r := range list {
		payload.Recipes[i] = recipeJSON{Recipe: r, Favorite: svc.IsFavorite(r.ID)}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
