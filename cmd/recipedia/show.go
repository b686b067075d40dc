package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/tui/components"
)

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(app *AppContext) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show <recipe-id>",
		Short: "Show a recipe and remember it as recently viewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, app, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output recipe details as JSON")

	return cmd
}

func runShow(cmd *cobra.Command, app *AppContext, id string, opts *showOptions) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return newCommandError("show", "validating recipe ID", errors.New("recipe ID cannot be empty"), "Provide the recipe ID you wish to inspect.")
	}

	ctx, logger := app.CommandContext(cmd, "command.show")
	recipe, err := app.Recipes.Recipe(ctx, id)
	if err != nil {
		logger.Error(ctx, "lookup failed", "recipe_id", id, "error", err)
		return newCommandError("show", fmt.Sprintf("looking up recipe %q", id), err, "Check your network connection and try again.")
	}
	if recipe == nil {
		logger.Info(ctx, "recipe not found", "recipe_id", id)
		fmt.Fprintf(cmd.OutOrStdout(), "Recipe %s not found.\n", id)
		return nil
	}

	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(recipeJSON{Recipe: *recipe, Favorite: app.Recipes.IsFavorite(recipe.ID)})
	}

	return renderShowText(cmd, *recipe, app.Recipes.IsFavorite(recipe.ID))
}

func renderShowText(cmd *cobra.Command, r mealdb.Recipe, favorite bool) error {
	out := cmd.OutOrStdout()
	useUnicode := supportsUnicode(out)

	fmt.Fprintf(out, "%s %s\n", r.Name, components.Marker(favorite, useUnicode))
	fmt.Fprintf(out, "ID:       %s\n", r.ID)
	fmt.Fprintf(out, "Category: %s\n", valueOrFallback(r.Category, "(none)"))
	fmt.Fprintf(out, "Area:     %s\n", valueOrFallback(r.Area, "(none)"))
	if len(r.Tags) > 0 {
		fmt.Fprintf(out, "Tags:     %s\n", strings.Join(r.Tags, ", "))
	}

	fmt.Fprintf(out, "\nIngredients:\n")
	for i, ing := range r.Ingredients {
		if m := r.Measure(i); m != "" {
			fmt.Fprintf(out, "  - %s %s\n", m, ing)
		} else {
			fmt.Fprintf(out, "  - %s\n", ing)
		}
	}

	fmt.Fprintf(out, "\nInstructions:\n%s\n", valueOrFallback(r.Instructions, "(none)"))

	if r.YouTube != "" {
		fmt.Fprintf(out, "\nYouTube: %s\n", r.YouTube)
	}
	if r.Source != "" {
		fmt.Fprintf(out, "Source:  %s\n", r.Source)
	}
	return nil
}
