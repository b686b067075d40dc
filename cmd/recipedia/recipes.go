package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/recipedia/internal/recipes"
)

type randomOptions struct {
	listOptions
	count int
	fresh bool
}

func newRandomCmd(app *AppContext) *cobra.Command {
	opts := &randomOptions{}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a batch of unique random recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 1 {
				return newCommandError("fetch random recipes", "validating --count", fmt.Errorf("count must be at least 1, got %d", opts.count), "Pass a positive --count.")
			}

			ctx, logger := app.CommandContext(cmd, "command.random")
			if opts.fresh {
				app.Recipes.InvalidateRandom()
			}

			list, err := app.Recipes.Random(ctx, opts.count)
			if err != nil {
				logger.Error(ctx, "random recipes failed", "error", err)
				return newCommandError("fetch random recipes", "contacting TheMealDB", err, "Check your network connection and try again.")
			}
			logger.Info(ctx, "random recipes fetched", "count", len(list))
			return renderRecipes(cmd, app.Recipes, list, &opts.listOptions, "No recipes found.")
		},
	}

	opts.bind(cmd)
	cmd.Flags().IntVarP(&opts.count, "count", "n", recipes.DefaultRandomCount, "Number of recipes to fetch")
	cmd.Flags().BoolVar(&opts.fresh, "fresh", false, "Ignore the cached batch for this hour")

	return cmd
}

func newSearchCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search recipes by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.TrimSpace(strings.Join(args, " "))
			if !recipes.SearchEnabled(term) {
				return newCommandError("search", fmt.Sprintf("validating term %q", term),
					fmt.Errorf("search terms need at least %d characters", recipes.MinSearchLength),
					"Type a longer search term.")
			}

			ctx, logger := app.CommandContext(cmd, "command.search")
			list, err := app.Recipes.Search(ctx, term)
			if err != nil {
				logger.Error(ctx, "search failed", "term", term, "error", err)
				return newCommandError("search", fmt.Sprintf("searching for %q", term), err, "Check your network connection and try again.")
			}
			logger.Info(ctx, "search completed", "term", term, "count", len(list))
			return renderRecipes(cmd, app.Recipes, list, opts, "No recipes found.")
		},
	}

	opts.bind(cmd)
	return cmd
}

func newPopularCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.popular")
			list, err := app.Recipes.Popular(ctx)
			if err != nil {
				logger.Error(ctx, "popular recipes failed", "error", err)
				return newCommandError("fetch popular recipes", "contacting TheMealDB", err, "Check your network connection and try again.")
			}
			return renderRecipes(cmd, app.Recipes, list, opts, "No recipes found.")
		},
	}

	opts.bind(cmd)
	return cmd
}

func newRelatedCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "related <recipe-id>",
		Short: "Show recipes from the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			ctx, logger := app.CommandContext(cmd, "command.related")

			recipe, err := app.Recipes.Recipe(ctx, id)
			if err != nil {
				logger.Error(ctx, "lookup failed", "recipe_id", id, "error", err)
				return newCommandError("find related recipes", fmt.Sprintf("looking up recipe %q", id), err, "Check your network connection and try again.")
			}
			if recipe == nil {
				return newCommandError("find related recipes", fmt.Sprintf("looking up recipe %q", id), errors.New("recipe not found"), "Run 'recipedia search <term>' to find recipe IDs.")
			}

			list, err := app.Recipes.Related(ctx, recipe.Category, recipe.ID)
			if err != nil {
				logger.Error(ctx, "related recipes failed", "recipe_id", id, "error", err)
				return newCommandError("find related recipes", fmt.Sprintf("listing category %q", recipe.Category), err, "Check your network connection and try again.")
			}
			return renderRecipes(cmd, app.Recipes, list, opts, "No related recipes.")
		},
	}

	opts.bind(cmd)
	return cmd
}
