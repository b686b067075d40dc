package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFavoritesCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"favs"},
		Short:   "List favorite recipes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.favorites")
			list, err := app.Recipes.Favorites(ctx)
			if err != nil {
				logger.Error(ctx, "favorites lookup failed", "error", err)
				return newCommandError("list favorites", "resolving favorite recipes", err, "Check your network connection and try again.")
			}
			return renderRecipes(cmd, app.Recipes, list, opts, "No favorites yet.\n\nRun 'recipedia favorites toggle <recipe-id>' to save one.")
		},
	}

	opts.bind(cmd)
	cmd.AddCommand(newFavoritesToggleCmd(app))

	return cmd
}

func newFavoritesToggleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <recipe-id>",
		Short: "Add or remove a recipe from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return newCommandError("toggle favorite", "validating recipe ID", fmt.Errorf("recipe ID cannot be empty"), "Provide the recipe ID to toggle.")
			}

			ctx, logger := app.CommandContext(cmd, "command.favorites.toggle")
			if app.Recipes.ToggleFavorite(ctx, id) {
				logger.Info(ctx, "favorite added", "recipe_id", id)
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites.\n", id)
			} else {
				logger.Info(ctx, "favorite removed", "recipe_id", id)
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites.\n", id)
			}
			return nil
		},
	}
}

func newRecentCmd(app *AppContext) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently viewed recipes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := app.Recipes.Recent()

			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recently viewed recipes.")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME")
			for _, e := range entries {
				fmt.Fprintf(writer, "%s\t%s\n", e.ID, valueOrFallback(e.Name, "(no name)"))
			}
			return writer.Flush()
		},
	}

	opts.bind(cmd)
	return cmd
}
