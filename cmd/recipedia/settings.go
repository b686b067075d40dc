package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/recipedia/internal/theme"
)

func newThemeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|system]",
		Short:     "Show or set the theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(theme.ModeLight), string(theme.ModeDark), string(theme.ModeSystem)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.theme")

			if len(args) == 1 {
				mode, err := theme.ParseMode(args[0])
				if err != nil {
					return newCommandError("set theme", fmt.Sprintf("parsing %q", args[0]), err, "Choose light, dark or system.")
				}
				app.Themes.SetMode(mode)
				logger.Info(ctx, "theme changed", "mode", string(mode))
			}

			mode := app.Themes.Mode()
			resolved := theme.Resolve(mode, app.Detect)
			if len(args) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s (%s).\n", mode, resolved)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s (%s)\n", mode, resolved)
			return nil
		},
	}

	return cmd
}

func newResetCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear favorites, recently viewed recipes and the theme preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, logger := app.CommandContext(cmd, "command.reset")

			app.Recipes.Reset(ctx)
			logger.Info(ctx, "local data cleared", "fallback_storage", app.Store.Fallback())
			fmt.Fprintln(cmd.OutOrStdout(), "Local data cleared.")
			return nil
		},
	}
}
