package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	logLevel   string
}

func newRootCmd(app *AppContext) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "recipedia",
		Short:         "Recipedia browses TheMealDB recipes from the terminal",
		Long:          "Recipedia browses TheMealDB recipes from the terminal. Run it without a command to open the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["skipSetup"] == "true" {
				return nil
			}
			interactive := cmd == cmd.Root() && len(args) == 0
			return app.Setup(cmd.Context(), flags, interactive)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, launch the browser
			if len(args) == 0 {
				ctx, logger := app.CommandContext(cmd, "command.browse")
				logger.Info(ctx, "launching browser")
				err := runBrowser(ctx, app, logger)
				if err != nil {
					logger.Error(ctx, "browser failed", "error", err)
				}
				return err
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to config file (default ~/.recipedia/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newRandomCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newPopularCmd(app))
	cmd.AddCommand(newRelatedCmd(app))
	cmd.AddCommand(newFavoritesCmd(app))
	cmd.AddCommand(newRecentCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
