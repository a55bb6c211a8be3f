package cmd

import (
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show system status: model, index, and provider availability",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := newBot(cfg, false)
	if err != nil {
		return err
	}

	// Reflect the persisted index if one exists; a missing store is fine.
	if _, err := bot.LoadIndex(cmd.Context()); err != nil {
		return err
	}

	printJSON(map[string]any{
		"system":    bot.SystemInfo(),
		"providers": bot.ProviderStatus(),
	})
	return nil
}
