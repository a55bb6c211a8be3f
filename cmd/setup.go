package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docchat/internal/vectordb"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Build the knowledge base from configured documentation sources",
	Long: `Fetches every configured webpage and local file, splits the text into
overlapping chunks, embeds them, and persists the vector index. An
existing index is reused unless --force-rebuild is given.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().Bool("force-rebuild", false, "rebuild the index even if one exists")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	forceRebuild, _ := cmd.Flags().GetBool("force-rebuild")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := newBot(cfg, true)
	if err != nil {
		return err
	}

	if err := bot.Setup(context.Background(), forceRebuild); err != nil {
		return err
	}

	vs := bot.SystemInfo()["vector_store"].(vectordb.Info)
	fmt.Printf("Knowledge base ready: %d chunks indexed with %s at %s.\n",
		vs.DocumentCount, vs.EmbeddingModel, vs.Path)
	return nil
}
