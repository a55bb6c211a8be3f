package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"docchat/internal/embeddings"
	"docchat/internal/history"
	"docchat/internal/vectordb"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the persisted knowledge base and chat transcript",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("keep-history", false, "keep the chat transcript")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	keepHistory, _ := cmd.Flags().GetBool("keep-history")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	index, err := vectordb.New(embeddings.NewFromConfig(cfg), cfg.VectorStorePath)
	if err != nil {
		return err
	}
	if err := index.Delete(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Removed vector store at %s.\n", cfg.VectorStorePath)

	if !keepHistory {
		transcript, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("opening transcript: %w", err)
		}
		defer transcript.Close()
		if err := transcript.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cleared chat transcript.")
	}
	return nil
}
