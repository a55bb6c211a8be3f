package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the documentation knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntP("limit", "k", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := newBot(cfg, false)
	if err != nil {
		return err
	}

	loaded, err := bot.LoadIndex(ctx)
	if err != nil {
		return err
	}
	if !loaded {
		fmt.Println("No knowledge base found. Run `docchat setup` first to build it.")
		return nil
	}

	results, err := bot.SearchDocuments(ctx, query, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		printJSON(results)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found. Run `docchat setup` first to build the index.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%d. %s (similarity %.2f)\n", i+1, r.Document.Metadata.Title, r.Similarity)
		fmt.Printf("   Source: %s\n", r.Document.Metadata.Source)
		fmt.Printf("   %s\n\n", r.Document.Content)
	}
	return nil
}
