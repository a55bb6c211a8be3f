package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "AI documentation chatbot with retrieval-augmented answers",
	Long: `Docchat ingests documentation from webpages and local files, indexes it
in a persistent local vector store, and answers questions about it
through a conversational interface. Without provider credentials it
still answers every question using built-in offline responses.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".docchat.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
