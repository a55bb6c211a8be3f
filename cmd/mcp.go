package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"docchat/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio for AI agent integration",
	Long: `Exposes the chatbot to MCP clients over stdio with three tools:
ask_docs, search_docs, and system_info. Stdout carries protocol
messages; logs go to stderr.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bot, err := newBot(cfg, false)
	if err != nil {
		return err
	}

	if loaded, err := bot.LoadIndex(cmd.Context()); err != nil {
		return err
	} else if !loaded {
		log.Printf("no knowledge base found at %s; run `docchat setup` first", cfg.VectorStorePath)
	}

	mcp.Version = Version
	return mcp.NewServer(bot).Serve()
}
