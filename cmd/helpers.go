package cmd

import (
	"fmt"

	"docchat/internal/chat"
	"docchat/internal/config"
	"docchat/internal/embeddings"
	"docchat/internal/ingest"
	"docchat/internal/llm"
	"docchat/internal/progress"
	"docchat/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `docchat init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newBot wires the bot from configuration. withProgress attaches a
// progress reporter for long ingestion runs.
func newBot(cfg *config.Config, withProgress bool) (*chat.Bot, error) {
	embedder := embeddings.NewFromConfig(cfg)

	index, err := vectordb.New(embedder, cfg.VectorStorePath)
	if err != nil {
		return nil, fmt.Errorf("creating vector index: %w", err)
	}

	var reporter progress.Reporter
	if withProgress {
		reporter = progress.NewReporter()
	}

	loader := ingest.New(cfg, reporter)
	return chat.New(cfg, index, loader, llm.NewRegistry(cfg)), nil
}
