package embeddings

import (
	"context"
	"log"
	"os"

	chromem "github.com/philippgille/chromem-go"

	"docchat/internal/config"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// NewFromConfig selects the embedding backend once at startup: the hosted
// OpenAI embedder when OPENAI_API_KEY is present, otherwise the local
// Ollama embedder. The choice is not re-evaluated per call.
func NewFromConfig(cfg *config.Config) Embedder {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		log.Printf("embeddings: using hosted model %s", cfg.EmbeddingModel)
		return NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel)
	}

	log.Printf("embeddings: no OPENAI_API_KEY, using local model %s", cfg.LocalEmbeddingModel)
	return NewOllamaEmbedder(cfg.LocalEmbeddingModel, os.Getenv("OLLAMA_HOST"))
}

// ToChromemFunc converts an Embedder into a chromem.EmbeddingFunc.
// chromem-go expects a function that embeds a single text at a time.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		results, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, nil
		}
		return results[0], nil
	}
}
