package config

// DefaultSources are the documentation entry points indexed out of the box.
var DefaultSources = []string{
	"https://python.langchain.com/docs/",
	"https://python.langchain.com/docs/get_started/introduction",
	"https://python.langchain.com/docs/concepts/",
	"https://python.langchain.com/docs/tutorials/rag",
	"https://python.langchain.com/docs/how_to/",
	"https://langchain-ai.github.io/langgraph/",
	"https://docs.smith.langchain.com/",
	"https://platform.openai.com/docs/overview",
	"https://platform.openai.com/docs/api-reference/introduction",
	"https://docs.x.ai/",
	"https://docs.python.org/3/",
	"https://docs.pydantic.dev/latest/",
	"https://docs.trychroma.com/",
	"https://faiss.ai/",
	"https://fastapi.tiangolo.com/",
}

// DefaultSourceGlobs match the local files picked up from the sources directory.
var DefaultSourceGlobs = []string{"**/*.txt", "**/*.md"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:            ProviderOpenAI,
		Model:               "gpt-4o-mini",
		GrokModel:           "grok-beta",
		GrokAPIURL:          "https://api.x.ai/v1",
		Temperature:         0.7,
		MaxTokens:           1000,
		EmbeddingModel:      "text-embedding-3-small",
		LocalEmbeddingModel: "nomic-embed-text",
		ChunkSize:           1000,
		ChunkOverlap:        200,
		RetrievalK:          4,
		VectorStorePath:     "data/vector_store",
		HistoryPath:         "data/history.db",
		Sources:             DefaultSources,
		ExtraSourcesFile:    "data/sources/urls.txt",
		SourcesDir:          "data/sources",
		SourceGlobs:         DefaultSourceGlobs,
		Host:                "0.0.0.0",
		Port:                8000,
	}
}
