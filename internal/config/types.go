package config

// ProviderType identifies a language-model provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGrok   ProviderType = "grok"
	// ProviderDemo disables live model calls; the chatbot answers from its
	// built-in scripted responses only.
	ProviderDemo ProviderType = "demo"
)

// Config is the top-level docchat configuration, corresponding to .docchat.yml.
type Config struct {
	Provider    ProviderType `yaml:"provider" koanf:"provider"`
	Model       string       `yaml:"model" koanf:"model"`
	GrokModel   string       `yaml:"grok_model" koanf:"grok_model"`
	GrokAPIURL  string       `yaml:"grok_api_url" koanf:"grok_api_url"`
	Temperature float64      `yaml:"temperature" koanf:"temperature"`
	MaxTokens   int          `yaml:"max_tokens" koanf:"max_tokens"`

	// Embedding selection: the hosted model is used when OPENAI_API_KEY is
	// set, otherwise the local model is served by Ollama.
	EmbeddingModel      string `yaml:"embedding_model" koanf:"embedding_model"`
	LocalEmbeddingModel string `yaml:"local_embedding_model" koanf:"local_embedding_model"`

	ChunkSize    int `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	RetrievalK   int `yaml:"retrieval_k" koanf:"retrieval_k"`

	VectorStorePath string `yaml:"vector_store_path" koanf:"vector_store_path"`
	HistoryPath     string `yaml:"history_path" koanf:"history_path"`

	// Document sources: a primary URL list, an optional side file with one
	// URL per line, and local files under SourcesDir matching SourceGlobs.
	Sources          []string `yaml:"sources" koanf:"sources"`
	ExtraSourcesFile string   `yaml:"extra_sources_file" koanf:"extra_sources_file"`
	SourcesDir       string   `yaml:"sources_dir" koanf:"sources_dir"`
	SourceGlobs      []string `yaml:"source_globs" koanf:"source_globs"`

	Host string `yaml:"host" koanf:"host"`
	Port int    `yaml:"port" koanf:"port"`
}
