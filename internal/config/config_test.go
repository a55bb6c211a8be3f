package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 {
		t.Errorf("chunking defaults = %d/%d, want 1000/200", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if cfg.RetrievalK != 4 {
		t.Errorf("RetrievalK = %d, want 4", cfg.RetrievalK)
	}
	if len(cfg.Sources) == 0 {
		t.Error("expected default sources")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".docchat.yml")

	yaml := `provider: grok
grok_model: grok-2
temperature: 0.2
chunk_size: 500
chunk_overlap: 50
vector_store_path: /tmp/store
sources:
  - https://example.com/docs
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider != ProviderGrok {
		t.Errorf("Provider = %q, want grok", cfg.Provider)
	}
	if cfg.GrokModel != "grok-2" {
		t.Errorf("GrokModel = %q, want grok-2", cfg.GrokModel)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", cfg.Temperature)
	}
	if cfg.ChunkSize != 500 || cfg.ChunkOverlap != 50 {
		t.Errorf("chunking = %d/%d, want 500/50", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0] != "https://example.com/docs" {
		t.Errorf("Sources = %v", cfg.Sources)
	}
	// Untouched fields keep their defaults.
	if cfg.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want default 1000", cfg.MaxTokens)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DOCCHAT_PROVIDER", "demo")
	t.Setenv("DOCCHAT_MODEL", "demo")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Provider != ProviderDemo {
		t.Errorf("Provider = %q, want demo from env", cfg.Provider)
	}
	if cfg.Model != "demo" {
		t.Errorf("Model = %q, want demo from env", cfg.Model)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".docchat.yml")

	cfg := DefaultConfig()
	cfg.Provider = ProviderGrok
	cfg.RetrievalK = 7

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Provider != ProviderGrok {
		t.Errorf("Provider = %q, want grok", loaded.Provider)
	}
	if loaded.RetrievalK != 7 {
		t.Errorf("RetrievalK = %d, want 7", loaded.RetrievalK)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "cohere" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"zero max_tokens", func(c *Config) { c.MaxTokens = 0 }, true},
		{"temperature too high", func(c *Config) { c.Temperature = 3 }, true},
		{"overlap equals chunk size", func(c *Config) { c.ChunkOverlap = c.ChunkSize }, true},
		{"negative overlap", func(c *Config) { c.ChunkOverlap = -1 }, true},
		{"zero retrieval k", func(c *Config) { c.RetrievalK = 0 }, true},
		{"empty vector path", func(c *Config) { c.VectorStorePath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(ProviderOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai env = %q", got)
	}
	if got := APIKeyEnvVar(ProviderGrok); got != "GROK_API_KEY" {
		t.Errorf("grok env = %q", got)
	}
	if got := APIKeyEnvVar(ProviderDemo); got != "" {
		t.Errorf("demo env = %q, want empty", got)
	}
}
