package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// defaultModels maps each provider to its suggested chat model.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGrok:   "grok-beta",
	ProviderDemo:   "demo",
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docchat! Let's configure your chatbot.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select model provider",
		Items: []string{
			"openai — OpenAI chat models (needs OPENAI_API_KEY)",
			"grok   — x.ai Grok via OpenAI-compatible API (needs GROK_API_KEY)",
			"demo   — no live model, scripted offline answers",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	providers := []ProviderType{ProviderOpenAI, ProviderGrok, ProviderDemo}
	cfg.Provider = providers[providerIdx]

	// 2. Model name.
	modelPrompt := promptui.Prompt{
		Label:   "Chat model",
		Default: defaultModels[cfg.Provider],
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model selection: %w", err)
	}
	if cfg.Provider == ProviderGrok {
		cfg.GrokModel = model
	} else {
		cfg.Model = model
	}

	// 3. Retrieval depth.
	kPrompt := promptui.Prompt{
		Label:   "Chunks retrieved per question",
		Default: strconv.Itoa(cfg.RetrievalK),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				return fmt.Errorf("enter a number >= 1")
			}
			return nil
		},
	}
	kStr, err := kPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("retrieval depth: %w", err)
	}
	cfg.RetrievalK, _ = strconv.Atoi(kStr)

	// 4. Vector store location.
	pathPrompt := promptui.Prompt{
		Label:   "Vector store directory",
		Default: cfg.VectorStorePath,
	}
	storePath, err := pathPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("vector store path: %w", err)
	}
	cfg.VectorStorePath = storePath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}
	fmt.Printf("\nConfiguration written to %s\n", path)

	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("Note: %s is not set; docchat will run in demo mode until it is.\n", envVar)
	}

	return cfg, nil
}
