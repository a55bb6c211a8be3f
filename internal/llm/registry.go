package llm

import (
	"log"

	"docchat/internal/config"
)

// Registry maps provider names to their capability pair and resolves the
// configured one. Registration order is the order Status reports.
type Registry struct {
	active    config.ProviderType
	order     []string
	providers map[string]Provider
}

// NewRegistry builds the closed provider set from the configuration.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{
		active:    cfg.Provider,
		providers: make(map[string]Provider),
	}

	r.register(&openAIStyleProvider{
		name:        string(config.ProviderOpenAI),
		envVar:      config.APIKeyEnvVar(config.ProviderOpenAI),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	})
	r.register(&openAIStyleProvider{
		name:        string(config.ProviderGrok),
		envVar:      config.APIKeyEnvVar(config.ProviderGrok),
		baseURL:     cfg.GrokAPIURL,
		model:       cfg.GrokModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	})
	r.register(demoProvider{})

	return r
}

func (r *Registry) register(p Provider) {
	r.order = append(r.order, p.Name())
	r.providers[p.Name()] = p
}

// CreateActive resolves the configured provider and instantiates its
// model handle. A nil handle means demo mode: unknown names and missing
// credentials are logged, never surfaced as errors.
func (r *Registry) CreateActive() Handle {
	provider, ok := r.providers[string(r.active)]
	if !ok {
		log.Printf("llm: unknown provider %q, falling back to offline answers", r.active)
		return nil
	}

	if !provider.Available() {
		log.Printf("llm: provider %q unavailable (set %s), falling back to offline answers",
			provider.Name(), requiredEnv(provider))
		return nil
	}

	handle, err := provider.Create()
	if err != nil {
		log.Printf("llm: creating %q handle: %v", provider.Name(), err)
		return nil
	}
	return handle
}

// Status returns availability for every registered provider, in
// registration order. Pure read; nothing is instantiated.
func (r *Registry) Status() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		p := r.providers[name]
		out = append(out, Descriptor{
			Name:        name,
			Available:   p.Available(),
			RequiredEnv: requiredEnv(p),
		})
	}
	return out
}

// AvailableNames lists the providers that could serve right now.
func (r *Registry) AvailableNames() []string {
	var names []string
	for _, name := range r.order {
		if r.providers[name].Available() {
			names = append(names, name)
		}
	}
	return names
}

func requiredEnv(p Provider) string {
	return config.APIKeyEnvVar(config.ProviderType(p.Name()))
}
