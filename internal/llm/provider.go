package llm

import "context"

// Handle is a live language model bound to its generation parameters
// (model name, temperature, max tokens).
type Handle interface {
	// Generate sends the conversation to the model and returns its reply.
	Generate(ctx context.Context, messages []Message) (*Response, error)
	// Model returns the bound model name.
	Model() string
}

// Provider is one entry in the closed set of language-model backends.
// Create returns a nil Handle — not an error — when the provider cannot
// produce a live model; absence is the designed demo-mode signal.
type Provider interface {
	Name() string
	// Available reports whether the provider's credential is configured.
	Available() bool
	// Create instantiates a model handle, or returns nil when absent.
	Create() (Handle, error)
}

// Descriptor reports a provider's availability for diagnostics.
type Descriptor struct {
	Name        string `json:"name"`
	Available   bool   `json:"available"`
	RequiredEnv string `json:"required_env,omitempty"`
}
