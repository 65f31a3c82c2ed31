// Package providers holds the completion backends available to LLM-driven
// policies.
package providers

// ProviderParams configures a completion backend.
type ProviderParams struct {
	BaseURL string
	APIKey  string
}

// ProviderOption mutates provider parameters.
type ProviderOption func(*ProviderParams)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) ProviderOption {
	return func(p *ProviderParams) {
		p.BaseURL = baseURL
	}
}

// WithAPIKey overrides the API key.
func WithAPIKey(key string) ProviderOption {
	return func(p *ProviderParams) {
		p.APIKey = key
	}
}
