package llm

import (
	"errors"
	"fmt"
	"os"
)

// QueryAnalysis is the structured descriptor the classifier produces for a
// free-text query. It is validated into a strict type here, at the boundary;
// the retrieval core never sees the raw model output.
type QueryAnalysis struct {
	Intent   string   `json:"intent"`
	Entities []string `json:"entities"`
	Category string   `json:"category"`
	Source   string   `json:"source"`
	Location string   `json:"location"`
}

type Client interface {
	// Analyze classifies a free-text news query into an intent descriptor.
	Analyze(query string) (*QueryAnalysis, error)
	// Summarize produces a one-sentence summary for an article.
	Summarize(title, description string) (string, error)
}

// NewFromEnv picks the provider from LLM_PROVIDER, falling back to whichever
// API key is configured.
func NewFromEnv() (Client, error) {
	provider := os.Getenv("LLM_PROVIDER")

	switch provider {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return NewAnthropicClient(key), nil
		}
		return nil, errors.New("LLM_PROVIDER=anthropic but ANTHROPIC_API_KEY is not set")
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return NewOpenAIClient(key), nil
		}
		return nil, errors.New("LLM_PROVIDER=openai but OPENAI_API_KEY is not set")
	case "":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return NewOpenAIClient(key), nil
		}
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return NewAnthropicClient(key), nil
		}
		return nil, errors.New("no LLM API key configured")
	}

	return nil, fmt.Errorf("unknown LLM_PROVIDER %q", provider)
}
