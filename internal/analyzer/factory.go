package analyzer

import (
	"fmt"
	"strings"
)

// NewProvider creates a new analysis provider based on configuration.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "gemini":
		return NewGeminiProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "":
		// No provider configured - analysis disabled
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown analysis provider: %s (supported: gemini, openai)", config.Provider)
	}
}
