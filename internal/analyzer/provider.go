package analyzer

import (
	"context"
	"fmt"

	"github.com/scigate/scigate/internal/model"
)

// Provider defines the interface for originality-analysis providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze sends the text to the analysis service and returns a
	// normalized verdict. It never retries; retry policy belongs to the
	// caller.
	Analyze(ctx context.Context, text string) (*model.Verdict, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds analysis provider configuration.
type Config struct {
	// Provider name: "gemini", "openai", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey authenticates against the analysis service
	APIKey string

	// BaseURL for custom endpoints (tests, proxies)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Timeout:   30,
		MaxTokens: 1024,
	}
}

// ConfigFromModel converts model.AnalyzerConfig to analyzer.Config.
func ConfigFromModel(mc model.AnalyzerConfig) Config {
	return Config{
		Provider:  mc.Provider,
		Model:     mc.Model,
		APIKey:    mc.APIKey,
		BaseURL:   mc.BaseURL,
		Timeout:   mc.Timeout,
		MaxTokens: mc.MaxTokens,
	}
}

// BuildPrompt constructs the fixed analysis prompt. The service is
// instructed to answer with exactly one JSON object holding the verdict
// fields; parseVerdict locates and decodes that object.
func BuildPrompt(text string) string {
	return fmt.Sprintf(`You are a content originality detection expert. Analyze the following text for potential similarity with existing content:

"%s"

Respond in the following JSON format only, without any additional text:
{
  "originalityScore": [number between 0-100, higher means more original],
  "flaggedSections": [
    {
      "text": "quoted text that appears similar to existing content",
      "similarity": [number between 0-100 indicating similarity level],
      "source": "potential source if identifiable, otherwise null"
    }
  ],
  "status": ["clean" if score > 80, "suspicious" if score between 50-80, "plagiarized" if score < 50]
}`, text)
}
