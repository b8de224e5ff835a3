package model

import "time"

// Config holds the complete tool configuration.
type Config struct {
	Analyzer    AnalyzerConfig    `yaml:"analyzer"`
	Gate        GateConfig        `yaml:"gate"`
	Signer      SignerConfig      `yaml:"signer"`
	Ledger      EndpointConfig    `yaml:"ledger"`
	Registry    EndpointConfig    `yaml:"registry"`
	Incentive   EndpointConfig    `yaml:"incentive"`
	Reputation  ReputationConfig  `yaml:"reputation"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	Content     ContentConfig     `yaml:"content"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// AnalyzerConfig configures the originality analysis provider.
type AnalyzerConfig struct {
	Provider  string `yaml:"provider"` // "gemini", "openai", "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// GateConfig configures the similarity-rejection policy.
type GateConfig struct {
	// ThresholdPercent is the maximum tolerated similarity
	// (100 - originality score). Strictly above it the submission is
	// rejected.
	ThresholdPercent float64 `yaml:"threshold_percent"`
}

// SignerConfig configures the local HMAC signer.
type SignerConfig struct {
	Secret string `yaml:"secret"`
}

// EndpointConfig points at a remote collaborator.
type EndpointConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// ReputationConfig configures the reputation read client.
type ReputationConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// MetadataConfig configures the off-chain metadata store.
type MetadataConfig struct {
	PostgresDSN string `yaml:"postgres_dsn"`
}

// ContentConfig configures the content-addressed object store.
type ContentConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// CacheConfig configures the verdict cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing.
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig configures user-facing output.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 1024,
		},
		Gate: GateConfig{
			ThresholdPercent: 15,
		},
		Ledger:    EndpointConfig{Timeout: 30 * time.Second},
		Registry:  EndpointConfig{Timeout: 30 * time.Second},
		Incentive: EndpointConfig{Timeout: 30 * time.Second},
		Reputation: ReputationConfig{
			Timeout:  10 * time.Second,
			CacheTTL: 5 * time.Minute,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
	}
}
