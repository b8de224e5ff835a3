package cli

import (
	"github.com/spf13/viper"

	"github.com/scigate/scigate/internal/analyzer"
	"github.com/scigate/scigate/internal/model"
)

// buildToolConfig merges the config file over the defaults. CLI flags are
// applied on top by the individual commands.
func buildToolConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("analyzer.provider"); v != "" {
		cfg.Analyzer.Provider = v
	}
	if v := viper.GetString("analyzer.model"); v != "" {
		cfg.Analyzer.Model = v
	}
	if v := viper.GetString("analyzer.api_key"); v != "" {
		cfg.Analyzer.APIKey = v
	}
	if v := viper.GetString("analyzer.base_url"); v != "" {
		cfg.Analyzer.BaseURL = v
	}
	if v := viper.GetInt("analyzer.timeout"); v != 0 {
		cfg.Analyzer.Timeout = v
	}

	if v := viper.GetFloat64("gate.threshold_percent"); v != 0 {
		cfg.Gate.ThresholdPercent = v
	}

	if v := viper.GetString("signer.secret"); v != "" {
		cfg.Signer.Secret = v
	}

	if v := viper.GetString("ledger.base_url"); v != "" {
		cfg.Ledger.BaseURL = v
	}
	if v := viper.GetString("registry.base_url"); v != "" {
		cfg.Registry.BaseURL = v
	}
	if v := viper.GetString("incentive.base_url"); v != "" {
		cfg.Incentive.BaseURL = v
	}
	if v := viper.GetString("reputation.base_url"); v != "" {
		cfg.Reputation.BaseURL = v
	}

	if v := viper.GetString("metadata.postgres_dsn"); v != "" {
		cfg.Metadata.PostgresDSN = v
	}

	if v := viper.GetString("content.endpoint"); v != "" {
		cfg.Content.Endpoint = v
		cfg.Content.AccessKey = viper.GetString("content.access_key")
		cfg.Content.SecretKey = viper.GetString("content.secret_key")
		cfg.Content.Bucket = viper.GetString("content.bucket")
		cfg.Content.UseSSL = viper.GetBool("content.use_ssl")
	}

	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}

	if v := viper.GetInt("concurrency.workers"); v != 0 {
		cfg.Concurrency.Workers = v
	}
	if v := viper.GetFloat64("concurrency.requests_per_second"); v != 0 {
		cfg.Concurrency.RequestsPerSecond = v
	}
	if v := viper.GetInt("concurrency.burst_size"); v != 0 {
		cfg.Concurrency.BurstSize = v
	}

	cfg.Output.Verbose = viper.GetBool("verbose")

	return cfg
}

// resolveAnalyzerCredential applies the explicit credential precedence for
// the selected provider: flag override, config file, environment.
func resolveAnalyzerCredential(cfg *model.Config, override string) {
	var envVars []string
	switch cfg.Analyzer.Provider {
	case "gemini":
		envVars = []string{"GEMINI_API_KEY"}
	case "openai":
		envVars = []string{"OPENAI_API_KEY"}
	}
	cfg.Analyzer.APIKey = analyzer.ResolveCredential(override, cfg.Analyzer.APIKey, envVars...)
}
