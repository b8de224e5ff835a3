package analyzer

import "os"

// ResolveCredential returns the analysis credential following the explicit
// precedence order: a per-invocation override, then the persisted
// configuration value, then the first non-empty environment variable.
// An empty result means no credential is available anywhere.
func ResolveCredential(override, configured string, envVars ...string) string {
	if override != "" {
		return override
	}
	if configured != "" {
		return configured
	}
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
