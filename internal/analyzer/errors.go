package analyzer

import "fmt"

// ConfigError means the analyzer is missing a credential or other setup and
// no network call was attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("analyzer configuration error: %s", e.Reason)
}

// UpstreamError means the analysis service was reachable but returned a
// non-success status. The status code is kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("analysis service returned an error (%d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("analysis service returned an error (%d)", e.StatusCode)
}

// ParseError means the service response did not contain a decodable verdict
// payload.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse analysis result: %s", e.Reason)
}
