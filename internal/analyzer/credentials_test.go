package analyzer

import "testing"

func TestResolveCredential(t *testing.T) {
	t.Setenv("SCIGATE_TEST_KEY", "from-env")
	t.Setenv("SCIGATE_TEST_KEY_ALT", "from-alt-env")

	tests := []struct {
		name       string
		override   string
		configured string
		envVars    []string
		want       string
	}{
		{"override wins over everything", "from-flag", "from-config", []string{"SCIGATE_TEST_KEY"}, "from-flag"},
		{"config wins over env", "", "from-config", []string{"SCIGATE_TEST_KEY"}, "from-config"},
		{"env as last resort", "", "", []string{"SCIGATE_TEST_KEY"}, "from-env"},
		{"first non-empty env var", "", "", []string{"SCIGATE_TEST_KEY_MISSING", "SCIGATE_TEST_KEY_ALT"}, "from-alt-env"},
		{"nothing available", "", "", []string{"SCIGATE_TEST_KEY_MISSING"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCredential(tt.override, tt.configured, tt.envVars...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Config{Provider: "gemini", APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "gemini" {
		t.Errorf("expected gemini provider, got %s", p.Name())
	}

	p, err = NewProvider(Config{Provider: "openai", APIKey: "k"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("expected openai provider, got %s", p.Name())
	}

	// Empty provider means analysis is disabled, not an error.
	p, err = NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("unexpected error for empty provider: %v", err)
	}
	if p != nil {
		t.Error("expected nil provider when analysis is disabled")
	}

	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
