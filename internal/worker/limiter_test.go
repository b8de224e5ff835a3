package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 5)
	ctx := context.Background()

	// Within the burst, waits clear immediately.
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "http://ledger.local/v1/papers"); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}
}

// Exhausting one host's bucket must not slow a different host.
func TestLimiter_PerHostBuckets(t *testing.T) {
	limiter := NewLimiter(0.01, 1) // effectively one call per host
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://ledger.local"); err != nil {
		t.Fatalf("first ledger wait failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- limiter.Wait(ctx, "http://registry.local")
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("registry wait failed: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("registry wait blocked on the ledger's bucket")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	ctx := context.Background()

	// Drain the burst so the next wait has to block.
	if err := limiter.Wait(ctx, "http://ledger.local"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(cancelCtx, "http://ledger.local"); err == nil {
		t.Error("expected a blocked wait to fail when the context expires")
	}
}

func TestLimiter_InvalidEndpoint(t *testing.T) {
	limiter := NewLimiter(10, 1)
	if err := limiter.Wait(context.Background(), "::invalid"); err == nil {
		t.Error("expected error for an unparseable endpoint")
	}
}

func TestEndpointHost(t *testing.T) {
	host, err := endpointHost("http://ledger.local:8080/v1/papers")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if host != "ledger.local:8080" {
		t.Errorf("expected ledger.local:8080, got %s", host)
	}
}
