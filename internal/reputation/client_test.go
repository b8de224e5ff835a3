package reputation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestScore(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Path != "/v1/reputation/0xa1b2c3" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"score": 87}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, time.Second, time.Minute)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	score, err := c.Score(context.Background(), "0xa1b2c3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 87 {
		t.Errorf("expected score 87, got %d", score)
	}

	// Second read is served from cache without a round trip.
	if _, err := c.Score(context.Background(), "0xa1b2c3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}
}

func TestScore_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	server.Close() // connection refused from here on

	c, _ := NewClient(server.URL, time.Second, time.Minute)
	_, err := c.Score(context.Background(), "0xa1b2c3")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *UnavailableError, got %v", err)
	}
	if unavailable.Identity != "0xa1b2c3" {
		t.Errorf("expected identity in error, got %q", unavailable.Identity)
	}
}

func TestScore_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, time.Second, time.Minute)
	_, err := c.Score(context.Background(), "0xa1b2c3")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *UnavailableError, got %v", err)
	}
}

func TestScore_MissingScoreField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, time.Second, time.Minute)
	_, err := c.Score(context.Background(), "0xa1b2c3")

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected *UnavailableError for response without score, got %v", err)
	}
}

func TestScore_ZeroIsARealScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"score": 0}`))
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, time.Second, time.Minute)
	score, err := c.Score(context.Background(), "0xa1b2c3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("", time.Second, time.Minute); err == nil {
		t.Error("expected error for empty base URL")
	}
}
