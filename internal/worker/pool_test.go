package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/scigate/scigate/internal/model"
)

// slowPublisher simulates a publisher whose collaborators take time to
// answer, tracking how many publications run at once.
type slowPublisher struct {
	delay         time.Duration
	failTitles    map[string]bool
	current       int32
	maxConcurrent int32
	published     int32
	mu            sync.Mutex
}

func (p *slowPublisher) PublishItem(ctx context.Context, item ManifestItem) (*model.Record, error) {
	curr := atomic.AddInt32(&p.current, 1)
	p.mu.Lock()
	if curr > p.maxConcurrent {
		p.maxConcurrent = curr
	}
	p.mu.Unlock()
	defer atomic.AddInt32(&p.current, -1)

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	atomic.AddInt32(&p.published, 1)
	if p.failTitles[item.Title] {
		return nil, errors.New("ledger error (503)")
	}
	return &model.Record{SubmissionID: "paper-" + item.Title, Signature: "sig"}, nil
}

func publishJobs(publisher Publisher, titles ...string) []Job {
	jobs := make([]Job, 0, len(titles))
	for _, title := range titles {
		jobs = append(jobs, &PublishJob{
			Item:      ManifestItem{File: title + ".txt", Title: title, Author: "0xa1b2c3"},
			Publisher: publisher,
		})
	}
	return jobs
}

func TestNewPool(t *testing.T) {
	if p := NewPool(5); p.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p.workers)
	}
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p.workers)
	}
	if p := NewPool(-1); p.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p.workers)
	}
}

func TestPool_PublishesEveryItem(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	publisher := &slowPublisher{}
	titles := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for _, job := range publishJobs(publisher, titles...) {
		pool.Submit(job)
	}

	results := pool.Wait()

	if len(results) != len(titles) {
		t.Errorf("expected %d results, got %d", len(titles), len(results))
	}
	if n := atomic.LoadInt32(&publisher.published); n != int32(len(titles)) {
		t.Errorf("expected %d publications, got %d", len(titles), n)
	}
}

// Concurrency is bounded by the worker count even when many submissions
// are queued at once.
func TestPool_ConcurrencyBound(t *testing.T) {
	workers := 4
	pool := NewPool(workers)
	pool.Start()

	publisher := &slowPublisher{delay: 10 * time.Millisecond}
	for i := 0; i < 30; i++ {
		pool.Submit(publishJobs(publisher, "Paper")[0])
	}

	pool.Wait()

	publisher.mu.Lock()
	max := publisher.maxConcurrent
	publisher.mu.Unlock()

	if max > int32(workers) {
		t.Errorf("max concurrency %d exceeded workers %d", max, workers)
	}
	if max <= 1 {
		t.Logf("Warning: max concurrency was %d, expected > 1", max)
	}
}

// One rejected publication must not take the rest of the batch down.
func TestPool_FailureIsolation(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	publisher := &slowPublisher{failTitles: map[string]bool{"B": true}}
	for _, job := range publishJobs(publisher, "A", "B", "C") {
		pool.Submit(job)
	}

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	failures := 0
	for _, res := range results {
		if res.GetError() != nil {
			failures++
			if res.(*PublishResult).Item.Title != "B" {
				t.Errorf("unexpected failing item: %s", res.(*PublishResult).Item.Title)
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(publishJobs(&slowPublisher{}, "Late")[0])
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after shutdown blocked")
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	publisher := &slowPublisher{delay: 200 * time.Millisecond}
	pool.Submit(publishJobs(publisher, "Slow")[0])

	// Let the job start before pulling the plug.
	time.Sleep(20 * time.Millisecond)
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		for range pool.results {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Shutdown timed out")
	}
}
