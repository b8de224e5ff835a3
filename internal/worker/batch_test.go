package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/scigate/scigate/internal/model"
)

// fakePublisher records which items were published and fails those whose
// title is listed in failTitles.
type fakePublisher struct {
	mu         sync.Mutex
	published  []string
	failTitles map[string]bool
}

func (f *fakePublisher) PublishItem(_ context.Context, item ManifestItem) (*model.Record, error) {
	f.mu.Lock()
	f.published = append(f.published, item.Title)
	f.mu.Unlock()

	if f.failTitles[item.Title] {
		return nil, errors.New("ledger error (503)")
	}
	return &model.Record{SubmissionID: "paper-" + item.Title, Signature: "sig"}, nil
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeManifest(t, `
submissions:
  - file: papers/a.txt
    title: Paper A
    author: 0xa1b2c3
    keywords: [originality, policy]
    abstract: A short abstract.
  - file: papers/b.txt
    title: Paper B
    author: 0xd4e5f6
`)

	manifest, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(manifest.Submissions) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(manifest.Submissions))
	}

	first := manifest.Submissions[0]
	if first.File != "papers/a.txt" || first.Title != "Paper A" || first.Author != "0xa1b2c3" {
		t.Errorf("unexpected first item: %+v", first)
	}
	if len(first.Keywords) != 2 || first.Abstract != "A short abstract." {
		t.Errorf("unexpected optional fields: %+v", first)
	}
}

func TestReadManifest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file", "submissions:\n  - title: Paper A\n    author: 0xa1b2c3\n"},
		{"missing title", "submissions:\n  - file: a.txt\n    author: 0xa1b2c3\n"},
		{"missing author", "submissions:\n  - file: a.txt\n    title: Paper A\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			if _, err := ReadManifest(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadManifest_MissingFile(t *testing.T) {
	if _, err := ReadManifest(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestBatchProcessor_Process(t *testing.T) {
	publisher := &fakePublisher{failTitles: map[string]bool{"Paper B": true}}
	processor := NewBatchProcessor(publisher, 4, 100, 10, "http://ledger.local")

	items := []ManifestItem{
		{File: "a.txt", Title: "Paper A", Author: "0xa1b2c3"},
		{File: "b.txt", Title: "Paper B", Author: "0xd4e5f6"},
		{File: "c.txt", Title: "Paper C", Author: "0xa1b2c3"},
	}

	results := processor.Process(context.Background(), items)
	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
			if r.Item.Title != "Paper B" {
				t.Errorf("unexpected failing item: %s", r.Item.Title)
			}
			continue
		}
		if r.Record == nil || r.Record.SubmissionID == "" {
			t.Errorf("successful result missing record: %+v", r)
		}
	}
	if failures != 1 {
		t.Errorf("expected 1 failure, got %d", failures)
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if len(publisher.published) != len(items) {
		t.Errorf("expected every item to be attempted, got %v", publisher.published)
	}
}

func TestBatchProcessor_EmptyManifest(t *testing.T) {
	processor := NewBatchProcessor(&fakePublisher{}, 2, 100, 10, "")
	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeManifest(t, `
submissions:
  - file: a.txt
    title: Paper A
    author: 0xa1b2c3
`)

	publisher := &fakePublisher{}
	processor := NewBatchProcessor(publisher, 2, 100, 10, "")

	results, err := processor.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].GetError() != nil {
		t.Errorf("unexpected results: %+v", results)
	}
}
