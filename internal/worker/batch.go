package worker

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scigate/scigate/internal/model"
)

// Publisher defines the interface for publishing a single manifest item.
type Publisher interface {
	PublishItem(ctx context.Context, item ManifestItem) (*model.Record, error)
}

// ManifestItem describes one submission in a batch manifest.
type ManifestItem struct {
	File     string   `yaml:"file"`     // path to the paper body
	Title    string   `yaml:"title"`    // publication title
	Author   string   `yaml:"author"`   // author identity
	Keywords []string `yaml:"keywords,omitempty"`
	Abstract string   `yaml:"abstract,omitempty"`
}

// Manifest is the top-level batch file shape.
type Manifest struct {
	Submissions []ManifestItem `yaml:"submissions"`
}

// PublishJob runs one manifest item through the publisher.
type PublishJob struct {
	Item      ManifestItem
	Publisher Publisher
	Limiter   *Limiter
	Endpoint  string
}

// Execute executes the publish job.
func (j *PublishJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && j.Endpoint != "" {
		if err := j.Limiter.Wait(ctx, j.Endpoint); err != nil {
			return &PublishResult{Item: j.Item, Error: err}
		}
	}

	record, err := j.Publisher.PublishItem(ctx, j.Item)
	return &PublishResult{Item: j.Item, Record: record, Error: err}
}

// PublishResult is the result of one publish job.
type PublishResult struct {
	Item   ManifestItem
	Record *model.Record
	Error  error
}

// GetError returns the error from the publish result.
func (r *PublishResult) GetError() error {
	return r.Error
}

// BatchProcessor publishes multiple submissions concurrently, rate-limited
// per collaborator endpoint.
type BatchProcessor struct {
	publisher   Publisher
	concurrency int
	limiter     *Limiter
	endpoint    string
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(publisher Publisher, concurrency int, requestsPerSecond float64, burst int, endpoint string) *BatchProcessor {
	return &BatchProcessor{
		publisher:   publisher,
		concurrency: concurrency,
		limiter:     NewLimiter(requestsPerSecond, burst),
		endpoint:    endpoint,
	}
}

// Process publishes all manifest items concurrently.
func (b *BatchProcessor) Process(ctx context.Context, items []ManifestItem) []*PublishResult {
	if len(items) == 0 {
		return []*PublishResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, item := range items {
		pool.Submit(&PublishJob{
			Item:      item,
			Publisher: b.publisher,
			Limiter:   b.limiter,
			Endpoint:  b.endpoint,
		})
	}

	results := pool.Wait()

	publishResults := make([]*PublishResult, len(results))
	for i, result := range results {
		publishResults[i] = result.(*PublishResult)
	}
	return publishResults
}

// ProcessFile reads a manifest and publishes its submissions concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*PublishResult, error) {
	manifest, err := ReadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return b.Process(ctx, manifest.Submissions), nil
}

// ReadManifest parses a YAML batch manifest and validates its items.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	for i, item := range manifest.Submissions {
		if item.File == "" {
			return nil, fmt.Errorf("submission %d: file is required", i)
		}
		if item.Title == "" {
			return nil, fmt.Errorf("submission %d: title is required", i)
		}
		if item.Author == "" {
			return nil, fmt.Errorf("submission %d: author is required", i)
		}
	}

	return &manifest, nil
}
