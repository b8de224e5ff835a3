package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scigate/scigate/internal/analyzer"
	"github.com/scigate/scigate/internal/cache"
	"github.com/scigate/scigate/internal/content"
	"github.com/scigate/scigate/internal/gate"
	"github.com/scigate/scigate/internal/incentive"
	"github.com/scigate/scigate/internal/ledger"
	"github.com/scigate/scigate/internal/metastore"
	"github.com/scigate/scigate/internal/model"
	"github.com/scigate/scigate/internal/pipeline"
	"github.com/scigate/scigate/internal/registry"
	"github.com/scigate/scigate/internal/signing"
	"github.com/scigate/scigate/internal/worker"
)

// engine wires the configured collaborators into a ready-to-run pipeline.
// It backs both the single publish command and the batch processor.
type engine struct {
	cfg      *model.Config
	provider analyzer.Provider // nil when analysis is disabled
	verdicts *cache.VerdictStore
	pipe     *pipeline.Pipeline
	contents *content.Store // nil when no object store is configured
}

// newEngine builds an engine from the effective configuration.
func newEngine(ctx context.Context, cfg *model.Config) (*engine, error) {
	e := &engine{cfg: cfg}

	// Analyzer is optional; publishing without a verdict skips the gate.
	if cfg.Analyzer.Provider != "" {
		provider, err := analyzer.NewProvider(analyzer.ConfigFromModel(cfg.Analyzer))
		if err != nil {
			return nil, err
		}
		e.provider = provider
	}

	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			home, err := os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(home, ".scigate", "cache")
			}
		}
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
		e.verdicts = cache.NewVerdictStore(layered, cfg.Cache.DiskTTL)
	}

	signer, err := signing.New([]byte(cfg.Signer.Secret))
	if err != nil {
		return nil, err
	}

	ledgerClient, err := ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout)
	if err != nil {
		return nil, err
	}

	var reg pipeline.Registry
	if cfg.Registry.BaseURL != "" {
		client, err := registry.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout)
		if err != nil {
			return nil, err
		}
		reg = client
	}

	var inc pipeline.Incentive
	if cfg.Incentive.BaseURL != "" {
		client, err := incentive.NewClient(cfg.Incentive.BaseURL, cfg.Incentive.Timeout)
		if err != nil {
			return nil, err
		}
		inc = client
	}

	var meta pipeline.MetadataStore
	if cfg.Metadata.PostgresDSN != "" {
		pool, err := metastore.Connect(ctx, cfg.Metadata.PostgresDSN)
		if err != nil {
			return nil, err
		}
		meta = metastore.NewPostgresStore(pool)
	}

	if cfg.Content.Endpoint != "" {
		store, err := content.New(cfg.Content)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		e.contents = store
	}

	pipe, err := pipeline.New(gate.New(cfg.Gate.ThresholdPercent), signer, ledgerClient, reg, inc, meta, cfg.Output.Verbose)
	if err != nil {
		return nil, err
	}
	e.pipe = pipe

	return e, nil
}

// analyze runs the originality analysis, serving unchanged text from the
// verdict cache.
func (e *engine) analyze(ctx context.Context, text string) (*model.Verdict, error) {
	if e.provider == nil {
		return nil, &analyzer.ConfigError{Reason: "no analysis provider configured"}
	}

	if e.verdicts != nil {
		if v, found := e.verdicts.Get(text); found {
			return v, nil
		}
	}

	verdict, err := e.provider.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}

	if e.verdicts != nil {
		if err := e.verdicts.Put(text, verdict); err != nil && e.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Warning: failed to cache verdict: %v\n", err)
		}
	}
	return verdict, nil
}

// contentRef resolves the content-addressed reference for a body, uploading
// it when an object store is configured.
func (e *engine) contentRef(ctx context.Context, body []byte) (string, error) {
	if e.contents != nil {
		return e.contents.Put(ctx, body)
	}
	return content.Ref(body), nil
}

// PublishItem publishes one manifest item: read the body, analyze when a
// provider is configured, then run the pipeline. Implements
// worker.Publisher.
func (e *engine) PublishItem(ctx context.Context, item worker.ManifestItem) (*model.Record, error) {
	body, err := os.ReadFile(item.File)
	if err != nil {
		return nil, fmt.Errorf("read paper body: %w", err)
	}

	ref, err := e.contentRef(ctx, body)
	if err != nil {
		return nil, err
	}

	sub := model.Submission{
		ContentRef:     ref,
		Title:          item.Title,
		BodyText:       string(body),
		AuthorIdentity: item.Author,
		Keywords:       item.Keywords,
	}

	md := &model.Metadata{
		Abstract: item.Abstract,
		Keywords: item.Keywords,
	}

	if e.provider != nil {
		if err := sub.AnalyzableBody(); err != nil {
			return nil, err
		}
		verdict, err := e.analyze(ctx, sub.BodyText)
		if err != nil {
			return nil, err
		}
		score := verdict.OriginalityScore
		md.OriginalityScore = &score
	}

	return e.pipe.Publish(ctx, sub, md)
}

// splitKeywords turns a comma-separated flag value into a keyword list.
func splitKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
