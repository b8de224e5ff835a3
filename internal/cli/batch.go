package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/scigate/scigate/internal/worker"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
	batchSkip        bool
	batchProvider    string
	batchAPIKey      string
	batchLedgerURL   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Publish multiple papers from a YAML manifest in parallel",
	Long: `Batch publishes every submission listed in a YAML manifest:

submissions:
  - file: papers/gating.txt
    title: On Gating
    author: 0xa1b2c3
    keywords: [originality, policy]

Each submission runs the full gating and publication workflow; ledger calls
are rate-limited across workers.

Example:
  scigate batch manifest.yaml
  scigate batch manifest.yaml --concurrency 8 --timeout 20m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchSkip, "skip-analysis", false, "publish without originality checks")
	batchCmd.Flags().StringVar(&batchProvider, "provider", "", "analysis provider (gemini, openai)")
	batchCmd.Flags().StringVar(&batchAPIKey, "api-key", "", "analysis API key (overrides config and environment)")
	batchCmd.Flags().StringVar(&batchLedgerURL, "ledger-url", "", "publication ledger base URL")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifestPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildToolConfig()
	if batchProvider != "" {
		cfg.Analyzer.Provider = batchProvider
	}
	if batchSkip {
		cfg.Analyzer.Provider = ""
	}
	if batchLedgerURL != "" {
		cfg.Ledger.BaseURL = batchLedgerURL
	}
	if cfg.Signer.Secret == "" {
		cfg.Signer.Secret = os.Getenv("SCIGATE_SIGNING_SECRET")
	}
	cfg.Concurrency.Workers = batchConcurrency
	resolveAnalyzerCredential(cfg, batchAPIKey)

	e, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Batch publishing from %s with %d workers\n", manifestPath, cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(e, cfg.Concurrency.Workers,
		cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.BurstSize, cfg.Ledger.BaseURL)

	results, err := processor.ProcessFile(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("process manifest: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Item.Title, describePublishError(result.Error))
			continue
		}
		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (submission %s)\n", result.Item.Title, result.Record.SubmissionID)
		for _, w := range result.Record.Warnings {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d, published: %d, failed: %d\n", len(results), successCount, failureCount)

	if failureCount > 0 {
		return fmt.Errorf("%d of %d submissions failed", failureCount, len(results))
	}
	return nil
}
