package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scigate/scigate/internal/analyzer"
	"github.com/scigate/scigate/internal/gate"
	"github.com/scigate/scigate/internal/model"
	"github.com/scigate/scigate/internal/worker"
)

var (
	pubTitle        string
	pubAuthor       string
	pubKeywords     string
	pubAbstract     string
	pubThreshold    float64
	pubSkipAnalysis bool
	pubProvider     string
	pubModel        string
	pubAPIKey       string
	pubLedgerURL    string
	pubTimeout      time.Duration
)

// publishCmd represents the publish command
var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Run a paper through the gating and publication workflow",
	Long: `Publish takes a paper through the full workflow:

1. Originality analysis (when a provider is configured)
2. Similarity-threshold gate - rejection aborts before any ledger interaction
3. Signing of the canonical contentRef:title message
4. Ledger submission (the point of no return)
5. Best-effort: DOI registration, author incentive, off-chain metadata

Example:
  scigate publish paper.txt --title "On Gating" --author 0xa1b2c3
  scigate publish paper.txt --title "On Gating" --author 0xa1b2c3 --threshold 10
  scigate publish paper.txt --title "On Gating" --author 0xa1b2c3 --skip-analysis`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&pubTitle, "title", "", "publication title (required)")
	publishCmd.Flags().StringVar(&pubAuthor, "author", "", "author identity (required)")
	publishCmd.Flags().StringVar(&pubKeywords, "keywords", "", "comma-separated keywords")
	publishCmd.Flags().StringVar(&pubAbstract, "abstract", "", "abstract stored with off-chain metadata")
	publishCmd.Flags().Float64Var(&pubThreshold, "threshold", 0, "similarity rejection threshold in percent (default from config, policy default 15)")
	publishCmd.Flags().BoolVar(&pubSkipAnalysis, "skip-analysis", false, "publish without an originality check (gate is skipped)")
	publishCmd.Flags().StringVar(&pubProvider, "provider", "", "analysis provider (gemini, openai)")
	publishCmd.Flags().StringVar(&pubModel, "model", "", "analysis model name")
	publishCmd.Flags().StringVar(&pubAPIKey, "api-key", "", "analysis API key (overrides config and environment)")
	publishCmd.Flags().StringVar(&pubLedgerURL, "ledger-url", "", "publication ledger base URL")
	publishCmd.Flags().DurationVar(&pubTimeout, "timeout", 5*time.Minute, "overall publish timeout")

	_ = publishCmd.MarkFlagRequired("title")
	_ = publishCmd.MarkFlagRequired("author")
}

func runPublish(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), pubTimeout)
	defer cancel()

	cfg := buildToolConfig()
	if pubProvider != "" {
		cfg.Analyzer.Provider = pubProvider
	}
	if pubModel != "" {
		cfg.Analyzer.Model = pubModel
	}
	if pubSkipAnalysis {
		cfg.Analyzer.Provider = ""
	}
	if pubThreshold > 0 {
		cfg.Gate.ThresholdPercent = pubThreshold
	}
	if pubLedgerURL != "" {
		cfg.Ledger.BaseURL = pubLedgerURL
	}
	if cfg.Signer.Secret == "" {
		cfg.Signer.Secret = os.Getenv("SCIGATE_SIGNING_SECRET")
	}
	resolveAnalyzerCredential(cfg, pubAPIKey)

	e, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	record, err := e.PublishItem(ctx, worker.ManifestItem{
		File:     file,
		Title:    pubTitle,
		Author:   pubAuthor,
		Keywords: splitKeywords(pubKeywords),
		Abstract: pubAbstract,
	})
	if err != nil {
		return describePublishError(err)
	}

	renderRecord(record)
	return nil
}

// describePublishError classifies a publish failure so the user knows
// whether to fix their input, fix their setup, or retry later.
func describePublishError(err error) error {
	var rejection *gate.Rejection
	if errors.As(err, &rejection) {
		// The rejection message already carries the computed similarity
		// and the configured threshold.
		return err
	}

	var cfgErr *analyzer.ConfigError
	var upErr *analyzer.UpstreamError
	var parseErr *analyzer.ParseError
	if errors.As(err, &cfgErr) || errors.As(err, &upErr) || errors.As(err, &parseErr) {
		return fmt.Errorf("originality analysis problem (check configuration and try again): %w", err)
	}

	return fmt.Errorf("publication failed (the ledger may be unavailable, retry later): %w", err)
}

func renderRecord(r *model.Record) {
	fmt.Println("✓ Publication committed")
	fmt.Printf("  Submission ID: %s\n", r.SubmissionID)
	fmt.Printf("  Signature:     %s\n", r.Signature)
	if r.DOI != "" {
		fmt.Printf("  DOI:           %s\n", r.DOI)
	}
	if r.IncentiveTxRef != "" {
		fmt.Printf("  Incentive tx:  %s\n", r.IncentiveTxRef)
	}
	if r.MetadataStored {
		fmt.Println("  Metadata:      stored")
	}
	for _, w := range r.Warnings {
		fmt.Printf("  Warning:       %s\n", w)
	}
}
