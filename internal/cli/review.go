package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/scigate/scigate/internal/content"
	"github.com/scigate/scigate/internal/incentive"
	"github.com/scigate/scigate/internal/ledger"
	"github.com/scigate/scigate/internal/review"
)

var (
	revFile     string
	revRating   int
	revReviewer string
	revTimeout  time.Duration
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <paper-id>",
	Short: "Submit a peer review for a published paper",
	Long: `Review records a peer review of a published paper on the ledger and
then credits the reviewer best-effort.

Example:
  scigate review 42 --file review.txt --rating 4 --reviewer 0xd4e5f6`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)

	reviewCmd.Flags().StringVar(&revFile, "file", "", "path to the review text (required)")
	reviewCmd.Flags().IntVar(&revRating, "rating", 0, "rating from 1 to 5 (required)")
	reviewCmd.Flags().StringVar(&revReviewer, "reviewer", "", "reviewer identity (required)")
	reviewCmd.Flags().DurationVar(&revTimeout, "timeout", 2*time.Minute, "overall review timeout")

	_ = reviewCmd.MarkFlagRequired("file")
	_ = reviewCmd.MarkFlagRequired("rating")
	_ = reviewCmd.MarkFlagRequired("reviewer")
}

func runReview(cmd *cobra.Command, args []string) error {
	paperID := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), revTimeout)
	defer cancel()

	body, err := os.ReadFile(revFile)
	if err != nil {
		return fmt.Errorf("read review body: %w", err)
	}

	cfg := buildToolConfig()

	ledgerClient, err := ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout)
	if err != nil {
		return err
	}

	var inc review.Incentive
	if cfg.Incentive.BaseURL != "" {
		client, err := incentive.NewClient(cfg.Incentive.BaseURL, cfg.Incentive.Timeout)
		if err != nil {
			return err
		}
		inc = client
	}

	svc, err := review.NewService(ledgerClient, inc)
	if err != nil {
		return err
	}

	// The review body is content-addressed the same way as papers; only
	// the reference goes on the ledger.
	reviewRef := content.Ref(body)
	if cfg.Content.Endpoint != "" {
		store, err := content.New(cfg.Content)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return err
		}
		if reviewRef, err = store.Put(ctx, body); err != nil {
			return err
		}
	}

	record, err := svc.Submit(ctx, paperID, reviewRef, revRating, revReviewer)
	if err != nil {
		return fmt.Errorf("review submission failed: %w", err)
	}

	fmt.Println("✓ Review recorded")
	fmt.Printf("  Review ID:    %s\n", record.ReviewID)
	if record.IncentiveTxRef != "" {
		fmt.Printf("  Incentive tx: %s\n", record.IncentiveTxRef)
	}
	for _, w := range record.Warnings {
		fmt.Printf("  Warning:      %s\n", w)
	}
	return nil
}
