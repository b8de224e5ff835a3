// Package review submits peer reviews to the ledger and rewards reviewers,
// mirroring the publication flow: the ledger write is fatal, the reviewer
// payout is best effort.
package review

import (
	"context"
	"fmt"

	"github.com/scigate/scigate/internal/model"
)

// Ledger records reviews on the publication ledger.
type Ledger interface {
	SubmitReview(ctx context.Context, paperID, reviewRef string, rating int, reviewer string) (string, error)
}

// Incentive credits reviewers for recorded reviews.
type Incentive interface {
	RewardReviewer(ctx context.Context, reviewer, reviewID string) (string, error)
}

// Service runs the review submission flow.
type Service struct {
	ledger    Ledger
	incentive Incentive
}

// NewService creates a review service. Incentive may be nil, in which case
// the payout step is skipped with a warning.
func NewService(ledger Ledger, incentive Incentive) (*Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("review service requires a ledger")
	}
	return &Service{ledger: ledger, incentive: incentive}, nil
}

// Submit records a review and then rewards the reviewer best-effort.
func (s *Service) Submit(ctx context.Context, paperID, reviewRef string, rating int, reviewer string) (*model.ReviewRecord, error) {
	if paperID == "" {
		return nil, fmt.Errorf("paper ID is required")
	}
	if reviewRef == "" {
		return nil, fmt.Errorf("review reference is required")
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	if reviewer == "" {
		return nil, fmt.Errorf("reviewer identity is required")
	}

	reviewID, err := s.ledger.SubmitReview(ctx, paperID, reviewRef, rating, reviewer)
	if err != nil {
		return nil, err
	}

	record := &model.ReviewRecord{ReviewID: reviewID}

	if s.incentive != nil {
		txRef, err := s.incentive.RewardReviewer(ctx, reviewer, reviewID)
		if err != nil {
			record.Warnings = append(record.Warnings, fmt.Sprintf("reviewer reward failed: %v", err))
		} else {
			record.IncentiveTxRef = txRef
		}
	} else {
		record.Warnings = append(record.Warnings, "incentive store not configured, reviewer reward skipped")
	}

	return record, nil
}
