package model

import "time"

// Record is the result of a successful pipeline run. SubmissionID and
// Signature are always present; DOI and IncentiveTxRef are best-effort and
// may be absent when their steps failed.
type Record struct {
	SubmissionID   string    `json:"submission_id"`
	Signature      string    `json:"signature"`
	DOI            string    `json:"doi,omitempty"`
	IncentiveTxRef string    `json:"incentive_tx_ref,omitempty"`
	MetadataStored bool      `json:"metadata_stored"`
	SubmittedAt    time.Time `json:"submitted_at"`

	// Warnings collects non-fatal step failures (DOI registration,
	// incentive payout, metadata persistence).
	Warnings []string `json:"warnings,omitempty"`
}

// ReviewRecord is the result of a review submission run.
type ReviewRecord struct {
	ReviewID       string   `json:"review_id"`
	IncentiveTxRef string   `json:"incentive_tx_ref,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
