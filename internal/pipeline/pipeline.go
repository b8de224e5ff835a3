// Package pipeline orchestrates the end-to-end publish flow: gate check,
// signing, ledger submission, then best-effort DOI registration, incentive
// payout, and off-chain metadata persistence.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/scigate/scigate/internal/gate"
	"github.com/scigate/scigate/internal/model"
)

// Signer produces a cryptographic signature over a canonical message on
// behalf of an author identity.
type Signer interface {
	Sign(ctx context.Context, message, identity string) (string, error)
}

// Ledger is the append-only publication system of record.
type Ledger interface {
	SubmitPaper(ctx context.Context, contentRef, title, signature, author string) (string, error)
}

// Registry assigns persistent identifiers to published submissions.
type Registry interface {
	RegisterDOI(ctx context.Context, submissionID, author, title string) (string, error)
}

// Incentive credits participants for platform actions.
type Incentive interface {
	RewardAuthor(ctx context.Context, author, submissionID string) (string, error)
}

// MetadataStore persists off-chain metadata keyed by submission ID.
type MetadataStore interface {
	Store(ctx context.Context, submissionID, author string, md model.Metadata) error
}

// Pipeline runs the publication workflow. Steps execute strictly in order;
// the first three (gate, sign, ledger) are fatal on failure, the trailing
// three (DOI, incentive, metadata) are best-effort and only produce
// warnings.
//
// There is no cross-run deduplication: retrying after a successful ledger
// submission creates a duplicate ledger entry. Rejecting duplicates is left
// to the ledger collaborator.
type Pipeline struct {
	gate      gate.Gate
	signer    Signer
	ledger    Ledger
	registry  Registry
	incentive Incentive
	metadata  MetadataStore
	verbose   bool
}

// New creates a pipeline. Signer and Ledger are required; Registry,
// Incentive, and MetadataStore may be nil, in which case their best-effort
// steps are skipped with a warning.
func New(g gate.Gate, signer Signer, ledger Ledger, registry Registry, incentive Incentive, metadata MetadataStore, verbose bool) (*Pipeline, error) {
	if signer == nil {
		return nil, fmt.Errorf("pipeline requires a signer")
	}
	if ledger == nil {
		return nil, fmt.Errorf("pipeline requires a ledger")
	}
	return &Pipeline{
		gate:      g,
		signer:    signer,
		ledger:    ledger,
		registry:  registry,
		incentive: incentive,
		metadata:  metadata,
		verbose:   verbose,
	}, nil
}

// Publish runs the full workflow for one submission. On success the record
// always carries the ledger-assigned submission ID and the signature;
// best-effort fields are absent when their steps failed.
func (p *Pipeline) Publish(ctx context.Context, sub model.Submission, md *model.Metadata) (*model.Record, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}

	// Request ID ties the log lines of one run together. It carries no
	// dedup semantics.
	requestID := uuid.NewString()
	p.logf("[%s] publishing %q (%s)", requestID, sub.Title, sub.ContentRef)

	// 1. Gate check. Only runs when a prior analysis attached a score;
	// rejection aborts before any ledger interaction.
	if md != nil && md.OriginalityScore != nil {
		if _, err := p.gate.CheckScore(*md.OriginalityScore); err != nil {
			return nil, err
		}
		p.logf("[%s] originality check passed: %.1f%% original content", requestID, *md.OriginalityScore)
	} else {
		p.logf("[%s] no originality score provided, gate check skipped", requestID)
	}

	// 2. Sign. Proof of authorship is required to proceed.
	message := sub.CanonicalMessage()
	signature, err := p.signer.Sign(ctx, message, sub.AuthorIdentity)
	if err != nil {
		return nil, fmt.Errorf("sign submission: %w", err)
	}

	// 3. Ledger submission. The underlying error is surfaced unchanged so
	// the caller can distinguish ledger faults from local ones.
	submissionID, err := p.ledger.SubmitPaper(ctx, sub.ContentRef, sub.Title, signature, sub.AuthorIdentity)
	if err != nil {
		return nil, err
	}
	p.logf("[%s] ledger accepted submission %s", requestID, submissionID)

	record := &model.Record{
		SubmissionID: submissionID,
		Signature:    signature,
		SubmittedAt:  time.Now().UTC(),
	}

	// 4. Persistent-identifier registration (best effort).
	if p.registry != nil {
		doi, err := p.registry.RegisterDOI(ctx, submissionID, sub.AuthorIdentity, sub.Title)
		if err != nil {
			record.Warnings = append(record.Warnings, fmt.Sprintf("DOI registration failed: %v", err))
		} else {
			record.DOI = doi
		}
	} else {
		record.Warnings = append(record.Warnings, "DOI registry not configured, registration skipped")
	}

	// 5. Incentive disbursement (best effort).
	if p.incentive != nil {
		txRef, err := p.incentive.RewardAuthor(ctx, sub.AuthorIdentity, submissionID)
		if err != nil {
			record.Warnings = append(record.Warnings, fmt.Sprintf("incentive payout failed: %v", err))
		} else {
			record.IncentiveTxRef = txRef
		}
	} else {
		record.Warnings = append(record.Warnings, "incentive store not configured, payout skipped")
	}

	// 6. Off-chain metadata persistence (best effort).
	if md != nil && p.metadata != nil {
		if err := p.metadata.Store(ctx, submissionID, sub.AuthorIdentity, *md); err != nil {
			record.Warnings = append(record.Warnings, fmt.Sprintf("metadata persistence failed: %v", err))
		} else {
			record.MetadataStored = true
		}
	}

	for _, w := range record.Warnings {
		p.logf("[%s] warning: %s", requestID, w)
	}

	return record, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
