package review

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeLedger struct {
	err      error
	gotPaper string
	gotRef   string
	gotRate  int
	gotWho   string
}

func (f *fakeLedger) SubmitReview(_ context.Context, paperID, reviewRef string, rating int, reviewer string) (string, error) {
	f.gotPaper, f.gotRef, f.gotRate, f.gotWho = paperID, reviewRef, rating, reviewer
	if f.err != nil {
		return "", f.err
	}
	return "review-7", nil
}

type fakeIncentive struct {
	err    error
	called bool
}

func (f *fakeIncentive) RewardReviewer(_ context.Context, reviewer, reviewID string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return "tx-9", nil
}

func TestSubmit(t *testing.T) {
	ledger := &fakeLedger{}
	incentive := &fakeIncentive{}
	svc, err := NewService(ledger, incentive)
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	record, err := svc.Submit(context.Background(), "42", "bafyrev", 4, "0xd4e5f6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.ReviewID != "review-7" {
		t.Errorf("expected review ID review-7, got %s", record.ReviewID)
	}
	if record.IncentiveTxRef != "tx-9" {
		t.Errorf("expected incentive tx, got %s", record.IncentiveTxRef)
	}
	if ledger.gotPaper != "42" || ledger.gotRef != "bafyrev" || ledger.gotRate != 4 || ledger.gotWho != "0xd4e5f6" {
		t.Errorf("unexpected ledger call: %+v", ledger)
	}
}

func TestSubmit_LedgerErrorFatal(t *testing.T) {
	ledgerErr := errors.New("ledger error (503)")
	ledger := &fakeLedger{err: ledgerErr}
	incentive := &fakeIncentive{}
	svc, _ := NewService(ledger, incentive)

	_, err := svc.Submit(context.Background(), "42", "bafyrev", 4, "0xd4e5f6")
	if !errors.Is(err, ledgerErr) {
		t.Fatalf("expected the ledger error unchanged, got %v", err)
	}
	if incentive.called {
		t.Error("reviewer reward must not run when the ledger write fails")
	}
}

func TestSubmit_RewardFailureIsWarning(t *testing.T) {
	ledger := &fakeLedger{}
	incentive := &fakeIncentive{err: errors.New("payout rejected")}
	svc, _ := NewService(ledger, incentive)

	record, err := svc.Submit(context.Background(), "42", "bafyrev", 4, "0xd4e5f6")
	if err != nil {
		t.Fatalf("review must succeed despite a reward failure, got %v", err)
	}
	if record.IncentiveTxRef != "" {
		t.Errorf("failed reward must leave the tx ref empty, got %s", record.IncentiveTxRef)
	}
	if len(record.Warnings) != 1 || !strings.Contains(record.Warnings[0], "reviewer reward failed") {
		t.Errorf("expected a reward warning, got %v", record.Warnings)
	}
}

func TestSubmit_NilIncentive(t *testing.T) {
	svc, _ := NewService(&fakeLedger{}, nil)

	record, err := svc.Submit(context.Background(), "42", "bafyrev", 4, "0xd4e5f6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(record.Warnings) != 1 || !strings.Contains(record.Warnings[0], "reviewer reward skipped") {
		t.Errorf("expected a skip warning, got %v", record.Warnings)
	}
}

func TestSubmit_InputValidation(t *testing.T) {
	svc, _ := NewService(&fakeLedger{}, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		paperID  string
		ref      string
		rating   int
		reviewer string
	}{
		{"missing paper ID", "", "bafyrev", 4, "0xd4e5f6"},
		{"missing review ref", "42", "", 4, "0xd4e5f6"},
		{"rating too low", "42", "bafyrev", 0, "0xd4e5f6"},
		{"rating too high", "42", "bafyrev", 6, "0xd4e5f6"},
		{"missing reviewer", "42", "bafyrev", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tt.paperID, tt.ref, tt.rating, tt.reviewer); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewService_RequiresLedger(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Error("expected error for missing ledger")
	}
}
