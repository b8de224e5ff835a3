package model

import (
	"fmt"
	"strings"
)

// MinAnalyzableBody is the minimum body length (in characters) required
// before an originality analysis is attempted. Shorter texts produce
// low-signal verdicts.
const MinAnalyzableBody = 100

// Submission is a candidate publication unit. It is constructed once from
// user input and passed to the pipeline immutably; a resubmission after
// rejection is a new Submission.
type Submission struct {
	ContentRef     string   `json:"content_ref"`     // content-addressed reference (CID-like)
	Title          string   `json:"title"`           // non-empty
	BodyText       string   `json:"body_text"`       // text used for originality analysis
	AuthorIdentity string   `json:"author_identity"` // opaque signer identifier
	Keywords       []string `json:"keywords,omitempty"`
}

// Validate checks the structural invariants required before the pipeline
// will accept the submission.
func (s Submission) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("submission title is required")
	}
	if s.ContentRef == "" {
		return fmt.Errorf("submission content reference is required")
	}
	if s.AuthorIdentity == "" {
		return fmt.Errorf("submission author identity is required")
	}
	return nil
}

// AnalyzableBody reports whether the body text is long enough for a
// meaningful originality analysis. This is a caller-side precondition:
// the analyzer itself does not enforce it.
func (s Submission) AnalyzableBody() error {
	if n := len(strings.TrimSpace(s.BodyText)); n < MinAnalyzableBody {
		return fmt.Errorf("body text too short for analysis: %d characters (minimum %d)", n, MinAnalyzableBody)
	}
	return nil
}

// CanonicalMessage returns the message the author signs to prove
// authorship: contentRef and title joined with a colon.
func (s Submission) CanonicalMessage() string {
	return s.ContentRef + ":" + s.Title
}
