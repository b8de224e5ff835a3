// Package gate applies the similarity-threshold policy that decides whether
// a submission may proceed to publication.
package gate

import (
	"errors"
	"fmt"

	"github.com/scigate/scigate/internal/model"
)

// DefaultThresholdPercent is the policy default for the maximum tolerated
// similarity.
const DefaultThresholdPercent = 15

// ErrNoVerdict is returned when a gate check is requested without an
// originality verdict. Analysis being unavailable is never treated as
// analysis having passed.
var ErrNoVerdict = errors.New("no originality verdict available")

// Rejection is returned when the computed similarity exceeds the threshold.
// It is a policy outcome, not a system fault.
type Rejection struct {
	Similarity float64
	Threshold  float64
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("publication rejected: content analysis detected %.1f%% similarity with existing content, which exceeds the %.1f%% threshold", r.Similarity, r.Threshold)
}

// Decision is the gate's accept outcome with the computed similarity
// attached for display.
type Decision struct {
	Similarity float64
	Threshold  float64
}

// Gate decides accept/reject for a submission from its originality verdict.
//
// The decision uses only the numeric score: similarity = 100 - score,
// rejected iff similarity is strictly above the threshold. The verdict's
// status label is classified with different cutoffs and is deliberately
// never consulted here.
type Gate struct {
	ThresholdPercent float64
}

// New creates a gate with the given similarity threshold. A non-positive
// threshold falls back to the policy default.
func New(thresholdPercent float64) Gate {
	if thresholdPercent <= 0 {
		thresholdPercent = DefaultThresholdPercent
	}
	return Gate{ThresholdPercent: thresholdPercent}
}

// Check evaluates the verdict. It returns a Decision on acceptance, a
// *Rejection error when the threshold is exceeded, and ErrNoVerdict when no
// verdict is available.
func (g Gate) Check(v *model.Verdict) (Decision, error) {
	if v == nil {
		return Decision{}, ErrNoVerdict
	}

	similarity := v.Similarity()
	if similarity > g.ThresholdPercent {
		return Decision{}, &Rejection{Similarity: similarity, Threshold: g.ThresholdPercent}
	}

	return Decision{Similarity: similarity, Threshold: g.ThresholdPercent}, nil
}

// CheckScore evaluates a bare originality score, used when only the stored
// score is carried in submission metadata.
func (g Gate) CheckScore(originalityScore float64) (Decision, error) {
	return g.Check(&model.Verdict{OriginalityScore: originalityScore})
}
