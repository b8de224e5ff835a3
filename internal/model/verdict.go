package model

// VerdictStatus is the informational classification attached to a verdict.
// It is derived from the originality score with fixed cutoffs and is a
// display label only: the publication gate applies its own threshold to the
// numeric score and never consults this field.
type VerdictStatus string

const (
	StatusClean       VerdictStatus = "clean"       // score > 80
	StatusSuspicious  VerdictStatus = "suspicious"  // score 50-80
	StatusPlagiarized VerdictStatus = "plagiarized" // score < 50
)

// FlaggedSection is a span of the analyzed text that resembles existing
// content. Section similarities are independent per-section estimates and
// do not reconcile arithmetically with the overall score.
type FlaggedSection struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"` // 0-100
	Source     string  `json:"source,omitempty"`
}

// Verdict is the normalized output of an originality analysis.
type Verdict struct {
	OriginalityScore float64          `json:"originality_score"` // 0-100, higher = more original
	FlaggedSections  []FlaggedSection `json:"flagged_sections,omitempty"`
	Status           VerdictStatus    `json:"status"`
}

// Similarity returns the value compared against the rejection threshold.
func (v Verdict) Similarity() float64 {
	return 100 - v.OriginalityScore
}

// StatusForScore derives the informational status from an originality score.
func StatusForScore(score float64) VerdictStatus {
	switch {
	case score > 80:
		return StatusClean
	case score >= 50:
		return StatusSuspicious
	default:
		return StatusPlagiarized
	}
}
