package model

// Metadata is the off-chain metadata persisted alongside a published
// submission. All fields are optional; OriginalityScore is attached after a
// successful analysis and is what triggers the pipeline's gate check.
type Metadata struct {
	Abstract         string   `json:"abstract,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	Coauthors        []string `json:"coauthors,omitempty"`
	Affiliations     []string `json:"affiliations,omitempty"`
	Funding          string   `json:"funding,omitempty"`
	Acknowledgements string   `json:"acknowledgements,omitempty"`

	// OriginalityScore is nil when no analysis was run. The pipeline
	// treats "no score" as "skip the gate", never as "passed".
	OriginalityScore *float64 `json:"originality_score,omitempty"`
}
