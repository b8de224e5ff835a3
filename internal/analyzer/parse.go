package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/scigate/scigate/internal/model"
)

// verdictPayload mirrors the wire shape the analysis service is instructed
// to produce. Pointers distinguish "absent" from zero values so a response
// missing the score fails loudly instead of defaulting to 0.
type verdictPayload struct {
	OriginalityScore *float64 `json:"originalityScore"`
	FlaggedSections  []struct {
		Text       string   `json:"text"`
		Similarity *float64 `json:"similarity"`
		Source     *string  `json:"source"`
	} `json:"flaggedSections"`
	Status string `json:"status"`
}

// parseVerdict locates the first balanced JSON object in the response text
// and strictly decodes it into a Verdict. Model responses routinely wrap the
// object in prose or markdown fences, so the object is searched for rather
// than decoded from position zero.
func parseVerdict(responseText string) (*model.Verdict, error) {
	payload, err := extractObject(responseText)
	if err != nil {
		return nil, err
	}

	var raw verdictPayload
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("decode verdict object: %v", err)}
	}

	if raw.OriginalityScore == nil {
		return nil, &ParseError{Reason: "verdict is missing originalityScore"}
	}
	score := *raw.OriginalityScore
	if score < 0 || score > 100 {
		return nil, &ParseError{Reason: fmt.Sprintf("originalityScore %.1f out of range [0,100]", score)}
	}

	verdict := &model.Verdict{
		OriginalityScore: score,
		Status:           model.VerdictStatus(raw.Status),
	}

	for i, s := range raw.FlaggedSections {
		if s.Similarity == nil {
			return nil, &ParseError{Reason: fmt.Sprintf("flagged section %d is missing similarity", i)}
		}
		if *s.Similarity < 0 || *s.Similarity > 100 {
			return nil, &ParseError{Reason: fmt.Sprintf("flagged section %d similarity %.1f out of range [0,100]", i, *s.Similarity)}
		}
		section := model.FlaggedSection{
			Text:       s.Text,
			Similarity: *s.Similarity,
		}
		if s.Source != nil {
			section.Source = *s.Source
		}
		verdict.FlaggedSections = append(verdict.FlaggedSections, section)
	}

	switch verdict.Status {
	case model.StatusClean, model.StatusSuspicious, model.StatusPlagiarized:
	case "":
		// Some responses omit the label; derive it from the score.
		verdict.Status = model.StatusForScore(score)
	default:
		return nil, &ParseError{Reason: fmt.Sprintf("unknown verdict status %q", verdict.Status)}
	}

	return verdict, nil
}

// extractObject returns the first balanced {...} substring, tracking string
// literals and escapes so braces inside quoted text do not confuse the
// balance count.
func extractObject(s string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], nil
				}
			}
		}
	}

	return "", &ParseError{Reason: "no JSON object found in response"}
}
