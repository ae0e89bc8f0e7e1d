package types

// ScoredCandidate pairs an artwork with its match score. Lower score is
// better in every scoring mode; confidence-like inputs are inverted before
// they reach this struct.
type ScoredCandidate struct {
	Artwork   Artwork        `json:"artwork"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown,omitempty"`
}

type ScoreBreakdown struct {
	ColorScore      float64 `json:"color_score,omitempty"`
	ContextBonus    float64 `json:"context_bonus,omitempty"`
	ConfidenceScore float64 `json:"confidence_score,omitempty"`
}
