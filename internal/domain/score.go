package domain

// ScoreResult is the relevance scorer's answer for one job description.
// Scorers never fail outright: degraded or unavailable states are expressed
// through the skipped and error verdicts.
type ScoreResult struct {
	Verdict   Relevance `json:"verdict"`
	Rationale string    `json:"rationale,omitempty"`
	Model     string    `json:"model,omitempty"`
}
