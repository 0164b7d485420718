package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Decision is the terminal result of processing one job card
type Decision string

const (
	DecisionApplied        Decision = "applied"
	DecisionAlreadyApplied Decision = "already_applied"
	DecisionSkipped        Decision = "skipped"
	DecisionFailed         Decision = "failed"
)

// IsTerminalSuccess returns true if the decision counts as a successful application
func (d Decision) IsTerminalSuccess() bool {
	return d == DecisionApplied || d == DecisionAlreadyApplied
}

// Relevance is the verdict of the relevance scorer for one job description
type Relevance string

const (
	RelevanceMatch        Relevance = "match"
	RelevancePartialMatch Relevance = "partial_match"
	RelevanceNoMatch      Relevance = "no_match"
	RelevanceSkipped      Relevance = "skipped"
	RelevanceError        Relevance = "error"
)

// ShouldApply returns true if the verdict routes the job to the apply sequence
func (r Relevance) ShouldApply() bool {
	return r == RelevanceMatch || r == RelevancePartialMatch
}

// Outcome is the single recorded result of processing one job card.
// It is built once per card and never mutated afterwards.
type Outcome struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	URL       string    `json:"url"`
	Decision  Decision  `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	Relevance Relevance `json:"relevance,omitempty"`
	ScoredBy  string    `json:"scored_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOutcome creates an Outcome with a fresh ID and timestamp
func NewOutcome(title, company, url string, decision Decision, reason string) Outcome {
	return Outcome{
		ID:        uuid.New(),
		Title:     title,
		Company:   company,
		URL:       url,
		Decision:  decision,
		Reason:    reason,
		CreatedAt: time.Now().UTC(),
	}
}

// WithRelevance returns a copy of the outcome carrying a relevance verdict
func (o Outcome) WithRelevance(r Relevance, scoredBy string) Outcome {
	o.Relevance = r
	o.ScoredBy = scoredBy

	return o
}

// BatchResult is the ordered list of outcomes for one group of cards.
// It always holds exactly one entry per dispatched card, failures included.
type BatchResult []Outcome

// RunStats accumulates counters over a whole run. It is a value that the
// search driver threads through and returns, not shared mutable state.
type RunStats struct {
	Total          int `json:"total"`
	Applied        int `json:"applied"`
	AlreadyApplied int `json:"already_applied"`
	Skipped        int `json:"skipped"`
	Failed         int `json:"failed"`

	Matches        int `json:"matches"`
	PartialMatches int `json:"partial_matches"`
	NoMatches      int `json:"no_matches"`
	ScoreSkipped   int `json:"score_skipped"`
	ScoreErrors    int `json:"score_errors"`
}

// Add folds one outcome into the counters and returns the updated value
func (s RunStats) Add(o Outcome) RunStats {
	s.Total++

	switch o.Decision {
	case DecisionApplied:
		s.Applied++
	case DecisionAlreadyApplied:
		s.AlreadyApplied++
	case DecisionSkipped:
		s.Skipped++
	case DecisionFailed:
		s.Failed++
	}

	switch o.Relevance {
	case RelevanceMatch:
		s.Matches++
	case RelevancePartialMatch:
		s.PartialMatches++
	case RelevanceNoMatch:
		s.NoMatches++
	case RelevanceSkipped:
		s.ScoreSkipped++
	case RelevanceError:
		s.ScoreErrors++
	}

	return s
}

// AddAll folds a whole batch result into the counters
func (s RunStats) AddAll(batch BatchResult) RunStats {
	for _, o := range batch {
		s = s.Add(o)
	}

	return s
}

// Merge combines two accumulators
func (s RunStats) Merge(other RunStats) RunStats {
	s.Total += other.Total
	s.Applied += other.Applied
	s.AlreadyApplied += other.AlreadyApplied
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Matches += other.Matches
	s.PartialMatches += other.PartialMatches
	s.NoMatches += other.NoMatches
	s.ScoreSkipped += other.ScoreSkipped
	s.ScoreErrors += other.ScoreErrors

	return s
}

// Summary renders the counters as a human readable report
func (s RunStats) Summary() string {
	return fmt.Sprintf(
		"processed %d jobs: %d applied, %d already applied, %d skipped, %d failed "+
			"(relevance: %d match, %d partial, %d no match, %d skipped, %d error)",
		s.Total, s.Applied, s.AlreadyApplied, s.Skipped, s.Failed,
		s.Matches, s.PartialMatches, s.NoMatches, s.ScoreSkipped, s.ScoreErrors,
	)
}
