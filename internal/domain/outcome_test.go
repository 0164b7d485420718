package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStatsAdd(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		expected RunStats
	}{
		{
			name: "Applied and failed",
			outcomes: []Outcome{
				NewOutcome("QA Engineer", "Acme", "https://jobs.example/1", DecisionApplied, ""),
				NewOutcome("QA Lead", "Acme", "https://jobs.example/2", DecisionFailed, "no tab opened"),
			},
			expected: RunStats{Total: 2, Applied: 1, Failed: 1},
		},
		{
			name: "Relevance counters",
			outcomes: []Outcome{
				NewOutcome("Dev", "A", "u1", DecisionApplied, "").WithRelevance(RelevanceMatch, "gpt-4o-mini"),
				NewOutcome("Dev", "B", "u2", DecisionSkipped, "no match").WithRelevance(RelevanceNoMatch, "gpt-4o-mini"),
				NewOutcome("Dev", "C", "u3", DecisionSkipped, "scorer disabled").WithRelevance(RelevanceSkipped, ""),
			},
			expected: RunStats{
				Total: 3, Applied: 1, Skipped: 2,
				Matches: 1, NoMatches: 1, ScoreSkipped: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats RunStats
			for _, o := range tt.outcomes {
				stats = stats.Add(o)
			}

			assert.Equal(t, tt.expected, stats)
		})
	}
}

func TestRunStatsAddAllMatchesAdd(t *testing.T) {
	batch := BatchResult{
		NewOutcome("a", "x", "u1", DecisionApplied, ""),
		NewOutcome("b", "y", "u2", DecisionAlreadyApplied, ""),
		NewOutcome("c", "z", "u3", DecisionSkipped, "insufficient signal"),
	}

	var byOne RunStats
	for _, o := range batch {
		byOne = byOne.Add(o)
	}

	assert.Equal(t, byOne, RunStats{}.AddAll(batch))
	assert.Equal(t, 3, byOne.Total)
}

func TestRunStatsMerge(t *testing.T) {
	a := RunStats{Total: 2, Applied: 1, Failed: 1}
	b := RunStats{Total: 3, Applied: 2, Skipped: 1, Matches: 2}

	merged := a.Merge(b)

	assert.Equal(t, 5, merged.Total)
	assert.Equal(t, 3, merged.Applied)
	assert.Equal(t, 1, merged.Failed)
	assert.Equal(t, 1, merged.Skipped)
	assert.Equal(t, 2, merged.Matches)
}

func TestDecisionIsTerminalSuccess(t *testing.T) {
	assert.True(t, DecisionApplied.IsTerminalSuccess())
	assert.True(t, DecisionAlreadyApplied.IsTerminalSuccess())
	assert.False(t, DecisionSkipped.IsTerminalSuccess())
	assert.False(t, DecisionFailed.IsTerminalSuccess())
}

func TestRelevanceShouldApply(t *testing.T) {
	assert.True(t, RelevanceMatch.ShouldApply())
	assert.True(t, RelevancePartialMatch.ShouldApply())
	assert.False(t, RelevanceNoMatch.ShouldApply())
	assert.False(t, RelevanceError.ShouldApply())
	assert.False(t, RelevanceSkipped.ShouldApply())
}
