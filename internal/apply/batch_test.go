package apply

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadewadee/job-applier/internal/domain"
)

type indexCard struct{ idx int }

func (c *indexCard) OpenDetail(context.Context) (View, error) { return nil, nil }

func indexCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = &indexCard{idx: i}
	}

	return cards
}

func indexProcess(_ context.Context, card Card) domain.Outcome {
	c := card.(*indexCard)

	return domain.NewOutcome(fmt.Sprintf("job-%d", c.idx), "co", "", domain.DecisionApplied, "")
}

func TestRunBatchCountAndOrder(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		limit int
	}{
		{name: "Seven cards limit two", n: 7, limit: 2},
		{name: "Exact multiple", n: 6, limit: 3},
		{name: "Single group", n: 2, limit: 5},
		{name: "Limit one", n: 4, limit: 1},
		{name: "Empty input", n: 0, limit: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := BatchConfig{Limit: tt.limit, InterCardDelay: time.Millisecond}

			results := RunBatch(context.Background(), indexCards(tt.n), cfg, nil, indexProcess)

			require.Len(t, results, tt.n)
			for i, o := range results {
				assert.Equal(t, fmt.Sprintf("job-%d", i), o.Title, "order must be preserved")
			}
		})
	}
}

func TestRunBatchGroupsAreSequential(t *testing.T) {
	var inFlight, peak atomic.Int32

	process := func(context.Context, Card) domain.Outcome {
		cur := inFlight.Add(1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)

		return domain.NewOutcome("t", "c", "", domain.DecisionApplied, "")
	}

	cfg := BatchConfig{Limit: 2}
	results := RunBatch(context.Background(), indexCards(7), cfg, nil, process)

	assert.Len(t, results, 7)
	assert.LessOrEqual(t, peak.Load(), int32(2), "no more than Limit cards in flight")
}

func TestRunBatchFailureIsolation(t *testing.T) {
	process := func(_ context.Context, card Card) domain.Outcome {
		c := card.(*indexCard)
		if c.idx == 1 {
			panic("card blew up")
		}

		return indexProcess(context.Background(), card)
	}

	results := RunBatch(context.Background(), indexCards(4), BatchConfig{Limit: 2}, nil, process)

	require.Len(t, results, 4)
	assert.Equal(t, domain.DecisionApplied, results[0].Decision)
	assert.Equal(t, domain.DecisionFailed, results[1].Decision)
	assert.Contains(t, results[1].Reason, "panic")
	assert.Equal(t, domain.DecisionApplied, results[2].Decision)
	assert.Equal(t, domain.DecisionApplied, results[3].Decision)
}

func TestRunBatchAbortsWhenSessionHasNoViews(t *testing.T) {
	var processed atomic.Int32

	process := func(_ context.Context, card Card) domain.Outcome {
		processed.Add(1)

		return indexProcess(context.Background(), card)
	}

	// first group sees an open view, everything after sees none
	calls := 0
	openViews := func() int {
		calls++
		if calls == 1 {
			return 1
		}

		return 0
	}

	results := RunBatch(context.Background(), indexCards(6), BatchConfig{Limit: 2}, openViews, process)

	require.Len(t, results, 6, "aborted cards still occupy their slots")
	assert.Equal(t, int32(2), processed.Load())

	for _, o := range results[2:] {
		assert.Equal(t, domain.DecisionFailed, o.Decision)
		assert.Equal(t, "session closed before processing", o.Reason)
	}
}

func TestRunBatchClampsZeroLimit(t *testing.T) {
	results := RunBatch(context.Background(), indexCards(3), BatchConfig{}, nil, indexProcess)

	assert.Len(t, results, 3)
}
