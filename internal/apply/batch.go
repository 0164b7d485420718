package apply

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sadewadee/job-applier/internal/domain"
)

// BatchConfig controls concurrency-group processing
type BatchConfig struct {
	// Limit is the number of cards processed concurrently per group
	Limit int
	// InterCardDelay staggers tab opening inside a group; card i in a group
	// starts i*InterCardDelay after the group begins
	InterCardDelay time.Duration
	// InterBatchDelay is the sleep between consecutive groups
	InterBatchDelay time.Duration
}

// ProcessFunc turns one card into exactly one outcome
type ProcessFunc func(ctx context.Context, card Card) domain.Outcome

// RunBatch partitions cards into consecutive groups of cfg.Limit and runs
// each group concurrently with staggered starts. One card's failure never
// cancels its siblings. The result always holds exactly one outcome per
// input card in the original order: cards left unprocessed after an early
// abort (session externally closed, reported by openViews) are filled in as
// failed placeholders so no card silently drops from the tally.
func RunBatch(ctx context.Context, cards []Card, cfg BatchConfig, openViews func() int, process ProcessFunc) domain.BatchResult {
	if cfg.Limit < 1 {
		cfg.Limit = 1
	}

	results := make(domain.BatchResult, len(cards))
	for i := range results {
		results[i] = domain.NewOutcome("unknown", "unknown", "",
			domain.DecisionFailed, "session closed before processing")
	}

	for start := 0; start < len(cards); start += cfg.Limit {
		if openViews != nil && openViews() == 0 {
			return results
		}

		if ctx.Err() != nil {
			return results
		}

		end := min(start+cfg.Limit, len(cards))

		var wg sync.WaitGroup

		for i := start; i < end; i++ {
			wg.Add(1)

			go func(idx, offset int) {
				defer wg.Done()

				defer func() {
					if r := recover(); r != nil {
						results[idx] = domain.NewOutcome("unknown", "unknown", "",
							domain.DecisionFailed, fmt.Sprintf("panic during processing: %v", r))
					}
				}()

				stagger(ctx, time.Duration(offset)*cfg.InterCardDelay)

				results[idx] = process(ctx, cards[idx])
			}(i, i-start)
		}

		wg.Wait()

		if end < len(cards) {
			stagger(ctx, cfg.InterBatchDelay)
		}
	}

	return results
}

func stagger(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
