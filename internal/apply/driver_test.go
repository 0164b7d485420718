package apply

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadewadee/job-applier/internal/domain"
)

// fakeBoard serves a fixed number of cards per page, keyed by "term/page"
type fakeBoard struct {
	cardsPerPage map[string]int
	failNav      map[string]bool
	views        int
	navCalls     []string
	cardTitle    func(term string, page, idx int) string
}

func (b *fakeBoard) SearchURL(term string, page int) string {
	return fmt.Sprintf("%s/%d", term, page)
}

func (b *fakeBoard) Navigate(_ context.Context, url string, _ int) bool {
	b.navCalls = append(b.navCalls, url)

	return !b.failNav[url]
}

func (b *fakeBoard) AwaitCards(context.Context) bool {
	return b.currentCount() > 0
}

func (b *fakeBoard) Cards(context.Context) ([]Card, error) {
	n := b.currentCount()

	cards := make([]Card, n)
	for i := range cards {
		title := "card"
		if b.cardTitle != nil {
			title = b.cardTitle(b.lastNav(), 0, i)
		}

		cards[i] = &fakeCard{view: applicableView(title)}
	}

	return cards, nil
}

func (b *fakeBoard) OpenViews() int {
	if b.views < 0 {
		return 0
	}

	if b.views == 0 {
		return 1
	}

	return b.views
}

func (b *fakeBoard) lastNav() string {
	if len(b.navCalls) == 0 {
		return ""
	}

	return b.navCalls[len(b.navCalls)-1]
}

func (b *fakeBoard) currentCount() int {
	return b.cardsPerPage[b.lastNav()]
}

func newTestDriver(board Board, terms []string, maxPages int) *Driver {
	proc := newTestProcessor(&fakeScorer{}, &fakeSink{}, terms)

	return NewDriver(DriverConfig{
		Board:       board,
		Processor:   proc,
		Batch:       BatchConfig{Limit: 2, InterCardDelay: time.Millisecond},
		SearchTerms: terms,
		MaxPages:    maxPages,
		NavRetries:  1,
	})
}

func TestDriverSevenMatchingCards(t *testing.T) {
	board := &fakeBoard{
		cardsPerPage: map[string]int{"QA/1": 7},
		cardTitle: func(string, int, int) string {
			return "QA Engineer"
		},
	}

	driver := newTestDriver(board, []string{"QA"}, 3)

	stats, err := driver.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 7, stats.Applied)
	assert.Zero(t, stats.Failed)
	assert.Zero(t, stats.Skipped)
	// page 2 had no cards, so pagination stopped there
	assert.Equal(t, []string{"QA/1", "QA/2"}, board.navCalls)
}

func TestDriverNoCardsStopsPaginationImmediately(t *testing.T) {
	board := &fakeBoard{cardsPerPage: map[string]int{}}

	driver := newTestDriver(board, []string{"QA"}, 5)

	stats, err := driver.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RunStats{}, stats, "statistics unchanged")
	assert.Equal(t, []string{"QA/1"}, board.navCalls, "no further pages visited")
}

func TestDriverNavigationFailureMovesToNextTerm(t *testing.T) {
	board := &fakeBoard{
		cardsPerPage: map[string]int{"dev/1": 2},
		failNav:      map[string]bool{"QA/1": true},
		cardTitle: func(string, int, int) string {
			return "dev lead"
		},
	}

	driver := newTestDriver(board, []string{"QA", "dev"}, 2)

	stats, err := driver.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Contains(t, board.navCalls, "dev/1")
}

func TestDriverSessionClosedAbortsRun(t *testing.T) {
	board := &fakeBoard{views: -1} // OpenViews reports 0

	driver := newTestDriver(board, []string{"QA"}, 2)

	_, err := driver.Run(context.Background())

	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Empty(t, board.navCalls, "no navigation after session loss")
}

func TestDriverMaxPagesBoundsPagination(t *testing.T) {
	board := &fakeBoard{
		cardsPerPage: map[string]int{"QA/1": 1, "QA/2": 1, "QA/3": 1, "QA/4": 1},
		cardTitle: func(string, int, int) string {
			return "QA Engineer"
		},
	}

	driver := newTestDriver(board, []string{"QA"}, 2)

	stats, err := driver.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, []string{"QA/1", "QA/2"}, board.navCalls)
}

func TestDriverContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	board := &fakeBoard{cardsPerPage: map[string]int{"QA/1": 3}}
	driver := newTestDriver(board, []string{"QA"}, 2)

	_, err := driver.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
