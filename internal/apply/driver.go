package apply

import (
	"context"
	"errors"
	"log"

	"github.com/sadewadee/job-applier/internal/domain"
)

// ErrSessionClosed signals that the browsing context lost all its views and
// the run cannot continue. It is the only per-run fatal condition.
var ErrSessionClosed = errors.New("session has no open views")

// Board is the search surface the driver paginates over
type Board interface {
	Navigate(ctx context.Context, url string, maxRetries int) bool
	SearchURL(term string, page int) string
	AwaitCards(ctx context.Context) bool
	Cards(ctx context.Context) ([]Card, error)
	OpenViews() int
}

// Driver iterates the configured search terms and folds every batch outcome
// into an explicit RunStats accumulator.
type Driver struct {
	board      Board
	proc       *Processor
	batch      BatchConfig
	terms      []string
	maxPages   int
	navRetries int
}

// DriverConfig wires a Driver
type DriverConfig struct {
	Board       Board
	Processor   *Processor
	Batch       BatchConfig
	SearchTerms []string
	MaxPages    int
	NavRetries  int
}

// NewDriver creates a Driver
func NewDriver(cfg DriverConfig) *Driver {
	if cfg.MaxPages < 1 {
		cfg.MaxPages = 1
	}

	if cfg.NavRetries < 0 {
		cfg.NavRetries = 0
	}

	return &Driver{
		board:      cfg.Board,
		proc:       cfg.Processor,
		batch:      cfg.Batch,
		terms:      cfg.SearchTerms,
		maxPages:   cfg.MaxPages,
		navRetries: cfg.NavRetries,
	}
}

// Run walks every term and page, processes each page's cards as a batch, and
// returns the accumulated statistics. Pagination for a term stops on
// navigation failure, absence of card markers, or an empty card list; only a
// session with zero open views aborts the whole run.
func (d *Driver) Run(ctx context.Context) (domain.RunStats, error) {
	var stats domain.RunStats

	for _, term := range d.terms {
		for pageNum := 1; pageNum <= d.maxPages; pageNum++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			if d.board.OpenViews() == 0 {
				return stats, ErrSessionClosed
			}

			target := d.board.SearchURL(term, pageNum)

			if !d.board.Navigate(ctx, target, d.navRetries) {
				log.Printf("navigation failed for %q page %d, moving to next term", term, pageNum)

				break
			}

			if !d.board.AwaitCards(ctx) {
				log.Printf("no results for %q on page %d", term, pageNum)

				break
			}

			cards, err := d.board.Cards(ctx)
			if err != nil {
				log.Printf("failed to collect cards for %q page %d: %v", term, pageNum, err)

				break
			}

			if len(cards) == 0 {
				break
			}

			log.Printf("term %q page %d: processing %d cards", term, pageNum, len(cards))

			batch := RunBatch(ctx, cards, d.batch, d.board.OpenViews, d.proc.ProcessCard)
			stats = stats.AddAll(batch)

			if d.board.OpenViews() == 0 {
				return stats, ErrSessionClosed
			}
		}
	}

	return stats, nil
}
