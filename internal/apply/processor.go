// Package apply orchestrates job-card processing: opening detail views,
// extracting content, deciding whether to apply, driving the submission
// flow, and tallying outcomes per search term.
package apply

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sadewadee/job-applier/internal/domain"
	"github.com/sadewadee/job-applier/internal/selectors"
)

// View is one job's detail tab as the processor sees it
type View interface {
	URL() string
	ExtractFirst(sels []string) string
	AnyVisible(sels []string) bool
	ClickFirst(sels []string) bool
	MatchesURL(hints []string) bool
	Close() error
}

// Card is an opaque handle to one job card on a results page
type Card interface {
	OpenDetail(ctx context.Context) (View, error)
}

// Scorer classifies a job description against résumé keywords
type Scorer interface {
	Score(ctx context.Context, keywords []string, description string) domain.ScoreResult
}

// OutcomeSink records one row per processed card
type OutcomeSink interface {
	Append(ctx context.Context, o domain.Outcome) error
}

// Deduper tracks which detail URLs were already processed.
// AddIfNotExists returns true when the key is new.
type Deduper interface {
	AddIfNotExists(ctx context.Context, key string) bool
}

// Processor runs the per-card state machine:
// opening -> extracting -> deciding -> applying -> terminal.
type Processor struct {
	sel       selectors.Set
	terms     []string
	keywords  []string
	scorer    Scorer
	sink      OutcomeSink
	dedup     Deduper
	stepDelay time.Duration
	dryRun    bool
}

// ProcessorConfig wires a Processor
type ProcessorConfig struct {
	Selectors      selectors.Set
	SearchTerms    []string
	ResumeKeywords []string
	Scorer         Scorer
	Sink           OutcomeSink
	Dedup          Deduper
	StepDelay      time.Duration
	DryRun         bool
}

// NewProcessor creates a Processor
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.StepDelay == 0 {
		cfg.StepDelay = time.Second
	}

	return &Processor{
		sel:       cfg.Selectors,
		terms:     cfg.SearchTerms,
		keywords:  cfg.ResumeKeywords,
		scorer:    cfg.Scorer,
		sink:      cfg.Sink,
		dedup:     cfg.Dedup,
		stepDelay: cfg.StepDelay,
		dryRun:    cfg.DryRun,
	}
}

// ProcessCard runs one card through to a terminal outcome. Per-job failures
// are converted into failed outcomes, never returned as errors, and the
// detail view is closed on every path. Exactly one outcome is recorded.
func (p *Processor) ProcessCard(ctx context.Context, card Card) domain.Outcome {
	view, err := card.OpenDetail(ctx)
	if err != nil {
		return p.record(ctx, domain.NewOutcome("unknown", "unknown", "",
			domain.DecisionFailed, "no tab opened"))
	}

	defer func() {
		if err := view.Close(); err != nil {
			log.Printf("warning: failed to close detail view: %v", err)
		}
	}()

	title := view.ExtractFirst(p.sel.Title)
	company := view.ExtractFirst(p.sel.Company)
	description := view.ExtractFirst(p.sel.Description)
	jobURL := view.URL()

	if p.dedup != nil && jobURL != "" && !p.dedup.AddIfNotExists(ctx, jobURL) {
		return p.record(ctx, domain.NewOutcome(title, company, jobURL,
			domain.DecisionSkipped, "duplicate detail URL"))
	}

	scored := false

	var score domain.ScoreResult

	if !matchesAnyTerm(title, p.terms) {
		if !hasContent(description) {
			return p.record(ctx, domain.NewOutcome(title, company, jobURL,
				domain.DecisionSkipped, "insufficient signal"))
		}

		score = p.scorer.Score(ctx, p.keywords, description)
		scored = true

		if !score.Verdict.ShouldApply() {
			reason := "relevance " + string(score.Verdict)
			if score.Rationale != "" {
				reason += ": " + score.Rationale
			}

			outcome := domain.NewOutcome(title, company, jobURL, domain.DecisionSkipped, reason).
				WithRelevance(score.Verdict, score.Model)

			return p.record(ctx, outcome)
		}
	}

	decision, reason := p.runSubmission(ctx, view, title)

	outcome := domain.NewOutcome(title, company, jobURL, decision, reason)
	if scored {
		outcome = outcome.WithRelevance(score.Verdict, score.Model)
	}

	return p.record(ctx, outcome)
}

func (p *Processor) record(ctx context.Context, o domain.Outcome) domain.Outcome {
	if p.sink != nil {
		if err := p.sink.Append(ctx, o); err != nil {
			log.Printf("warning: failed to record outcome for %q: %v", o.Title, err)
		}
	}

	return o
}

// matchesAnyTerm reports a case-insensitive substring match of any search
// term in the title
func matchesAnyTerm(title string, terms []string) bool {
	lowered := strings.ToLower(title)

	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lowered, term) {
			return true
		}
	}

	return false
}

func hasContent(text string) bool {
	return text != "" && text != "unknown"
}

func (p *Processor) pause(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(p.stepDelay):
	}
}
