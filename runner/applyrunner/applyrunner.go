// Package applyrunner is the default run mode: login, search, score, apply,
// and report.
package applyrunner

import (
	"context"
	"errors"
	"log"

	"github.com/sadewadee/job-applier/internal/apply"
	"github.com/sadewadee/job-applier/internal/browser"
	"github.com/sadewadee/job-applier/internal/dedup"
	"github.com/sadewadee/job-applier/internal/domain"
	"github.com/sadewadee/job-applier/internal/report"
	"github.com/sadewadee/job-applier/internal/resume"
	"github.com/sadewadee/job-applier/internal/scorer"
	"github.com/sadewadee/job-applier/internal/selectors"
	"github.com/sadewadee/job-applier/runner"
	"github.com/sadewadee/job-applier/tlmt"
)

// Runner wires the whole apply pipeline
type Runner struct {
	cfg   *runner.Config
	terms []string
	sel   selectors.Set

	sess   *browser.Session
	store  *report.Store
	xlsx   *report.XLSXWriter
	dedupe dedup.Deduper
}

// New validates the configuration and prepares the runner
func New(cfg *runner.Config) (*Runner, error) {
	terms, err := cfg.LoadTerms()
	if err != nil {
		return nil, err
	}

	sel, err := selectors.Load(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}

	return &Runner{cfg: cfg, terms: terms, sel: sel}, nil
}

// Run executes one full search-and-apply session
func (r *Runner) Run(ctx context.Context) error {
	keywords, relevance := r.buildScorer(ctx)

	store, err := report.OpenStore(r.cfg.DBPath)
	if err != nil {
		return err
	}

	r.store = store

	xlsx, err := report.NewXLSXWriter(r.cfg.ResultsFile, r.cfg.FlushEvery)
	if err != nil {
		return err
	}

	r.xlsx = xlsx

	if err := r.buildDeduper(ctx); err != nil {
		return err
	}

	sess, err := browser.NewSession(browser.Config{
		BaseURL:   r.cfg.BaseURL,
		Email:     r.cfg.Email,
		Password:  r.cfg.Password,
		Headful:   r.cfg.Headful,
		Selectors: r.sel,
	})
	if err != nil {
		return err
	}

	r.sess = sess

	if err := sess.Login(ctx); err != nil {
		return err
	}

	run := domain.NewRun(r.terms)
	if err := store.BeginRun(ctx, run); err != nil {
		return err
	}

	_ = runner.Telemetry().Send(ctx, tlmt.NewEvent("run_started", map[string]any{
		"terms":   len(r.terms),
		"dry_run": r.cfg.DryRun,
	}))

	processor := apply.NewProcessor(apply.ProcessorConfig{
		Selectors:      r.sel,
		SearchTerms:    r.terms,
		ResumeKeywords: keywords,
		Scorer:         relevance,
		Sink:           report.NewMultiSink(xlsx, store),
		Dedup:          r.dedupe,
		DryRun:         r.cfg.DryRun,
	})

	driver := apply.NewDriver(apply.DriverConfig{
		Board:     &board{sess: sess},
		Processor: processor,
		Batch: apply.BatchConfig{
			Limit:           r.cfg.Concurrency,
			InterCardDelay:  r.cfg.InterCardDelay,
			InterBatchDelay: r.cfg.InterBatchDelay,
		},
		SearchTerms: r.terms,
		MaxPages:    r.cfg.MaxPages,
		NavRetries:  r.cfg.NavRetries,
	})

	stats, runErr := driver.Run(ctx)

	status := domain.RunStatusCompleted
	if runErr != nil {
		status = domain.RunStatusFailed
	}

	run.Finish(status, stats)

	if err := store.FinishRun(ctx, run); err != nil {
		log.Printf("warning: failed to persist run summary: %v", err)
	}

	_ = runner.Telemetry().Send(ctx, tlmt.NewEvent("run_finished", map[string]any{
		"total":   stats.Total,
		"applied": stats.Applied,
		"failed":  stats.Failed,
	}))

	log.Println(stats.Summary())
	log.Printf("results written to %s (%d records)", r.cfg.ResultsFile, xlsx.RecordCount())

	// A session that lost its views ends the run early but is not a harness
	// failure; the partial statistics above are still valid.
	if errors.Is(runErr, apply.ErrSessionClosed) {
		log.Println("run aborted early: browsing session was closed")

		return nil
	}

	return runErr
}

// buildScorer resolves the relevance scorer from the configuration,
// degrading to the disabled scorer when the API key or résumé is missing
func (r *Runner) buildScorer(_ context.Context) ([]string, apply.Scorer) {
	if r.cfg.OpenAIKey == "" {
		log.Println("warning: OPENAI_API_KEY not set, relevance scoring disabled")

		return nil, scorer.Disabled("no API key configured")
	}

	if r.cfg.ResumePath == "" {
		log.Println("warning: no resume configured, relevance scoring disabled")

		return nil, scorer.Disabled("no resume configured")
	}

	text, err := resume.ReadText(r.cfg.ResumePath)
	if err != nil {
		log.Printf("warning: failed to read resume, relevance scoring disabled: %v", err)

		return nil, scorer.Disabled("resume unreadable")
	}

	keywords := resume.ExtractKeywords(text)
	if len(keywords) == 0 {
		log.Println("warning: resume yielded no keywords, relevance scoring disabled")

		return nil, scorer.Disabled("resume carried no signal")
	}

	client, err := scorer.New(r.cfg.OpenAIKey, r.cfg.OpenAIModel)
	if err != nil {
		log.Printf("warning: scorer unavailable: %v", err)

		return nil, scorer.Disabled("scorer unavailable")
	}

	log.Printf("relevance scoring enabled with %d resume keywords", len(keywords))

	return keywords, client
}

// buildDeduper selects the Redis seen-set when configured, the in-memory
// one otherwise, and seeds it with previously applied URLs
func (r *Runner) buildDeduper(ctx context.Context) error {
	if r.cfg.RedisAddr != "" {
		rd, err := dedup.NewRedis(dedup.RedisConfig{
			Addr:     r.cfg.RedisAddr,
			Password: r.cfg.RedisPass,
			DB:       r.cfg.RedisDB,
		})
		if err != nil {
			return err
		}

		r.dedupe = rd

		return nil
	}

	mem := dedup.NewMemory()

	urls, err := r.store.SeenURLs(ctx)
	if err != nil {
		log.Printf("warning: could not seed dedup from past runs: %v", err)
	}

	for _, u := range urls {
		mem.AddIfNotExists(ctx, u)
	}

	if len(urls) > 0 {
		log.Printf("seeded dedup with %d previously applied URLs", len(urls))
	}

	r.dedupe = mem

	return nil
}

// Close releases every resource the run acquired
func (r *Runner) Close(context.Context) error {
	var errs []error

	if r.sess != nil {
		errs = append(errs, r.sess.Close())
	}

	if r.xlsx != nil {
		errs = append(errs, r.xlsx.Close())
	}

	if r.store != nil {
		errs = append(errs, r.store.Close())
	}

	if r.dedupe != nil {
		errs = append(errs, r.dedupe.Close())
	}

	return errors.Join(errs...)
}
