package apply

import (
	"context"
	"log"

	"github.com/sadewadee/job-applier/internal/domain"
)

// runSubmission drives the application flow on an open detail view. It is a
// linear best-effort sequence: already-applied probe, apply trigger, optional
// next and submit controls, confirmation probe. Only a missing apply control
// is fatal for the job.
func (p *Processor) runSubmission(ctx context.Context, view View, title string) (domain.Decision, string) {
	if view.AnyVisible(p.sel.AlreadyApplied) {
		return domain.DecisionAlreadyApplied, "already applied"
	}

	if p.dryRun {
		return domain.DecisionSkipped, "dry run"
	}

	if !view.ClickFirst(p.sel.ApplyTrigger) {
		return domain.DecisionFailed, "no apply control found"
	}

	p.pause(ctx)

	if view.ClickFirst(p.sel.NextControl) {
		p.pause(ctx)
	}

	if view.ClickFirst(p.sel.SubmitControl) {
		p.pause(ctx)
	}

	if view.AnyVisible(p.sel.Confirmation) || view.MatchesURL(p.sel.ConfirmationURLHints) {
		return domain.DecisionApplied, "confirmed"
	}

	// No step failed but no confirmation appeared either. The flow reports
	// success anyway, which can over-count applications when the board
	// swallows the confirmation dialog. Kept as-is on purpose; the distinct
	// reason string makes these rows auditable in the report.
	log.Printf("no confirmation found for %q, reporting applied with low confidence", title)

	return domain.DecisionApplied, "no confirmation found"
}
