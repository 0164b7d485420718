package scorer

import (
	"context"

	"github.com/sadewadee/job-applier/internal/domain"
)

// DisabledScorer is the degraded scorer used when no API key is configured
// or no résumé could be read. Every job scores as skipped so the run can
// proceed on keyword matching alone.
type DisabledScorer struct {
	Reason string
}

// Disabled creates a DisabledScorer with the given reason
func Disabled(reason string) *DisabledScorer {
	return &DisabledScorer{Reason: reason}
}

// Score always answers with the skipped verdict
func (d *DisabledScorer) Score(context.Context, []string, string) domain.ScoreResult {
	return domain.ScoreResult{
		Verdict:   domain.RelevanceSkipped,
		Rationale: d.Reason,
	}
}
