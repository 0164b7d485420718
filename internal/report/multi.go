package report

import (
	"context"
	"errors"

	"github.com/sadewadee/job-applier/internal/domain"
)

// Sink records outcomes
type Sink interface {
	Append(ctx context.Context, o domain.Outcome) error
}

// MultiSink fans every outcome out to several sinks. An error in one sink
// does not stop the others; errors are joined.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a MultiSink, dropping nil members
func NewMultiSink(sinks ...Sink) *MultiSink {
	kept := make([]Sink, 0, len(sinks))

	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}

	return &MultiSink{sinks: kept}
}

// Append writes the outcome to every sink
func (m *MultiSink) Append(ctx context.Context, o domain.Outcome) error {
	var errs []error

	for _, s := range m.sinks {
		if err := s.Append(ctx, o); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
