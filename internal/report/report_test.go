package report

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sadewadee/job-applier/internal/domain"
)

func TestXLSXWriterAppendAndFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")

	w, err := NewXLSXWriter(path, 2)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, w.Append(ctx, domain.NewOutcome("QA Engineer", "Acme", "https://b/1", domain.DecisionApplied, "confirmed")))
	require.NoError(t, w.Append(ctx, domain.NewOutcome("QA Lead", "Globex", "https://b/2", domain.DecisionSkipped, "dry run")))
	require.NoError(t, w.Close())

	assert.Equal(t, 2, w.RecordCount())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Outcomes")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two outcome rows")
	assert.Equal(t, "Title", rows[0][1])
	assert.Equal(t, "QA Engineer", rows[1][1])
	assert.Equal(t, "applied", rows[1][3])
	assert.Equal(t, "Globex", rows[2][2])
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applier.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	run := domain.NewRun([]string{"QA", "SDET"})
	require.NoError(t, store.BeginRun(ctx, run))

	applied := domain.NewOutcome("QA Engineer", "Acme", "https://b/1", domain.DecisionApplied, "confirmed")
	skipped := domain.NewOutcome("Chef", "Bistro", "https://b/2", domain.DecisionSkipped, "no match")
	require.NoError(t, store.Append(ctx, applied))
	require.NoError(t, store.Append(ctx, skipped))

	stats := domain.RunStats{}.Add(applied).Add(skipped)
	run.Finish(domain.RunStatusCompleted, stats)
	require.NoError(t, store.FinishRun(ctx, run))

	urls, err := store.SeenURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://b/1"}, urls, "only applied decisions seed the seen-set")
}

func TestStoreMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "applier.db")

	store, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// reopening re-runs the migration check without error
	store, err = OpenStore(path)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

type failingSink struct{}

func (failingSink) Append(context.Context, domain.Outcome) error {
	return errors.New("disk full")
}

type countingSink struct{ n int }

func (c *countingSink) Append(context.Context, domain.Outcome) error {
	c.n++

	return nil
}

func TestMultiSinkContinuesPastFailures(t *testing.T) {
	counter := &countingSink{}
	sink := NewMultiSink(failingSink{}, counter, nil)

	err := sink.Append(context.Background(), domain.NewOutcome("t", "c", "", domain.DecisionApplied, ""))

	assert.Error(t, err)
	assert.Equal(t, 1, counter.n, "healthy sinks still receive the outcome")
}
