package report

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sadewadee/job-applier/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists runs and outcomes to SQLite
type Store struct {
	db    *sql.DB
	runID uuid.UUID
}

// OpenStore opens (or creates) the database at path and applies migrations
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var migrations []string

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			migrations = append(migrations, entry.Name())
		}
	}

	sort.Strings(migrations)

	for _, migration := range migrations {
		version := strings.TrimSuffix(migration, ".up.sql")

		var exists bool
		if err := db.QueryRow(
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)", version,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", version, err)
		}

		if exists {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + migration)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", version, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", version, err)
		}

		if _, err := db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
	}

	return nil
}

// BeginRun records a new run and binds subsequent appends to it
func (s *Store) BeginRun(ctx context.Context, run *domain.Run) error {
	terms, err := json.Marshal(run.SearchTerms)
	if err != nil {
		return fmt.Errorf("failed to marshal search terms: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, search_terms, status, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID.String(), string(terms), run.Status, run.StartedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	s.runID = run.ID

	return nil
}

// Append stores one outcome row under the current run
func (s *Store) Append(ctx context.Context, o domain.Outcome) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (id, run_id, title, company, url, decision, reason, relevance, scored_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		o.ID.String(), s.runID.String(), o.Title, o.Company, o.URL,
		o.Decision, o.Reason, o.Relevance, o.ScoredBy,
		o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outcome: %w", err)
	}

	return nil
}

// FinishRun stores the run's terminal status and counters
func (s *Store) FinishRun(ctx context.Context, run *domain.Run) error {
	var finished any
	if run.FinishedAt != nil {
		finished = run.FinishedAt.Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, total = ?, applied = ?, already_applied = ?, skipped = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`,
		run.Status, run.Stats.Total, run.Stats.Applied, run.Stats.AlreadyApplied,
		run.Stats.Skipped, run.Stats.Failed, finished, run.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

// SeenURLs returns every non-empty detail URL recorded across past runs.
// They seed the deduper so completed applications are not repeated.
func (s *Store) SeenURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT url FROM outcomes
		WHERE url != '' AND decision IN (?, ?)
	`, domain.DecisionApplied, domain.DecisionAlreadyApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to query seen URLs: %w", err)
	}
	defer rows.Close()

	var urls []string

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan seen URL: %w", err)
		}

		urls = append(urls, u)
	}

	return urls, rows.Err()
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
