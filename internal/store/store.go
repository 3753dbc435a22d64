package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/xkilldash9x/verdict-cli/api/schemas"
	"go.uber.org/zap"
)

// ErrRunNotFound is returned when the requested run has no record in the
// store. This is an access failure, not a grading outcome: a run that
// exists but contains no events still loads (and simply fails most checks).
var ErrRunNotFound = errors.New("run not found")

// ErrUnreadable wraps any store-access problem. Callers must never conflate
// it with a false predicate result.
var ErrUnreadable = errors.New("interaction record unreadable")

// DBPool abstracts the pgxpool.Pool to allow for mocking in tests. It is
// query-only: the collection harness owns every write.
type DBPool interface {
	Ping(ctx context.Context) error
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Store reads finished interaction records out of PostgreSQL. The collection
// harness owns the write side; everything here is read-only.
type Store struct {
	pool DBPool
	log  *zap.Logger
}

// New creates a new store instance and verifies the connection.
func New(ctx context.Context, pool DBPool, logger *zap.Logger) (*Store, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: failed to ping database: %v", ErrUnreadable, err)
	}

	return &Store{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

// GetRun loads the complete interaction record for one run: clicks and
// inputs in capture order, plus the scratchpad text. Event multiplicity is
// preserved exactly as recorded.
func (s *Store) GetRun(ctx context.Context, runID string) (*schemas.InteractionRecord, error) {
	rec := &schemas.InteractionRecord{RunID: runID}

	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(scratchpad, '') FROM runs WHERE id = $1;`,
		runID,
	).Scan(&rec.Scratchpad)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, fmt.Errorf("%w: failed to query run %s: %v", ErrUnreadable, runID, err)
	}

	if rec.Clicks, err = s.loadClicks(ctx, runID); err != nil {
		return nil, err
	}
	if rec.Inputs, err = s.loadInputs(ctx, runID); err != nil {
		return nil, err
	}

	s.log.Debug("Loaded interaction record",
		zap.String("run_id", runID),
		zap.Int("clicks", len(rec.Clicks)),
		zap.Int("inputs", len(rec.Inputs)),
	)
	return rec, nil
}

func (s *Store) loadClicks(ctx context.Context, runID string) ([]schemas.ClickEvent, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT COALESCE(element_id, ''), COALESCE(path, ''), occurred_at
        FROM click_events
        WHERE run_id = $1
        ORDER BY occurred_at ASC;
    `, runID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query clicks for run %s: %v", ErrUnreadable, runID, err)
	}
	defer rows.Close()

	var clicks []schemas.ClickEvent
	for rows.Next() {
		var c schemas.ClickEvent
		if err := rows.Scan(&c.ElementID, &c.Path, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: failed to scan click row: %v", ErrUnreadable, err)
		}
		clicks = append(clicks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during click row iteration: %v", ErrUnreadable, err)
	}
	return clicks, nil
}

func (s *Store) loadInputs(ctx context.Context, runID string) ([]schemas.InputEvent, error) {
	rows, err := s.pool.Query(ctx, `
        SELECT COALESCE(path, ''), COALESCE(value, ''), occurred_at
        FROM input_events
        WHERE run_id = $1
        ORDER BY occurred_at ASC;
    `, runID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query inputs for run %s: %v", ErrUnreadable, runID, err)
	}
	defer rows.Close()

	var inputs []schemas.InputEvent
	for rows.Next() {
		var in schemas.InputEvent
		if err := rows.Scan(&in.Path, &in.Value, &in.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: failed to scan input row: %v", ErrUnreadable, err)
		}
		inputs = append(inputs, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during input row iteration: %v", ErrUnreadable, err)
	}
	return inputs, nil
}

// ListRunIDs returns every run id present in the store, in insertion order.
func (s *Store) ListRunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM runs ORDER BY created_at ASC;`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list runs: %v", ErrUnreadable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: failed to scan run id: %v", ErrUnreadable, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error during run id iteration: %v", ErrUnreadable, err)
	}
	return ids, nil
}
