package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/edfolio/questline/ent"
	"github.com/edfolio/questline/ent/awardevent"
)

// sequenceCounter manages the global monotonic sequence number shared by
// award events and snapshots. Snapshot rows record the sequence they were
// taken at, so the snapshot and the event log can be correlated even
// though they live in separate ent-managed tables.
//
// Uses raw SQL outside ent because ent doesn't support database-level
// atomic counters. The mutex serializes within the process; the RETURNING
// clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Current returns the last assigned sequence number without incrementing.
// Zero means no events have been recorded yet.
func (sc *sequenceCounter) Current(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var next int64
	err := sc.db.QueryRowContext(ctx,
		`SELECT next_val FROM global_sequence WHERE id = 1`,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo using the ent client.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendAward(ctx context.Context, data AwardEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AwardEvent.Create().
		SetSequence(seqNum).
		SetKind(data.Kind).
		SetSourceKey(data.SourceKey).
		SetAmount(data.Amount).
		SetXpAfter(data.XPAfter).
		SetSessionID(data.SessionID).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save award event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAwards(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error) {
	query := r.client.AwardEvent.Query().
		Order(ent.Desc(awardevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(awardevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(awardevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(awardevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(awardevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query award events: %w", err)
	}

	records := make([]AwardEventRecord, len(events))
	for i, e := range events {
		records[i] = AwardEventRecord{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			Kind:      e.Kind,
			SourceKey: e.SourceKey,
			Amount:    e.Amount,
			XPAfter:   e.XpAfter,
			SessionID: e.SessionID,
		}
	}
	return records, nil
}
