package store

import (
	"context"
	"encoding/json"
	"time"
)

// Award kinds recorded in the event log.
const (
	KindGrant  = "grant"  // one-time source grant
	KindLesson = "lesson" // lesson completion bonus
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// AwardEventData captures a single XP award for the event log.
type AwardEventData struct {
	Kind      string // KindGrant or KindLesson
	SourceKey string // source key for grants, lesson key for completions
	Amount    int
	XPAfter   int
	SessionID string
}

// AwardEventRecord is a stored award event.
type AwardEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	Kind      string
	SourceKey string
	Amount    int
	XPAfter   int
	SessionID string
}

// StateRepo persists the learner state as a single logical record.
//
// Load fails soft: a stored snapshot that is unreadable or shape-invalid
// is reported as absent (nil, nil) after a warning, never as an error.
// Only genuine storage failures surface as errors, and callers are
// expected to degrade to defaults rather than abort.
type StateRepo interface {
	// Load returns the most recent state snapshot, or nil if none exists
	// or the stored value is corrupt.
	Load(ctx context.Context) (json.RawMessage, error)

	// Save stores a new state snapshot. The write completes before Save
	// returns, so a subsequent Load observes it.
	Save(ctx context.Context, data json.RawMessage) error

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// EventRepo provides append and query access to the award event log.
type EventRepo interface {
	// AppendAward records an XP award event.
	AppendAward(ctx context.Context, data AwardEventData) error

	// QueryAwards returns award events, most recent first.
	QueryAwards(ctx context.Context, opts QueryOpts) ([]AwardEventRecord, error)
}
