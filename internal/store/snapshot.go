package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/edfolio/questline/ent"
	"github.com/edfolio/questline/ent/snapshot"
)

// stateRepo implements StateRepo using the ent client. The learner state
// is stored as a JSON document in a snapshot row; the most recent row
// wins. Concurrent writers (two terminals on one database) race at
// last-write-wins granularity, which is accepted.
type stateRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *stateRepo) Load(ctx context.Context) (json.RawMessage, error) {
	s, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldTimestamp), ent.Desc(snapshot.FieldID)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	raw, err := json.Marshal(s.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot data: %w", err)
	}

	// A snapshot that doesn't match the state schema is treated the same
	// as no snapshot at all: warn and fall back to defaults.
	if err := validateState(raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring corrupt state snapshot: %v\n", err)
		return nil, nil
	}

	return raw, nil
}

func (r *stateRepo) Save(ctx context.Context, data json.RawMessage) error {
	var dataMap map[string]any
	if err := json.Unmarshal(data, &dataMap); err != nil {
		return fmt.Errorf("unmarshal snapshot data: %w", err)
	}

	seqNum, err := r.seq.Current(ctx)
	if err != nil {
		return fmt.Errorf("current sequence: %w", err)
	}

	_, err = r.client.Snapshot.Create().
		SetSequence(seqNum).
		SetTimestamp(time.Now()).
		SetData(dataMap).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *stateRepo) Prune(ctx context.Context, keep int) error {
	// Find the timestamp threshold: the snapshot just past the keep window.
	snapshots, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldTimestamp), ent.Desc(snapshot.FieldID)).
		Offset(keep).
		Limit(1).
		All(ctx)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(snapshots) == 0 {
		return nil // fewer than keep snapshots exist
	}

	threshold := snapshots[0].Timestamp
	_, err = r.client.Snapshot.Delete().
		Where(snapshot.TimestampLTE(threshold)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
