package store

import (
	"context"
	"encoding/json"
	"time"
)

// MemoryRepos is an in-memory StateRepo + EventRepo pair used when the
// database cannot be opened: the session keeps working, nothing survives
// exit. Also convenient in tests.
type MemoryRepos struct {
	snapshots [][]byte
	events    []AwardEventRecord
	nextSeq   int64
}

// NewMemoryRepos creates an empty in-memory repository pair.
func NewMemoryRepos() *MemoryRepos {
	return &MemoryRepos{nextSeq: 1}
}

func (m *MemoryRepos) Load(_ context.Context) (json.RawMessage, error) {
	if len(m.snapshots) == 0 {
		return nil, nil
	}
	latest := m.snapshots[len(m.snapshots)-1]
	out := make([]byte, len(latest))
	copy(out, latest)
	return out, nil
}

func (m *MemoryRepos) Save(_ context.Context, data json.RawMessage) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.snapshots = append(m.snapshots, cp)
	return nil
}

func (m *MemoryRepos) Prune(_ context.Context, keep int) error {
	if keep <= 0 || len(m.snapshots) <= keep {
		return nil
	}
	m.snapshots = m.snapshots[len(m.snapshots)-keep:]
	return nil
}

func (m *MemoryRepos) AppendAward(_ context.Context, data AwardEventData) error {
	rec := AwardEventRecord{
		Sequence:  m.nextSeq,
		Timestamp: time.Now(),
		Kind:      data.Kind,
		SourceKey: data.SourceKey,
		Amount:    data.Amount,
		XPAfter:   data.XPAfter,
		SessionID: data.SessionID,
	}
	m.nextSeq++
	m.events = append(m.events, rec)
	return nil
}

func (m *MemoryRepos) QueryAwards(_ context.Context, opts QueryOpts) ([]AwardEventRecord, error) {
	out := make([]AwardEventRecord, 0, len(m.events))
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if opts.After > 0 && e.Sequence <= opts.After {
			continue
		}
		if opts.Before > 0 && e.Sequence >= opts.Before {
			continue
		}
		if !opts.From.IsZero() && e.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && e.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
