// Package engine owns the learner state and the reward rules: XP
// accrual, level derivation, streak continuation, one-time-award
// bookkeeping, and lesson completion. Every mutation persists through a
// store.StateRepo before the call returns; display is a separate, pure
// projection (see internal/view).
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/edfolio/questline/internal/store"
)

// dateLayout is the fixed streak resolution: UTC calendar dates.
const dateLayout = "2006-01-02"

// snapshotKeep bounds how many historical snapshots survive pruning.
const snapshotKeep = 20

// GrantResult reports the outcome of a one-time grant.
type GrantResult struct {
	// Granted is false when the source key already granted, or the
	// amount was not positive. Either way nothing changed.
	Granted bool
}

// CompletionResult reports the outcome of a lesson completion.
type CompletionResult struct {
	// Unknown is true when the lesson key isn't part of the course.
	// Nothing changed and nothing was written.
	Unknown bool

	// Already is true when the lesson was completed earlier. No XP was
	// granted, but the state was flushed to storage.
	Already bool
}

// Engine is the single owner of a learner's State. Construct one per
// session, Initialize it before any projection or mutation, and pass it
// by handle to whatever renders or mutates.
//
// Not safe for concurrent use; all mutations happen on one goroutine in
// response to discrete user actions, matching the event-driven model of
// the site it replaces.
type Engine struct {
	repo      store.StateRepo
	events    store.EventRepo
	cfg       Config
	state     State
	sessionID string

	// now is the clock seam for streak tests.
	now func() time.Time
}

// New creates an Engine over the given repositories. events may be nil;
// award history is then simply not recorded.
func New(repo store.StateRepo, events store.EventRepo, cfg Config) *Engine {
	return &Engine{
		repo:      repo,
		events:    events,
		cfg:       cfg,
		state:     DefaultState(cfg),
		sessionID: uuid.New().String(),
		now:       time.Now,
	}
}

// Initialize loads stored state, merges it over defaults, and recomputes
// the level. It never fails: a storage error or corrupt snapshot logs a
// warning and leaves the defaults in place. Nothing is persisted; a
// no-op write on startup is deliberately avoided.
func (e *Engine) Initialize(ctx context.Context) State {
	defaults := DefaultState(e.cfg)
	e.state = defaults

	raw, err := e.repo.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load saved progress, starting fresh: %v\n", err)
		return e.State()
	}
	if raw == nil {
		return e.State()
	}

	merged, err := mergeOverDefaults(defaults, raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saved progress unusable, starting fresh: %v\n", err)
		return e.State()
	}

	e.state = merged
	return e.State()
}

// State returns a copy of the current state. Callers can't mutate the
// engine through it.
func (e *Engine) State() State {
	return e.state.clone()
}

// Config returns the reward rules this engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// GrantOnce grants amount XP for sourceKey if that key has never granted
// before. Repeated calls with the same key change nothing and trigger no
// write. A non-positive amount is rejected as a no-op, not an error.
func (e *Engine) GrantOnce(ctx context.Context, sourceKey string, amount int) GrantResult {
	if amount <= 0 {
		return GrantResult{}
	}
	if e.state.SourcesAwarded[sourceKey] {
		return GrantResult{}
	}

	e.state.SourcesAwarded[sourceKey] = true
	e.state.XP += amount
	e.state.recalcLevel()
	e.touchStreak()

	e.persist(ctx)
	e.appendAward(ctx, store.KindGrant, sourceKey, amount)
	return GrantResult{Granted: true}
}

// CompleteLesson transitions a lesson from locked to completed, exactly
// once. The first completion grants the configured bonus XP; later calls
// report Already and still flush state, mirroring the site's
// save-and-repaint path, but grant nothing.
func (e *Engine) CompleteLesson(ctx context.Context, lessonKey string) CompletionResult {
	if !e.cfg.knownLesson(lessonKey) {
		return CompletionResult{Unknown: true}
	}

	if e.state.Lessons[lessonKey].Completed {
		e.persist(ctx)
		return CompletionResult{Already: true}
	}

	e.state.Lessons[lessonKey] = LessonState{Completed: true}
	e.state.XP += e.cfg.CompletionBonus
	e.state.recalcLevel()
	e.touchStreak()

	e.persist(ctx)
	e.appendAward(ctx, store.KindLesson, lessonKey, e.cfg.CompletionBonus)
	return CompletionResult{}
}

// touchStreak records activity for today. The first activity ever sets
// the streak to 1; activity on any date other than the last active date
// adds 1, no matter how many days elapsed — gaps never reset the streak.
// (The site shipped with this lenient rule; it is kept verbatim.) At
// most one increment happens per calendar day.
func (e *Engine) touchStreak() {
	today := e.now().UTC().Format(dateLayout)
	switch {
	case e.state.LastActiveDate == "":
		e.state.Streak = 1
	case e.state.LastActiveDate != today:
		e.state.Streak++
	}
	e.state.LastActiveDate = today
}

// persist writes the current state. Storage failures are warned about
// and otherwise ignored: the session keeps running on in-memory state
// and the UI keeps reflecting it.
func (e *Engine) persist(ctx context.Context) {
	raw, err := json.Marshal(e.state)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to encode progress: %v\n", err)
		return
	}
	if err := e.repo.Save(ctx, raw); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save progress: %v\n", err)
		return
	}
	// History is bounded; a prune failure is harmless.
	_ = e.repo.Prune(ctx, snapshotKeep)
}

// appendAward records the award in the event log. Log failures never
// fail the grant.
func (e *Engine) appendAward(ctx context.Context, kind, sourceKey string, amount int) {
	if e.events == nil {
		return
	}
	data := store.AwardEventData{
		Kind:      kind,
		SourceKey: sourceKey,
		Amount:    amount,
		XPAfter:   e.state.XP,
		SessionID: e.sessionID,
	}
	if err := e.events.AppendAward(ctx, data); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record award event: %v\n", err)
	}
}
