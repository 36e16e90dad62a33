package engine

import (
	"encoding/json"
	"fmt"
)

// XPPerLevel is the XP span of a single level.
const XPPerLevel = 100

// LessonState tracks completion of a single lesson.
type LessonState struct {
	Completed bool `json:"completed"`
}

// State is the persisted learner state. JSON field names match the
// record the course site stored under "courseState_v1", so an exported
// browser snapshot loads as-is.
type State struct {
	XP     int `json:"xp"`
	Level  int `json:"level"`
	Streak int `json:"streak"`

	// LastActiveDate is the UTC calendar date (YYYY-MM-DD) of the most
	// recent streak-touching action. Empty means no activity yet.
	LastActiveDate string `json:"lastActiveDate"`

	// SourcesAwarded is the one-time award ledger: a key present here
	// has already granted its XP and never grants again.
	SourcesAwarded map[string]bool `json:"sourcesAwarded"`

	Lessons map[string]LessonState `json:"lessons"`
}

// DefaultState returns the first-run state: no XP, level 1, no streak,
// empty ledger, every configured lesson locked.
func DefaultState(cfg Config) State {
	lessons := make(map[string]LessonState, len(cfg.LessonKeys))
	for _, k := range cfg.LessonKeys {
		lessons[k] = LessonState{}
	}
	return State{
		Level:          1,
		SourcesAwarded: make(map[string]bool),
		Lessons:        lessons,
	}
}

// LevelForXP derives the level tier from total XP.
func LevelForXP(xp int) int {
	return xp/XPPerLevel + 1
}

// recalcLevel keeps level a pure function of XP.
func (s *State) recalcLevel() {
	s.Level = LevelForXP(s.XP)
}

// mergeOverDefaults unmarshals a stored snapshot over a default state.
// Fields absent from the snapshot keep their defaults. Maps merge
// key-by-key: default lesson keys missing from storage are preserved,
// and unknown stored lesson keys are retained.
func mergeOverDefaults(defaults State, raw json.RawMessage) (State, error) {
	merged := defaults.clone()
	if err := json.Unmarshal(raw, &merged); err != nil {
		return defaults, fmt.Errorf("unmarshal stored state: %w", err)
	}
	if merged.XP < 0 {
		return defaults, fmt.Errorf("stored xp %d is negative", merged.XP)
	}
	merged.recalcLevel()
	return merged, nil
}

// clone returns a deep copy; maps are never shared.
func (s State) clone() State {
	cp := s
	cp.SourcesAwarded = make(map[string]bool, len(s.SourcesAwarded))
	for k, v := range s.SourcesAwarded {
		cp.SourcesAwarded[k] = v
	}
	cp.Lessons = make(map[string]LessonState, len(s.Lessons))
	for k, v := range s.Lessons {
		cp.Lessons[k] = v
	}
	return cp
}
