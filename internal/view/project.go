package view

import (
	"fmt"
	"math"
	"sort"

	"github.com/edfolio/questline/internal/engine"
)

// badgeDef is a badge as a predicate over state.
type badgeDef struct {
	id          string
	name        string
	requirement string
	unlocked    func(engine.State) bool
}

// The course's badge set. Thresholds are inclusive: the Starter badge
// unlocks at exactly 50 XP.
var badgeDefs = []badgeDef{
	{
		id:          "starter",
		name:        "Starter",
		requirement: "Reach 50 XP",
		unlocked:    func(s engine.State) bool { return s.XP >= 50 },
	},
	{
		id:          "committed",
		name:        "Committed",
		requirement: "Reach 200 XP",
		unlocked:    func(s engine.State) bool { return s.XP >= 200 },
	},
	{
		id:          "system-builder",
		name:        "System Builder",
		requirement: "Complete Lesson 2",
		unlocked:    func(s engine.State) bool { return s.Lessons["lesson2"].Completed },
	},
}

// Project derives every display value from a state. cfg supplies the
// lesson display order; lesson keys present in the state but not in cfg
// are appended in sorted order so nothing stored is ever hidden.
func Project(st engine.State, cfg engine.Config) Model {
	m := Model{
		TotalXP: st.XP,
		Level:   st.Level,
		Streak:  st.Streak,
	}

	percent := st.XP % engine.XPPerLevel
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	m.LevelPercent = percent
	m.LevelFraction = float64(percent) / 100
	m.LevelRingOffset = Circumference * (1 - m.LevelFraction)

	m.Lessons = lessonStatuses(st, cfg)

	completed := 0
	for _, l := range m.Lessons {
		if l.Completed {
			completed++
		}
	}
	if total := len(m.Lessons); total > 0 {
		fraction := float64(completed) / float64(total)
		m.LessonPercent = int(math.Round(fraction * 100))
		m.LessonRadialOffset = Circumference * (1 - fraction)
	} else {
		m.LessonRadialOffset = Circumference
	}

	m.Badges = make([]BadgeStatus, len(badgeDefs))
	for i, def := range badgeDefs {
		unlocked := def.unlocked(st)
		label := fmt.Sprintf("%s — %s", def.name, def.requirement)
		if unlocked {
			label = fmt.Sprintf("%s — Unlocked", def.name)
		}
		m.Badges[i] = BadgeStatus{
			ID:          def.id,
			Name:        def.name,
			Requirement: def.requirement,
			Unlocked:    unlocked,
			Label:       label,
		}
	}

	m.Momentum = momentum(st.XP)
	return m
}

// lessonStatuses orders lessons by the configured key order, then any
// extra stored keys sorted for stable output.
func lessonStatuses(st engine.State, cfg engine.Config) []LessonStatus {
	statuses := make([]LessonStatus, 0, len(st.Lessons))
	seen := make(map[string]bool, len(st.Lessons))

	appendKey := func(key string) {
		ls, ok := st.Lessons[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		label := LabelLocked
		if ls.Completed {
			label = LabelCompleted
		}
		statuses = append(statuses, LessonStatus{
			Key:       key,
			Label:     label,
			Completed: ls.Completed,
		})
	}

	for _, key := range cfg.LessonKeys {
		appendKey(key)
	}

	extras := make([]string, 0)
	for key := range st.Lessons {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		appendKey(key)
	}

	return statuses
}
