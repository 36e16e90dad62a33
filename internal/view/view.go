// Package view maps engine state to display values. Everything here is
// a pure function of the state: no mutation, no persistence, safe to
// call any number of times. Rendering the values — terminal, web page,
// anything — belongs to the caller.
package view

// Lesson status labels shown next to each lesson.
const (
	LabelCompleted = "Completed"
	LabelLocked    = "Locked"
)

// Circumference is the stroke length of the radial gauges on the site.
// Dash offsets are derived from it so the terminal and the page agree.
const Circumference = 314.0

// LessonStatus is the display state of one lesson.
type LessonStatus struct {
	Key       string
	Label     string // LabelCompleted or LabelLocked
	Completed bool
}

// BadgeStatus is the display state of one badge.
type BadgeStatus struct {
	ID          string
	Name        string
	Requirement string // human-readable unlock condition
	Unlocked    bool
	Label       string // e.g. "Starter — Unlocked" / "Starter — Reach 50 XP"
}

// Model is the full set of named display values derived from one state.
type Model struct {
	TotalXP int
	Level   int
	Streak  int

	// LevelPercent is the XP progress within the current level, 0–100.
	LevelPercent  int
	LevelFraction float64
	// LevelRingOffset is the dash offset for the level radial gauge.
	LevelRingOffset float64

	Lessons []LessonStatus
	// LessonPercent is the completed-lesson ratio, 0–100, rounded.
	LessonPercent      int
	LessonRadialOffset float64

	Badges []BadgeStatus

	// Momentum is a cosmetic five-slot distribution of bar heights
	// (0–100) derived from capped XP. It carries no gameplay meaning.
	Momentum []float64
}
