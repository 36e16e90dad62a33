package engine

// Config holds the reward rules for a course.
type Config struct {
	// CompletionBonus is the fixed XP granted when a lesson is first
	// marked complete. Guarded by the lesson's own completed flag, not
	// the one-time source ledger.
	CompletionBonus int

	// LessonKeys is the known lesson set, in display order. Keys seen in
	// stored state but not listed here are retained but can't be
	// completed through the engine.
	LessonKeys []string
}

// DefaultConfig returns the reward rules of the course site.
func DefaultConfig() Config {
	return Config{
		CompletionBonus: 40,
		LessonKeys:      []string{"lesson1", "lesson2"},
	}
}

// knownLesson reports whether key is part of the configured lesson set.
func (c Config) knownLesson(key string) bool {
	for _, k := range c.LessonKeys {
		if k == key {
			return true
		}
	}
	return false
}
