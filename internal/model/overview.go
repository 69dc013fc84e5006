package model

import (
	"time"
)

// Overview holds the statistics shown on the dashboard. Everything is derived from
// stored rows; nothing is simulated.
type Overview struct {
	Goal             *LearningGoal
	KeyResultCount   int
	TrackedCount     int
	CompletedCount   int
	AverageProgress  int // over tracked key results only
	NextDeadline     *time.Time
	NextDeadlineText string
	SessionCount     int
	MessageCount     int
}

func (o *Overview) HasGoal() bool {
	return o.Goal != nil
}

func (o *Overview) ProgressTracked() bool {
	return o.TrackedCount > 0
}

// Export is the downloadable archive of everything a user owns.
type Export struct {
	ExportedAt time.Time      `json:"exported_at"`
	Email      string         `json:"email"`
	Goal       *LearningGoal  `json:"goal"`
	Sessions   []*ChatSession `json:"sessions"`
}
