package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	MinKeyResults = 1
	MaxKeyResults = 5

	// Objectives must be strictly longer than this many characters.
	MinObjectiveLength = 10
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Timeframe string

const (
	Timeframe1Month  Timeframe = "1month"
	Timeframe3Months Timeframe = "3months"
	Timeframe6Months Timeframe = "6months"
	Timeframe1Year   Timeframe = "1year"
)

var Timeframes = []Timeframe{Timeframe1Month, Timeframe3Months, Timeframe6Months, Timeframe1Year}

func (t Timeframe) Valid() bool {
	for _, v := range Timeframes {
		if t == v {
			return true
		}
	}
	return false
}

func (t Timeframe) Label() string {
	switch t {
	case Timeframe1Month:
		return "1 month"
	case Timeframe3Months:
		return "3 months"
	case Timeframe6Months:
		return "6 months"
	case Timeframe1Year:
		return "1 year"
	}
	return "Not set"
}

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategoryAcademic      Category = "academic"
	CategoryLanguage      Category = "language"
	CategoryCertification Category = "certification"
	CategoryProject       Category = "project"
	CategoryPersonal      Category = "personal"
)

var Categories = []Category{
	CategoryTechnical,
	CategoryAcademic,
	CategoryLanguage,
	CategoryCertification,
	CategoryProject,
	CategoryPersonal,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

func (c Category) Label() string {
	switch c {
	case CategoryTechnical:
		return "Technical skills"
	case CategoryAcademic:
		return "Academic research"
	case CategoryLanguage:
		return "Language learning"
	case CategoryCertification:
		return "Certification"
	case CategoryProject:
		return "Project practice"
	case CategoryPersonal:
		return "Personal growth"
	}
	return "Not set"
}

// KeyResult is owned by its LearningGoal and stored inline with it.
// A nil Progress means the user has not reported any progress yet.
type KeyResult struct {
	Text     string     `json:"text"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Priority Priority   `json:"priority"`
	Progress *int       `json:"progress,omitempty"`
}

func (kr KeyResult) Tracked() bool {
	return kr.Progress != nil
}

func (kr KeyResult) Completed() bool {
	return kr.Progress != nil && *kr.Progress >= 100
}

// KeyResults is persisted as a JSON array column.
type KeyResults []KeyResult

func (k KeyResults) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	b, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (k *KeyResults) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*k = KeyResults{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("key results: unsupported column type %T", src)
	}
	return json.Unmarshal(data, k)
}

type LearningGoal struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	Objective  string     `db:"objective" json:"objective"`
	KeyResults KeyResults `db:"key_results" json:"key_results"`
	Timeframe  Timeframe  `db:"timeframe" json:"timeframe,omitempty"`
	Category   Category   `db:"category" json:"category,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// TrackedCount returns how many key results carry reported progress.
func (g *LearningGoal) TrackedCount() int {
	n := 0
	for _, kr := range g.KeyResults {
		if kr.Tracked() {
			n++
		}
	}
	return n
}

func (g *LearningGoal) CompletedCount() int {
	n := 0
	for _, kr := range g.KeyResults {
		if kr.Completed() {
			n++
		}
	}
	return n
}
