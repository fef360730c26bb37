package tryout

import (
	"database/sql"
	"time"
)

type Tryout struct {
	ID              int64          `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Slug            string         `json:"slug" db:"slug"`
	Description     sql.NullString `json:"description,omitempty" db:"description"`
	CategoryID      sql.NullInt64  `json:"category_id,omitempty" db:"category_id"`
	PackageID       sql.NullInt64  `json:"package_id,omitempty" db:"package_id"`
	DurationMinutes int            `json:"duration_minutes" db:"duration_minutes"`
	QuestionCount   int            `json:"question_count" db:"question_count"`
	IsPublished     bool           `json:"is_published" db:"is_published"`
	StartsAt        sql.NullTime   `json:"starts_at,omitempty" db:"starts_at"`
	EndsAt          sql.NullTime   `json:"ends_at,omitempty" db:"ends_at"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionFinished   SessionStatus = "finished"
	SessionAbandoned  SessionStatus = "abandoned"
)

// Session is one user's attempt at a tryout. The admin surface only reads
// these; scoring is done elsewhere.
type Session struct {
	ID         int64           `json:"id" db:"id"`
	TryoutID   int64           `json:"tryout_id" db:"tryout_id"`
	UserID     int64           `json:"user_id" db:"user_id"`
	StartedAt  time.Time       `json:"started_at" db:"started_at"`
	FinishedAt sql.NullTime    `json:"finished_at,omitempty" db:"finished_at"`
	Score      sql.NullFloat64 `json:"score,omitempty" db:"score"`
	Status     SessionStatus   `json:"status" db:"status"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
