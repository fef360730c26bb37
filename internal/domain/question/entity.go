package question

import (
	"database/sql"
	"time"
)

type QuestionType string

const (
	TypeSingleChoice   QuestionType = "single_choice"
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeEssay          QuestionType = "essay"
)

type Question struct {
	ID          int64          `json:"id" db:"id"`
	Content     string         `json:"content" db:"content"`
	Explanation sql.NullString `json:"explanation,omitempty" db:"explanation"`
	Type        QuestionType   `json:"question_type" db:"question_type"`
	Difficulty  int            `json:"difficulty" db:"difficulty"`
	Tags        []string       `json:"tags,omitempty" db:"tags"`
	IsActive    bool           `json:"is_active" db:"is_active"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	// Loaded alongside the question, not stored on the row
	Options     []AnswerOption `json:"options,omitempty" db:"-"`
	SubChapters []SubChapter   `json:"sub_chapters,omitempty" db:"-"`
}

type AnswerOption struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"question_id" db:"question_id"`
	Label      string    `json:"label" db:"label"`
	Content    string    `json:"content" db:"content"`
	IsCorrect  bool      `json:"is_correct" db:"is_correct"`
	Weight     float64   `json:"weight" db:"weight"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type SubChapter struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Chapter     string         `json:"chapter" db:"chapter"`
	CategoryID  sql.NullInt64  `json:"category_id,omitempty" db:"category_id"`
	Description sql.NullString `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}
