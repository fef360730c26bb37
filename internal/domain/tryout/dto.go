package tryout

import "time"

type CreateTryoutRequest struct {
	Title           string     `json:"title" binding:"required,max=255"`
	Slug            string     `json:"slug" binding:"required,max=255"`
	Description     string     `json:"description"`
	CategoryID      *int64     `json:"category_id"`
	PackageID       *int64     `json:"package_id"`
	DurationMinutes int        `json:"duration_minutes" binding:"required,min=1"`
	IsPublished     bool       `json:"is_published"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
}

type UpdateTryoutRequest struct {
	Title           *string    `json:"title" binding:"omitempty,max=255"`
	Slug            *string    `json:"slug" binding:"omitempty,max=255"`
	Description     *string    `json:"description"`
	CategoryID      *int64     `json:"category_id"`
	PackageID       *int64     `json:"package_id"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1"`
	IsPublished     *bool      `json:"is_published"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
}

type TryoutListFilters struct {
	CategoryID  *int64 `form:"category_id"`
	PackageID   *int64 `form:"package_id"`
	IsPublished *bool  `form:"is_published"`
	Search      string `form:"search"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type TryoutListResponse struct {
	Tryouts  []Tryout `json:"tryouts"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

type SessionListFilters struct {
	UserID   *int64         `form:"user_id"`
	Status   *SessionStatus `form:"status"`
	Page     int            `form:"page" binding:"omitempty,min=1"`
	PageSize int            `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}
