package question

type AnswerOptionInput struct {
	Label     string  `json:"label" binding:"required,max=10"`
	Content   string  `json:"content" binding:"required"`
	IsCorrect bool    `json:"is_correct"`
	Weight    float64 `json:"weight" binding:"omitempty,min=0"`
}

type CreateQuestionRequest struct {
	Content       string              `json:"content" binding:"required"`
	Explanation   string              `json:"explanation"`
	Type          QuestionType        `json:"question_type" binding:"required,oneof=single_choice multiple_choice essay"`
	Difficulty    int                 `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Tags          []string            `json:"tags"`
	Options       []AnswerOptionInput `json:"options" binding:"omitempty,dive"`
	SubChapterIDs []int64             `json:"sub_chapter_ids"`
}

type UpdateQuestionRequest struct {
	Content     *string             `json:"content"`
	Explanation *string             `json:"explanation"`
	Type        *QuestionType       `json:"question_type" binding:"omitempty,oneof=single_choice multiple_choice essay"`
	Difficulty  *int                `json:"difficulty" binding:"omitempty,min=1,max=5"`
	Tags        []string            `json:"tags"`
	IsActive    *bool               `json:"is_active"`
	Options     []AnswerOptionInput `json:"options" binding:"omitempty,dive"`
}

// AssignSubChaptersRequest replaces a question's sub-chapter assignments.
type AssignSubChaptersRequest struct {
	SubChapterIDs []int64 `json:"sub_chapter_ids" binding:"required"`
}

type QuestionListFilters struct {
	Type         *QuestionType `form:"question_type"`
	SubChapterID *int64        `form:"sub_chapter_id"`
	Difficulty   *int          `form:"difficulty"`
	IsActive     *bool         `form:"is_active"`
	Search       string        `form:"search"`
	Page         int           `form:"page" binding:"omitempty,min=1"`
	PageSize     int           `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

type CreateSubChapterRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Chapter     string `json:"chapter" binding:"required,max=255"`
	CategoryID  *int64 `json:"category_id"`
	Description string `json:"description"`
}

type UpdateSubChapterRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Chapter     *string `json:"chapter" binding:"omitempty,max=255"`
	CategoryID  *int64  `json:"category_id"`
	Description *string `json:"description"`
}
