// internal/handlers/question/question_handler.go
package question

import (
	"net/http"
	"strconv"

	"tryout-admin-service/internal/domain/question"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/response"
	"tryout-admin-service/internal/service/activity"
	service "tryout-admin-service/internal/service/question"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *service.Service
	activity        *activity.Service
}

func NewQuestionHandler(questionService *service.Service, activity *activity.Service) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		activity:        activity,
	}
}

// ========== Questions ==========

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req question.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	q, err := h.questionService.CreateQuestion(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create question")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "question", q.ID, map[string]interface{}{
		"question_type": q.Type,
	})
	response.Success(c, http.StatusCreated, "question created", q)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req question.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	q, err := h.questionService.UpdateQuestion(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update question")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "question", q.ID, nil)
	response.Success(c, http.StatusOK, "question updated", q)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.questionService.DeleteQuestion(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete question")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "question", id, nil)
	response.Success(c, http.StatusOK, "question deleted", nil)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	q, err := h.questionService.GetQuestion(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "question not found")
		return
	}

	response.Success(c, http.StatusOK, "question retrieved", q)
}

func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var filters question.QuestionListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.questionService.ListQuestions(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, err, "failed to list questions")
		return
	}

	response.Success(c, http.StatusOK, "questions retrieved", result)
}

// AssignSubChapters replaces a question's sub-chapter assignments.
func (h *QuestionHandler) AssignSubChapters(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req question.AssignSubChaptersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	q, err := h.questionService.AssignSubChapters(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to assign sub-chapters")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "assign_sub_chapters", "question", q.ID, map[string]interface{}{
		"sub_chapter_ids": req.SubChapterIDs,
	})
	response.Success(c, http.StatusOK, "sub-chapters assigned", q)
}

// ========== Sub-chapters ==========

func (h *QuestionHandler) CreateSubChapter(c *gin.Context) {
	var req question.CreateSubChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sc, err := h.questionService.CreateSubChapter(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, "failed to create sub-chapter")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "create", "sub_chapter", sc.ID, nil)
	response.Success(c, http.StatusCreated, "sub-chapter created", sc)
}

func (h *QuestionHandler) UpdateSubChapter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	var req question.UpdateSubChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	sc, err := h.questionService.UpdateSubChapter(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, err, "failed to update sub-chapter")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "update", "sub_chapter", sc.ID, nil)
	response.Success(c, http.StatusOK, "sub-chapter updated", sc)
}

func (h *QuestionHandler) DeleteSubChapter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	if err := h.questionService.DeleteSubChapter(c.Request.Context(), id); err != nil {
		response.FromError(c, err, "failed to delete sub-chapter")
		return
	}

	h.activity.Record(c.Request.Context(), middleware.MustGetAdminID(c), "delete", "sub_chapter", id, nil)
	response.Success(c, http.StatusOK, "sub-chapter deleted", nil)
}

func (h *QuestionHandler) GetSubChapter(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		return
	}

	sc, err := h.questionService.GetSubChapter(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err, "sub-chapter not found")
		return
	}

	response.Success(c, http.StatusOK, "sub-chapter retrieved", sc)
}

func (h *QuestionHandler) ListSubChapters(c *gin.Context) {
	var categoryID *int64
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid category_id", err)
			return
		}
		categoryID = &id
	}

	subChapters, err := h.questionService.ListSubChapters(c.Request.Context(), categoryID)
	if err != nil {
		response.FromError(c, err, "failed to list sub-chapters")
		return
	}

	response.Success(c, http.StatusOK, "sub-chapters retrieved", gin.H{
		"sub_chapters": subChapters,
		"count":        len(subChapters),
	})
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid ID", err)
		return 0, err
	}
	return id, nil
}
