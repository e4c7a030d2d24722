package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/internal/services"
	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/utils"
)

type CourseHandler struct {
	courses *services.CourseService
}

func NewCourseHandler(courses *services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

type SearchCoursesInput struct {
	Query      string `json:"query" binding:"required,min=2"`
	MaxResults int    `json:"maxResults" binding:"omitempty,min=1,max=25"`
}

type AssessCourseInput struct {
	Status models.AssessmentStatus `json:"status" binding:"required,oneof=SAVED IN_PROGRESS COMPLETED ASSESSED"`
	Rating *int                    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes  string                  `json:"notes"`
}

type UpdateProgressInput struct {
	VideoID         string `json:"videoId" binding:"required,uuid"`
	ProgressPercent *int   `json:"progressPercent" binding:"required,min=0,max=100"`
}

// Search handles POST /courses/search -- search YouTube and persist the
// results as courses. An empty result is a legitimate outcome, not an error.
func (h *CourseHandler) Search(c *gin.Context) {
	var input SearchCoursesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}
	if input.MaxResults == 0 {
		input.MaxResults = 10
	}

	summaries, err := h.courses.ImportFromSearch(c.Request.Context(), input.Query, input.MaxResults)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusCreated, summaries)
}

// List handles GET /courses with page/limit/topic query params.
func (h *CourseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	list, err := h.courses.List(c.Request.Context(), page, limit, c.Query("topic"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, list)
}

// GetByID handles GET /courses/:id
func (h *CourseHandler) GetByID(c *gin.Context) {
	detail, err := h.courses.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, detail)
}

// Assess handles POST /courses/:id/assess
func (h *CourseHandler) Assess(c *gin.Context) {
	userID := c.GetString("userId")

	var input AssessCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	record, err := h.courses.Assess(c.Request.Context(), userID, c.Param("id"), input.Status, input.Rating, input.Notes)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, record)
}

// UpdateProgress handles PATCH /courses/:id/progress
func (h *CourseHandler) UpdateProgress(c *gin.Context) {
	userID := c.GetString("userId")

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	record, err := h.courses.UpdateProgress(c.Request.Context(), userID, c.Param("id"), input.VideoID, *input.ProgressPercent)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, record)
}
