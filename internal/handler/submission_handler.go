package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hwstars/internal/model"
	"hwstars/internal/service"
)

// SubmissionHandler handles submission endpoints.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// CreateSubmissionRequest represents a student's answer to a homework.
type CreateSubmissionRequest struct {
	HomeworkID     string `json:"homeworkId"`
	UploadText     string `json:"uploadText"`
	TeacherMessage string `json:"teacherMessage"`
}

// SubmissionResponse wraps a single submission.
type SubmissionResponse struct {
	Submission model.Submission `json:"submission"`
}

// SubmissionListResponse wraps a list of enriched submissions.
type SubmissionListResponse struct {
	Submissions []model.SubmissionView `json:"submissions"`
}

// Create godoc
// @Summary Submit a homework
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSubmissionRequest true "Submission data"
// @Success 201 {object} SubmissionResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	var req CreateSubmissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	sub, err := h.submissionService.Create(c.Request().Context(), CurrentUser(c), service.CreateSubmissionInput{
		HomeworkID:     req.HomeworkID,
		UploadText:     req.UploadText,
		TeacherMessage: req.TeacherMessage,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, SubmissionResponse{Submission: *sub})
}

// List godoc
// @Summary List submissions
// @Description Teachers get submissions to their homeworks, students get their own.
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SubmissionListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	submissions, err := h.submissionService.List(c.Request().Context(), CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, SubmissionListResponse{Submissions: submissions})
}
