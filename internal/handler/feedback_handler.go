package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hwstars/internal/service"
)

// FeedbackHandler handles feedback endpoints.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// CreateFeedbackRequest represents a teacher's review. Rating is clamped to 1..5.
type CreateFeedbackRequest struct {
	SubmissionID string  `json:"submissionId"`
	Rating       flexInt `json:"rating" swaggertype:"integer"`
	Feedback     string  `json:"feedback"`
}

// Create godoc
// @Summary Review a submission
// @Description Stores the feedback, marks the submission checked and awards the rating as stars.
// @Tags feedbacks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFeedbackRequest true "Feedback data"
// @Success 201 {object} service.FeedbackResult
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /feedbacks [post]
func (h *FeedbackHandler) Create(c echo.Context) error {
	var req CreateFeedbackRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.feedbackService.Create(c.Request().Context(), CurrentUser(c), service.CreateFeedbackInput{
		SubmissionID: req.SubmissionID,
		Rating:       int(req.Rating),
		Feedback:     req.Feedback,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, result)
}
