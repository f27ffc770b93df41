package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hwstars/internal/model"
	"hwstars/internal/service"
)

// HomeworkHandler handles homework endpoints.
type HomeworkHandler struct {
	homeworkService service.HomeworkService
}

// NewHomeworkHandler creates a new homework handler.
func NewHomeworkHandler(homeworkService service.HomeworkService) *HomeworkHandler {
	return &HomeworkHandler{homeworkService: homeworkService}
}

// CreateHomeworkRequest represents a homework assignment request.
// Count may be sent as a number or a numeric string.
type CreateHomeworkRequest struct {
	Content  string  `json:"content" validate:"required"`
	Count    flexInt `json:"count" validate:"required,gt=0" swaggertype:"integer"`
	Deadline string  `json:"deadline" validate:"required"`
}

// HomeworkResponse wraps a single homework.
type HomeworkResponse struct {
	Homework model.Homework `json:"homework"`
}

// HomeworkListResponse wraps a list of homeworks.
type HomeworkListResponse struct {
	Homeworks []model.Homework `json:"homeworks"`
}

// Create godoc
// @Summary Assign a homework
// @Tags homeworks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateHomeworkRequest true "Homework data"
// @Success 201 {object} HomeworkResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /homeworks [post]
func (h *HomeworkHandler) Create(c echo.Context) error {
	var req CreateHomeworkRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := c.Validate(&req); err != nil {
		return httpError(err)
	}

	hw, err := h.homeworkService.Create(c.Request().Context(), CurrentUser(c), service.CreateHomeworkInput{
		Content:  req.Content,
		Count:    int(req.Count),
		Deadline: req.Deadline,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, HomeworkResponse{Homework: *hw})
}

// List godoc
// @Summary List homeworks
// @Description Teachers get the homeworks they assigned, students get all homeworks.
// @Tags homeworks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} HomeworkListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /homeworks [get]
func (h *HomeworkHandler) List(c echo.Context) error {
	homeworks, err := h.homeworkService.List(c.Request().Context(), CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, HomeworkListResponse{Homeworks: homeworks})
}
