package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"hwstars/internal/model"
	"hwstars/internal/service"
)

// StudentHandler handles the student's star balance and room decoration.
type StudentHandler struct {
	rewardService service.RewardService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(rewardService service.RewardService) *StudentHandler {
	return &StudentHandler{rewardService: rewardService}
}

// ProfileResponse wraps a student profile.
type ProfileResponse struct {
	Profile model.StudentProfile `json:"profile"`
}

// Profile godoc
// @Summary Student profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /student/profile [get]
func (h *StudentHandler) Profile(c echo.Context) error {
	return h.respond(c, h.rewardService.GetProfile)
}

// BuyDesk1 godoc
// @Summary Buy desk1
// @Description Spends 5 stars on desk1. Fails if already owned or the balance is too low.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /student/buy-desk1 [post]
func (h *StudentHandler) BuyDesk1(c echo.Context) error {
	return h.respond(c, h.rewardService.BuyDesk1)
}

// ToggleDesk1 godoc
// @Summary Place or remove desk1
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /student/toggle-desk1 [post]
func (h *StudentHandler) ToggleDesk1(c echo.Context) error {
	return h.respond(c, h.rewardService.ToggleDesk1)
}

func (h *StudentHandler) respond(c echo.Context, op func(context.Context, *model.User) (*model.StudentProfile, error)) error {
	profile, err := op(c.Request().Context(), CurrentUser(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, ProfileResponse{Profile: *profile})
}
