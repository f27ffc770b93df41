package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SchemaSuggestion lists the fields a client data model should carry.
type SchemaSuggestion struct {
	RequiredFields    []string `json:"requiredFields"`
	RecommendedFields []string `json:"recommendedFields"`
}

var schemaSuggestion = SchemaSuggestion{
	RequiredFields: []string{
		"name", "role(teacher/student)", "username", "passwordHash",
		"homeworkNumber", "content", "count", "deadline", "feedback",
	},
	RecommendedFields: []string{
		"user.id(UUID)", "createdAt", "updatedAt", "submission.status",
		"feedback.rating(1~5)", "teacherMessage", "sessionToken",
		"lastLoginAt", "deviceId", "pushToken",
	},
}

// SchemaSuggestionHandler godoc
// @Summary Suggested client data fields
// @Tags meta
// @Produce json
// @Success 200 {object} SchemaSuggestion
// @Router /schema-suggestion [get]
func SchemaSuggestionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, schemaSuggestion)
}
