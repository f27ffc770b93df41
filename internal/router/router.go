package router

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hwstars/docs"
	"hwstars/internal/authz"
	"hwstars/internal/config"
	"hwstars/internal/handler"
	"hwstars/internal/logger"
	"hwstars/internal/service"
)

// Handlers groups the HTTP handlers served under /api.
type Handlers struct {
	Auth       *handler.AuthHandler
	Homework   *handler.HomeworkHandler
	Submission *handler.SubmissionHandler
	Feedback   *handler.FeedbackHandler
	Student    *handler.StudentHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *logger.Logger,
	authService service.AuthService,
	h Handlers,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = newHTTPErrorHandler(log)
	e.Validator = NewCustomValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", authenticate(authService))

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/schema-suggestion", handler.SchemaSuggestionHandler)

	// Any signed-in user
	api.GET("/me", h.Auth.Me, authorize(authz.Authenticated))
	api.GET("/homeworks", h.Homework.List, authorize(authz.Authenticated))
	api.GET("/submissions", h.Submission.List, authorize(authz.Authenticated))

	// Teacher routes
	api.POST("/homeworks", h.Homework.Create, authorize(authz.TeacherOnly))
	api.POST("/feedbacks", h.Feedback.Create, authorize(authz.TeacherOnly))

	// Student routes
	api.POST("/submissions", h.Submission.Create, authorize(authz.StudentOnly))
	student := api.Group("/student", authorize(authz.StudentOnly))
	student.GET("/profile", h.Student.Profile)
	student.POST("/buy-desk1", h.Student.BuyDesk1)
	student.POST("/toggle-desk1", h.Student.ToggleDesk1)
}
