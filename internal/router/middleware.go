package router

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"hwstars/internal/authz"
	apperrors "hwstars/internal/errors"
	"hwstars/internal/handler"
	"hwstars/internal/logger"
	"hwstars/internal/service"
)

var errSessionLookup = errors.New("session lookup failed")

// authenticate resolves the bearer token, if any, and stores the caller on the
// context. Requests without a valid token continue anonymously; authorize
// decides whether that is acceptable for the route.
func authenticate(authService service.AuthService) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			user, err := authService.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, apperrors.ErrUnauthenticated) {
					return false, nil
				}
				return false, fmt.Errorf("%w: %w", errSessionLookup, err)
			}
			handler.SetCurrentUser(c, user)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, errSessionLookup) {
				return err
			}
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// authorize enforces p before the route handler runs.
func authorize(p authz.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := p.Check(handler.CurrentUser(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// requestLogger logs one line per request through zap.
func requestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if user := handler.CurrentUser(c); user != nil {
				fields = append(fields, zap.String("user_id", user.ID))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request completed", fields...)
			return nil
		},
	})
}
