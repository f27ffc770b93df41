package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"hwstars/internal/errors"
	"hwstars/internal/model"
)

// userContextKey is where the authentication middleware stores the caller.
const userContextKey = "user"

// SetCurrentUser records the authenticated caller on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the authenticated caller, or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

var errInvalidBody = errors.ErrorResponse{
	Error: "invalid request body",
	Code:  "INVALID_REQUEST",
}

// bind decodes the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errInvalidBody).SetInternal(err)
	}
	return nil
}

// httpError converts a service error into an echo error carrying the JSON body.
func httpError(err error) error {
	mapped := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse()).SetInternal(err)
}

// flexInt accepts a JSON number or a numeric string. Fractions are truncated,
// values beyond the int32 range saturate, and null and "" decode as zero.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) {
		return fmt.Errorf("flexInt: %s is not a number", s)
	}
	*n = flexInt(int(math.Max(math.MinInt32, math.Min(math.MaxInt32, f))))
	return nil
}
