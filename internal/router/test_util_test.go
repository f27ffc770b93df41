package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"hwstars/internal/auth"
	"hwstars/internal/config"
	"hwstars/internal/handler"
	"hwstars/internal/logger"
	"hwstars/internal/service"
	"hwstars/internal/store"
)

type httpErr struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func initApp(t *testing.T, st store.Store) *echo.Echo {
	t.Helper()
	return initAppWithLogger(t, st, logger.NewNop())
}

func initAppWithLogger(t *testing.T, st store.Store, log *logger.Logger) *echo.Echo {
	t.Helper()
	authService := service.NewAuthService(st, auth.NewSessionIssuer(time.Hour), auth.NewSessionCache(nil))
	e := echo.New()
	Register(e, &config.Config{}, log, authService, Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Homework:   handler.NewHomeworkHandler(service.NewHomeworkService(st)),
		Submission: handler.NewSubmissionHandler(service.NewSubmissionService(st)),
		Feedback:   handler.NewFeedbackHandler(service.NewFeedbackService(st)),
		Student:    handler.NewStudentHandler(service.NewRewardService(st)),
	})
	return e
}

// call serves one request through the full middleware stack.
func call(e *echo.Echo, method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	e.ServeHTTP(rec, req)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// registerUser signs up username with role over HTTP and returns its token.
func registerUser(t *testing.T, e *echo.Echo, username, role string) string {
	t.Helper()
	body := marshalObj(t, map[string]string{
		"name":     "name-" + username,
		"role":     role,
		"username": username,
		"password": "pw12345678",
	})
	rec := call(e, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res service.AuthResult
	decode(t, rec, &res)
	return res.Token
}

// brokenStore fails every operation, as a store with an unreadable file would.
type brokenStore struct{}

var errDiskGone = errors.New("disk gone")

func (brokenStore) View(context.Context, func(*store.Document) error) error   { return errDiskGone }
func (brokenStore) Update(context.Context, func(*store.Document) error) error { return errDiskGone }
func (brokenStore) Close() error                                              { return nil }
