package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwstars/internal/model"
	"hwstars/internal/service"
	"hwstars/internal/store"
)

var (
	errUnauthenticated = httpErr{Error: "authentication required", Code: "UNAUTHENTICATED"}
	errForbidden       = httpErr{Error: "permission denied", Code: "FORBIDDEN"}
)

func TestAPI_Scenario(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())

	teacher := registerUser(t, e, "t1", "teacher")

	rec := call(e, http.MethodPost, "/api/homeworks", teacher,
		[]byte(`{"content":"Read ch.1","count":1,"deadline":"2024-01-01"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var hw struct {
		Homework model.Homework `json:"homework"`
	}
	decode(t, rec, &hw)
	assert.Equal(t, "HW-0001", hw.Homework.HomeworkNumber)
	assert.Equal(t, model.HomeworkStatusAssigned, hw.Homework.Status)

	student := registerUser(t, e, "s1", "student")

	rec = call(e, http.MethodPost, "/api/submissions", student,
		marshalObj(t, map[string]string{"homeworkId": hw.Homework.ID, "uploadText": "done"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sub struct {
		Submission model.Submission `json:"submission"`
	}
	decode(t, rec, &sub)
	assert.False(t, sub.Submission.Checked)
	assert.Equal(t, "", sub.Submission.TeacherMessage)

	var list struct {
		Submissions []model.SubmissionView `json:"submissions"`
	}
	rec = call(e, http.MethodGet, "/api/submissions", teacher)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &list)
	require.Len(t, list.Submissions, 1)
	assert.False(t, list.Submissions[0].Checked)
	assert.Equal(t, "HW-0001", list.Submissions[0].HomeworkNumber)
	assert.Equal(t, "Read ch.1", list.Submissions[0].HomeworkContent)
	assert.Equal(t, "name-s1", list.Submissions[0].StudentName)
	assert.Nil(t, list.Submissions[0].Feedback)

	rec = call(e, http.MethodPost, "/api/feedbacks", teacher,
		marshalObj(t, map[string]interface{}{"submissionId": sub.Submission.ID, "rating": 5, "feedback": "good"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var fb service.FeedbackResult
	decode(t, rec, &fb)
	assert.Equal(t, 5, fb.AwardedStars)
	assert.Equal(t, 5, fb.CurrentStars)
	assert.Equal(t, "good", fb.Feedback.Feedback)

	rec = call(e, http.MethodGet, "/api/submissions", teacher)
	decode(t, rec, &list)
	require.Len(t, list.Submissions, 1)
	assert.True(t, list.Submissions[0].Checked)
	require.NotNil(t, list.Submissions[0].Feedback)

	var profile struct {
		Profile model.StudentProfile `json:"profile"`
	}
	rec = call(e, http.MethodGet, "/api/student/profile", student)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &profile)
	assert.Equal(t, 5, profile.Profile.Stars)

	rec = call(e, http.MethodPost, "/api/student/buy-desk1", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &profile)
	assert.Equal(t, 0, profile.Profile.Stars)
	assert.True(t, profile.Profile.Inventory.Desk1)
	assert.False(t, profile.Profile.Placed.Desk1)

	rec = call(e, http.MethodPost, "/api/student/toggle-desk1", student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &profile)
	assert.True(t, profile.Profile.Placed.Desk1)
}

func TestAPI_Authorization(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	teacher := registerUser(t, e, "t1", "teacher")
	student := registerUser(t, e, "s1", "student")

	unauthenticated := marshalObj(t, errUnauthenticated)
	forbidden := marshalObj(t, errForbidden)

	tests := []httpTest{
		{name: "me anonymous", method: http.MethodGet, path: "/api/me", wantCode: http.StatusUnauthorized, wantData: unauthenticated},
		{name: "me bad token", method: http.MethodGet, path: "/api/me", token: "nope", wantCode: http.StatusUnauthorized, wantData: unauthenticated},
		{name: "list homeworks anonymous", method: http.MethodGet, path: "/api/homeworks", wantCode: http.StatusUnauthorized, wantData: unauthenticated},
		{name: "list submissions anonymous", method: http.MethodGet, path: "/api/submissions", wantCode: http.StatusUnauthorized, wantData: unauthenticated},

		{name: "create homework anonymous", method: http.MethodPost, path: "/api/homeworks", wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "create homework as student", method: http.MethodPost, path: "/api/homeworks", token: student, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "submit anonymous", method: http.MethodPost, path: "/api/submissions", wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "submit as teacher", method: http.MethodPost, path: "/api/submissions", token: teacher, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "feedback anonymous", method: http.MethodPost, path: "/api/feedbacks", wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "feedback bad token", method: http.MethodPost, path: "/api/feedbacks", token: "nope", wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "feedback as student", method: http.MethodPost, path: "/api/feedbacks", token: student, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "profile anonymous", method: http.MethodGet, path: "/api/student/profile", wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "profile as teacher", method: http.MethodGet, path: "/api/student/profile", token: teacher, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "buy as teacher", method: http.MethodPost, path: "/api/student/buy-desk1", token: teacher, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "toggle anonymous", method: http.MethodPost, path: "/api/student/toggle-desk1", wantCode: http.StatusForbidden, wantData: forbidden},

		{name: "me as teacher", method: http.MethodGet, path: "/api/me", token: teacher, wantCode: http.StatusOK},
		{name: "list homeworks as student", method: http.MethodGet, path: "/api/homeworks", token: student, wantCode: http.StatusOK, wantData: []byte(`{"homeworks":[]}`)},
		{name: "list submissions as teacher", method: http.MethodGet, path: "/api/submissions", token: teacher, wantCode: http.StatusOK, wantData: []byte(`{"submissions":[]}`)},
		{name: "profile as student", method: http.MethodGet, path: "/api/student/profile", token: student, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAPI_Me(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	token := registerUser(t, e, "t1", "teacher")

	rec := call(e, http.MethodGet, "/api/me", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	var me struct {
		User model.PublicUser `json:"user"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "t1", me.User.Username)
	assert.Equal(t, model.RoleTeacher, me.User.Role)
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	registerUser(t, e, "t1", "teacher")

	invalidCredentials := marshalObj(t, httpErr{Error: "invalid username or password", Code: "INVALID_CREDENTIALS"})

	tests := []httpTest{
		{
			name:     "missing fields",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"name":"Kim","role":"teacher"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "validation failed: username is required; password is required", Code: "VALIDATION_ERROR"}),
		},
		{
			name:     "bad role",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"name":"Kim","role":"admin","username":"k","password":"pw12345678"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "validation failed: role must be one of [teacher student]", Code: "VALIDATION_ERROR"}),
		},
		{
			name:     "short password",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"name":"Kim","role":"teacher","username":"k","password":"short"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "validation failed: password must be at least 8 characters", Code: "VALIDATION_ERROR"}),
		},
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"name":`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "invalid request body", Code: "INVALID_REQUEST"}),
		},
		{
			name:     "duplicate username",
			method:   http.MethodPost,
			path:     "/api/auth/register",
			body:     []byte(`{"name":"Other","role":"student","username":"t1","password":"pw12345678"}`),
			wantCode: http.StatusConflict,
			wantData: marshalObj(t, httpErr{Error: "username already taken", Code: "USERNAME_TAKEN"}),
		},
		{
			name:     "login ok",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"t1","password":"pw12345678"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "login wrong password",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"t1","password":"wrong-password"}`),
			wantCode: http.StatusUnauthorized,
			wantData: invalidCredentials,
		},
		{
			name:     "login unknown user",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"ghost","password":"pw12345678"}`),
			wantCode: http.StatusUnauthorized,
			wantData: invalidCredentials,
		},
		{
			name:     "login empty body",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			wantCode: http.StatusUnauthorized,
			wantData: invalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAPI_LoginTokenWorks(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	first := registerUser(t, e, "s1", "student")

	rec := call(e, http.MethodPost, "/api/auth/login", "", []byte(`{"username":"s1","password":"pw12345678"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	var res service.AuthResult
	decode(t, rec, &res)
	assert.NotEqual(t, first, res.Token)
	assert.Equal(t, model.RoleStudent, res.User.Role)

	for _, token := range []string{first, res.Token} {
		rec = call(e, http.MethodGet, "/api/student/profile", token)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestAPI_HomeworkInput(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	teacher := registerUser(t, e, "t1", "teacher")

	tests := []httpTest{
		{
			name:     "count as numeric string",
			method:   http.MethodPost,
			path:     "/api/homeworks",
			body:     []byte(`{"content":"Workbook p.3","count":"3","deadline":"friday"}`),
			token:    teacher,
			wantCode: http.StatusCreated,
		},
		{
			name:     "count not a number",
			method:   http.MethodPost,
			path:     "/api/homeworks",
			body:     []byte(`{"content":"Workbook p.3","count":"many","deadline":"friday"}`),
			token:    teacher,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "invalid request body", Code: "INVALID_REQUEST"}),
		},
		{
			name:     "missing content",
			method:   http.MethodPost,
			path:     "/api/homeworks",
			body:     []byte(`{"count":1,"deadline":"friday"}`),
			token:    teacher,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "validation failed: content is required", Code: "VALIDATION_ERROR"}),
		},
		{
			name:     "zero count",
			method:   http.MethodPost,
			path:     "/api/homeworks",
			body:     []byte(`{"content":"Workbook p.3","count":0,"deadline":"friday"}`),
			token:    teacher,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "validation failed: count is required", Code: "VALIDATION_ERROR"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	rec := call(e, http.MethodGet, "/api/homeworks", teacher)
	var list struct {
		Homeworks []model.Homework `json:"homeworks"`
	}
	decode(t, rec, &list)
	require.Len(t, list.Homeworks, 1)
	assert.Equal(t, 3, list.Homeworks[0].Count)
	assert.Equal(t, "HW-0001", list.Homeworks[0].HomeworkNumber)
}

func TestAPI_SubmissionAndFeedbackErrors(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	owner := registerUser(t, e, "t1", "teacher")
	stranger := registerUser(t, e, "t2", "teacher")
	student := registerUser(t, e, "s1", "student")

	rec := call(e, http.MethodPost, "/api/submissions", student, []byte(`{"homeworkId":"missing","uploadText":"x"}`))
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marshalObj(t, httpErr{Error: "homework not found", Code: "HOMEWORK_NOT_FOUND"}),
	}, rec)

	rec = call(e, http.MethodPost, "/api/homeworks", owner, []byte(`{"content":"c","count":1,"deadline":"d"}`))
	var hw struct {
		Homework model.Homework `json:"homework"`
	}
	decode(t, rec, &hw)
	rec = call(e, http.MethodPost, "/api/submissions", student, marshalObj(t, map[string]string{"homeworkId": hw.Homework.ID}))
	var sub struct {
		Submission model.Submission `json:"submission"`
	}
	decode(t, rec, &sub)
	feedback := marshalObj(t, map[string]interface{}{"submissionId": sub.Submission.ID, "rating": 3})

	tests := []httpTest{
		{
			name:     "unknown submission",
			body:     []byte(`{"submissionId":"missing","rating":3}`),
			token:    owner,
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "submission not found", Code: "SUBMISSION_NOT_FOUND"}),
		},
		{
			name:     "not the author",
			body:     feedback,
			token:    stranger,
			wantCode: http.StatusForbidden,
			wantData: marshalObj(t, errForbidden),
		},
		{
			name:     "first review",
			body:     feedback,
			token:    owner,
			wantCode: http.StatusCreated,
		},
		{
			name:     "second review",
			body:     feedback,
			token:    owner,
			wantCode: http.StatusConflict,
			wantData: marshalObj(t, httpErr{Error: "submission already has feedback", Code: "FEEDBACK_EXISTS"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, http.MethodPost, "/api/feedbacks", tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	var profile struct {
		Profile model.StudentProfile `json:"profile"`
	}
	decode(t, call(e, http.MethodGet, "/api/student/profile", student), &profile)
	assert.Equal(t, 3, profile.Profile.Stars)
}

func TestAPI_RewardErrors(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	student := registerUser(t, e, "s1", "student")

	tests := []httpTest{
		{
			name:     "toggle before buying",
			method:   http.MethodPost,
			path:     "/api/student/toggle-desk1",
			token:    student,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "item must be purchased first", Code: "ITEM_NOT_OWNED"}),
		},
		{
			name:     "buy without stars",
			method:   http.MethodPost,
			path:     "/api/student/buy-desk1",
			token:    student,
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "not enough stars", Code: "INSUFFICIENT_STARS"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAPI_Meta(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())

	t.Run("schema suggestion", func(t *testing.T) {
		rec := call(e, http.MethodGet, "/api/schema-suggestion", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body struct {
			RequiredFields    []string `json:"requiredFields"`
			RecommendedFields []string `json:"recommendedFields"`
		}
		decode(t, rec, &body)
		assert.Contains(t, body.RequiredFields, "homeworkNumber")
		assert.Contains(t, body.RecommendedFields, "feedback.rating(1~5)")
	})

	t.Run("unknown api route", func(t *testing.T) {
		rec := call(e, http.MethodGet, "/api/nope", "")
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "Not Found", Code: "NOT_FOUND"}),
		}, rec)
	})

	t.Run("preflight", func(t *testing.T) {
		req, rec := newRequest(http.MethodOptions, "/api/homeworks")
		req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
		req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		assert.Contains(t, rec.Header().Get(echo.HeaderAccessControlAllowHeaders), echo.HeaderAuthorization)
	})

	t.Run("health", func(t *testing.T) {
		rec := call(e, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})
}

func TestAPI_StoreFailure(t *testing.T) {
	e := initApp(t, brokenStore{})
	internal := marshalObj(t, httpErr{Error: "internal server error", Code: "INTERNAL_ERROR"})

	tests := []httpTest{
		{
			name:     "login",
			method:   http.MethodPost,
			path:     "/api/auth/login",
			body:     []byte(`{"username":"t1","password":"pw12345678"}`),
			wantCode: http.StatusInternalServerError,
			wantData: internal,
		},
		{
			name:     "token lookup",
			method:   http.MethodGet,
			path:     "/api/me",
			token:    "some-token",
			wantCode: http.StatusInternalServerError,
			wantData: internal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAPI_SubmitHomework(t *testing.T) {
	e := initApp(t, store.NewMemoryStore())
	teacher := registerUser(t, e, "t1", "teacher")
	student := registerUser(t, e, "s1", "student")

	rec := call(e, http.MethodPost, "/api/homeworks", teacher, []byte(`{"content":"c","count":1,"deadline":"d"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var hw struct {
		Homework model.Homework `json:"homework"`
	}
	decode(t, rec, &hw)

	rec = call(e, http.MethodPost, "/api/submissions", student,
		marshalObj(t, map[string]string{"homeworkId": hw.Homework.ID, "uploadText": "done"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sub struct {
		Submission model.Submission `json:"submission"`
	}
	decode(t, rec, &sub)
	assert.Equal(t, hw.Homework.ID, sub.Submission.HomeworkID)
	assert.Equal(t, "done", sub.Submission.UploadText)
	assert.Equal(t, "", sub.Submission.TeacherMessage)
	assert.False(t, sub.Submission.Checked)

	rec = call(e, http.MethodPost, "/api/submissions", student, []byte(`{"homeworkId":"missing"}`))
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusNotFound,
		wantData: marshalObj(t, httpErr{Error: "homework not found", Code: "HOMEWORK_NOT_FOUND"}),
	}, rec)
}
