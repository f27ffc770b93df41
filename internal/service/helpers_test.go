package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hwstars/internal/auth"
	"hwstars/internal/model"
	"hwstars/internal/store"
)

var fixedNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func snapshot(t *testing.T, st store.Store) *store.Document {
	t.Helper()
	var out *store.Document
	require.NoError(t, st.View(context.Background(), func(doc *store.Document) error {
		out = doc.Clone()
		return nil
	}))
	return out
}

// fixture wires every service over one in-memory store.
type fixture struct {
	store       *store.MemoryStore
	auth        *authService
	homeworks   HomeworkService
	submissions SubmissionService
	feedbacks   FeedbackService
	rewards     RewardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.NewMemoryStore()
	clock := func() time.Time { return fixedNow }

	hw := NewHomeworkService(st).(*homeworkService)
	hw.now = clock
	sub := NewSubmissionService(st).(*submissionService)
	sub.now = clock
	fb := NewFeedbackService(st).(*feedbackService)
	fb.now = clock
	rw := NewRewardService(st).(*rewardService)
	rw.now = clock

	return &fixture{
		store:       st,
		auth:        newTestAuthService(st, auth.NewSessionCache(nil), fixedNow),
		homeworks:   hw,
		submissions: sub,
		feedbacks:   fb,
		rewards:     rw,
	}
}

func (f *fixture) register(t *testing.T, username string, role model.Role) *model.User {
	t.Helper()
	ctx := context.Background()
	res, err := f.auth.Register(ctx, RegisterInput{
		Name:     "name-" + username,
		Role:     string(role),
		Username: username,
		Password: "pw12345678",
	})
	require.NoError(t, err)
	user, err := f.auth.Resolve(ctx, res.Token)
	require.NoError(t, err)
	return user
}

func (f *fixture) homework(t *testing.T, teacher *model.User) *model.Homework {
	t.Helper()
	hw, err := f.homeworks.Create(context.Background(), teacher, CreateHomeworkInput{Content: "Read ch.1", Count: 1, Deadline: "2024-01-01"})
	require.NoError(t, err)
	return hw
}

func (f *fixture) submission(t *testing.T, student *model.User, hw *model.Homework) *model.Submission {
	t.Helper()
	sub, err := f.submissions.Create(context.Background(), student, CreateSubmissionInput{HomeworkID: hw.ID, UploadText: "done"})
	require.NoError(t, err)
	return sub
}

// award gives student stars through a reviewed submission.
func (f *fixture) award(t *testing.T, teacher, student *model.User, rating int) {
	t.Helper()
	sub := f.submission(t, student, f.homework(t, teacher))
	_, err := f.feedbacks.Create(context.Background(), teacher, CreateFeedbackInput{SubmissionID: sub.ID, Rating: rating, Feedback: "ok"})
	require.NoError(t, err)
}
