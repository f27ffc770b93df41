package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hwstars/internal/authz"
	"hwstars/internal/errors"
	"hwstars/internal/model"
	"hwstars/internal/store"
)

// CreateSubmissionInput carries a student's answer to a homework.
type CreateSubmissionInput struct {
	HomeworkID     string
	UploadText     string
	TeacherMessage string
}

// SubmissionService handles homework submissions.
type SubmissionService interface {
	Create(ctx context.Context, student *model.User, in CreateSubmissionInput) (*model.Submission, error)
	List(ctx context.Context, user *model.User) ([]model.SubmissionView, error)
}

type submissionService struct {
	store store.Store
	now   func() time.Time
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(st store.Store) SubmissionService {
	return &submissionService{store: st, now: time.Now}
}

// Create records an unchecked submission for an existing homework.
func (s *submissionService) Create(ctx context.Context, student *model.User, in CreateSubmissionInput) (*model.Submission, error) {
	if err := authz.Authorize(student, model.RoleStudent); err != nil {
		return nil, err
	}

	sub := model.Submission{
		ID:             uuid.NewString(),
		HomeworkID:     in.HomeworkID,
		StudentID:      student.ID,
		UploadText:     in.UploadText,
		TeacherMessage: in.TeacherMessage,
		Checked:        false,
		CreatedAt:      s.now(),
	}
	err := s.store.Update(ctx, func(doc *store.Document) error {
		if doc.HomeworkByID(in.HomeworkID) == nil {
			return errors.ErrHomeworkNotFound
		}
		doc.Submissions = append(doc.Submissions, sub)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// List returns the submissions user may see, joined with homework, student and feedback.
func (s *submissionService) List(ctx context.Context, user *model.User) ([]model.SubmissionView, error) {
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}
	views := []model.SubmissionView{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		for i := range doc.Submissions {
			sub := doc.Submissions[i]
			hw := doc.HomeworkByID(sub.HomeworkID)
			if !authz.CanSeeSubmission(user, &sub, hw) {
				continue
			}
			views = append(views, enrichSubmission(doc, sub, hw))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func enrichSubmission(doc *store.Document, sub model.Submission, hw *model.Homework) model.SubmissionView {
	view := model.SubmissionView{Submission: sub}
	if hw != nil {
		view.HomeworkNumber = hw.HomeworkNumber
		view.HomeworkContent = hw.Content
	}
	if student := doc.UserByID(sub.StudentID); student != nil {
		view.StudentName = student.Name
	}
	if fb := doc.FeedbackForSubmission(sub.ID); fb != nil {
		f := *fb
		view.Feedback = &f
	}
	return view
}
