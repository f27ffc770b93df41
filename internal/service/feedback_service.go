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

// CreateFeedbackInput carries a teacher's review of a submission.
type CreateFeedbackInput struct {
	SubmissionID string
	Rating       int
	Feedback     string
}

// FeedbackResult is the stored feedback and the stars it moved.
type FeedbackResult struct {
	Feedback     model.Feedback `json:"feedback"`
	AwardedStars int            `json:"awardedStars"`
	CurrentStars int            `json:"currentStars"`
}

// FeedbackService handles submission reviews and the stars they award.
type FeedbackService interface {
	Create(ctx context.Context, teacher *model.User, in CreateFeedbackInput) (*FeedbackResult, error)
}

type feedbackService struct {
	store store.Store
	now   func() time.Time
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(st store.Store) FeedbackService {
	return &feedbackService{store: st, now: time.Now}
}

// Create reviews a submission once: it stores the feedback, marks the submission
// checked and credits the clamped rating to the student, all in one update.
func (s *feedbackService) Create(ctx context.Context, teacher *model.User, in CreateFeedbackInput) (*FeedbackResult, error) {
	if err := authz.Authorize(teacher, model.RoleTeacher); err != nil {
		return nil, err
	}

	now := s.now()
	var result FeedbackResult
	err := s.store.Update(ctx, func(doc *store.Document) error {
		sub := doc.SubmissionByID(in.SubmissionID)
		if sub == nil {
			return errors.ErrSubmissionNotFound
		}
		if doc.FeedbackForSubmission(sub.ID) != nil {
			return errors.ErrFeedbackExists
		}
		if !authz.OwnsHomework(teacher, doc.HomeworkByID(sub.HomeworkID)) {
			return errors.ErrForbidden
		}

		fb := model.Feedback{
			ID:           uuid.NewString(),
			SubmissionID: sub.ID,
			TeacherID:    teacher.ID,
			Rating:       model.ClampRating(in.Rating),
			Feedback:     in.Feedback,
			CreatedAt:    now,
		}
		doc.Feedbacks = append(doc.Feedbacks, fb)
		sub.Checked = true

		profile := doc.EnsureProfile(sub.StudentID, now)
		profile.Stars += fb.Rating
		profile.UpdatedAt = now

		result = FeedbackResult{Feedback: fb, AwardedStars: fb.Rating, CurrentStars: profile.Stars}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
