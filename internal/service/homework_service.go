package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hwstars/internal/authz"
	"hwstars/internal/errors"
	"hwstars/internal/model"
	"hwstars/internal/store"
)

// CreateHomeworkInput carries the fields of a new homework.
type CreateHomeworkInput struct {
	Content  string
	Count    int
	Deadline string
}

// HomeworkService handles homework assignment.
type HomeworkService interface {
	Create(ctx context.Context, teacher *model.User, in CreateHomeworkInput) (*model.Homework, error)
	List(ctx context.Context, user *model.User) ([]model.Homework, error)
}

type homeworkService struct {
	store store.Store
	now   func() time.Time
}

// NewHomeworkService creates a new homework service.
func NewHomeworkService(st store.Store) HomeworkService {
	return &homeworkService{store: st, now: time.Now}
}

// Create assigns a homework authored by teacher. Homework numbers come from a
// counter that never goes back, so numbers are never reused.
func (s *homeworkService) Create(ctx context.Context, teacher *model.User, in CreateHomeworkInput) (*model.Homework, error) {
	if err := authz.Authorize(teacher, model.RoleTeacher); err != nil {
		return nil, err
	}
	if in.Content == "" || in.Count <= 0 || in.Deadline == "" {
		return nil, fmt.Errorf("%w: content, count and deadline are required", errors.ErrValidation)
	}

	hw := model.Homework{
		ID:        uuid.NewString(),
		TeacherID: teacher.ID,
		Content:   in.Content,
		Count:     in.Count,
		Deadline:  in.Deadline,
		Status:    model.HomeworkStatusAssigned,
		CreatedAt: s.now(),
	}
	err := s.store.Update(ctx, func(doc *store.Document) error {
		hw.HomeworkNumber = doc.NextHomeworkNumber()
		doc.Homeworks = append(doc.Homeworks, hw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hw, nil
}

// List returns the homeworks user may see: a teacher's own, or all of them for students.
func (s *homeworkService) List(ctx context.Context, user *model.User) ([]model.Homework, error) {
	if user == nil {
		return nil, errors.ErrUnauthenticated
	}
	homeworks := []model.Homework{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		for i := range doc.Homeworks {
			if authz.CanSeeHomework(user, &doc.Homeworks[i]) {
				homeworks = append(homeworks, doc.Homeworks[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return homeworks, nil
}
