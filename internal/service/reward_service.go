package service

import (
	"context"
	"time"

	"hwstars/internal/authz"
	"hwstars/internal/errors"
	"hwstars/internal/model"
	"hwstars/internal/store"
)

// RewardService handles a student's star balance and room decoration.
type RewardService interface {
	GetProfile(ctx context.Context, student *model.User) (*model.StudentProfile, error)
	BuyDesk1(ctx context.Context, student *model.User) (*model.StudentProfile, error)
	ToggleDesk1(ctx context.Context, student *model.User) (*model.StudentProfile, error)
}

type rewardService struct {
	store store.Store
	now   func() time.Time
}

// NewRewardService creates a new reward service.
func NewRewardService(st store.Store) RewardService {
	return &rewardService{store: st, now: time.Now}
}

// GetProfile returns the student's profile, persisting an empty one on first access.
func (s *rewardService) GetProfile(ctx context.Context, student *model.User) (*model.StudentProfile, error) {
	return s.updateProfile(ctx, student, func(*model.StudentProfile) error { return nil })
}

// BuyDesk1 spends Desk1Price stars on desk1. The balance is untouched on failure.
func (s *rewardService) BuyDesk1(ctx context.Context, student *model.User) (*model.StudentProfile, error) {
	return s.updateProfile(ctx, student, func(p *model.StudentProfile) error {
		if p.Inventory.Desk1 {
			return errors.ErrItemAlreadyOwned
		}
		if p.Stars < model.Desk1Price {
			return errors.ErrInsufficientStars
		}
		p.Stars -= model.Desk1Price
		p.Inventory.Desk1 = true
		return nil
	})
}

// ToggleDesk1 places or removes an owned desk1.
func (s *rewardService) ToggleDesk1(ctx context.Context, student *model.User) (*model.StudentProfile, error) {
	return s.updateProfile(ctx, student, func(p *model.StudentProfile) error {
		if !p.Inventory.Desk1 {
			return errors.ErrItemNotOwned
		}
		p.Placed.Desk1 = !p.Placed.Desk1
		return nil
	})
}

// updateProfile runs fn against the student's ensured profile inside one store
// update. A failing fn leaves the stored document unchanged.
func (s *rewardService) updateProfile(ctx context.Context, student *model.User, fn func(*model.StudentProfile) error) (*model.StudentProfile, error) {
	if err := authz.Authorize(student, model.RoleStudent); err != nil {
		return nil, err
	}

	now := s.now()
	var out model.StudentProfile
	err := s.store.Update(ctx, func(doc *store.Document) error {
		profile := doc.EnsureProfile(student.ID, now)
		before := *profile
		if err := fn(profile); err != nil {
			return err
		}
		if *profile != before {
			profile.UpdatedAt = now
		}
		out = *profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
