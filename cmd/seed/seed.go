package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "hwstars/internal/errors"
	"hwstars/internal/model"
	"hwstars/internal/service"
)

// SeedUser is an account to create.
type SeedUser struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// SeedHomework is a homework assigned by the teacher with the given username.
type SeedHomework struct {
	Teacher  string `json:"teacher"`
	Content  string `json:"content"`
	Count    int    `json:"count"`
	Deadline string `json:"deadline"`
}

// SeedData is the layout of seed.json.
type SeedData struct {
	Users     []SeedUser     `json:"users"`
	Homeworks []SeedHomework `json:"homeworks"`
}

// seedResult counts what a run changed.
type seedResult struct {
	UsersCreated     int
	UsersExisting    int
	HomeworksCreated int
	HomeworksSkipped int
}

func parseSeedData(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return &data, nil
}

// seedStore registers the seed users and assigns the seed homeworks. Users that
// already exist are signed in instead, and homeworks whose content the teacher
// already assigned are skipped, so running it twice changes nothing.
func seedStore(ctx context.Context, authService service.AuthService, homeworkService service.HomeworkService, data *SeedData) (seedResult, error) {
	var res seedResult
	users := make(map[string]*model.User, len(data.Users))

	for _, u := range data.Users {
		auth, err := authService.Register(ctx, service.RegisterInput{
			Name:     u.Name,
			Role:     u.Role,
			Username: u.Username,
			Password: u.Password,
		})
		switch {
		case err == nil:
			res.UsersCreated++
		case errors.Is(err, apperrors.ErrUsernameTaken):
			auth, err = authService.Login(ctx, u.Username, u.Password)
			if err != nil {
				return res, fmt.Errorf("sign in existing user %s: %w", u.Username, err)
			}
			res.UsersExisting++
		default:
			return res, fmt.Errorf("register %s: %w", u.Username, err)
		}

		user, err := authService.Resolve(ctx, auth.Token)
		if err != nil {
			return res, fmt.Errorf("resolve %s: %w", u.Username, err)
		}
		users[u.Username] = user
	}

	for _, hw := range data.Homeworks {
		teacher, ok := users[hw.Teacher]
		if !ok {
			return res, fmt.Errorf("homework %q references unknown teacher %q", hw.Content, hw.Teacher)
		}

		existing, err := homeworkService.List(ctx, teacher)
		if err != nil {
			return res, fmt.Errorf("list homeworks of %s: %w", hw.Teacher, err)
		}
		if hasContent(existing, hw.Content) {
			res.HomeworksSkipped++
			continue
		}

		if _, err := homeworkService.Create(ctx, teacher, service.CreateHomeworkInput{
			Content:  hw.Content,
			Count:    hw.Count,
			Deadline: hw.Deadline,
		}); err != nil {
			return res, fmt.Errorf("create homework %q: %w", hw.Content, err)
		}
		res.HomeworksCreated++
	}

	return res, nil
}

func hasContent(homeworks []model.Homework, content string) bool {
	for _, hw := range homeworks {
		if hw.Content == content {
			return true
		}
	}
	return false
}
