package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hwstars/internal/errors"
	"hwstars/internal/model"
)

func TestHomeworkService_Create(t *testing.T) {
	f := newFixture(t)
	teacher := f.register(t, "t1", model.RoleTeacher)
	student := f.register(t, "s1", model.RoleStudent)

	tests := []struct {
		name          string
		user          *model.User
		input         CreateHomeworkInput
		expectedError error
	}{
		{
			name:  "teacher creates homework",
			user:  teacher,
			input: CreateHomeworkInput{Content: "Read ch.1", Count: 1, Deadline: "2024-01-01"},
		},
		{
			name:          "student is forbidden",
			user:          student,
			input:         CreateHomeworkInput{Content: "Read ch.1", Count: 1, Deadline: "2024-01-01"},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "anonymous is forbidden",
			user:          nil,
			input:         CreateHomeworkInput{Content: "Read ch.1", Count: 1, Deadline: "2024-01-01"},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "missing content",
			user:          teacher,
			input:         CreateHomeworkInput{Count: 1, Deadline: "2024-01-01"},
			expectedError: errors.ErrValidation,
		},
		{
			name:          "zero count",
			user:          teacher,
			input:         CreateHomeworkInput{Content: "Read ch.1", Deadline: "2024-01-01"},
			expectedError: errors.ErrValidation,
		},
		{
			name:          "missing deadline",
			user:          teacher,
			input:         CreateHomeworkInput{Content: "Read ch.1", Count: 1},
			expectedError: errors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hw, err := f.homeworks.Create(context.Background(), tt.user, tt.input)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, hw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "HW-0001", hw.HomeworkNumber)
			assert.Equal(t, teacher.ID, hw.TeacherID)
			assert.Equal(t, model.HomeworkStatusAssigned, hw.Status)
			assert.Equal(t, fixedNow, hw.CreatedAt)
		})
	}

	// Failed attempts do not consume numbers.
	assert.Equal(t, 1, snapshot(t, f.store).Counters.Homeworks)
}

func TestHomeworkService_NumbersAreSequentialAcrossTeachers(t *testing.T) {
	f := newFixture(t)
	t1 := f.register(t, "t1", model.RoleTeacher)
	t2 := f.register(t, "t2", model.RoleTeacher)

	assert.Equal(t, "HW-0001", f.homework(t, t1).HomeworkNumber)
	assert.Equal(t, "HW-0002", f.homework(t, t2).HomeworkNumber)
	assert.Equal(t, "HW-0003", f.homework(t, t1).HomeworkNumber)
}

func TestHomeworkService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	t1 := f.register(t, "t1", model.RoleTeacher)
	t2 := f.register(t, "t2", model.RoleTeacher)
	student := f.register(t, "s1", model.RoleStudent)

	own := f.homework(t, t1)
	other := f.homework(t, t2)

	list, err := f.homeworks.List(ctx, t1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, own.ID, list[0].ID)

	list, err = f.homeworks.List(ctx, t2)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	list, err = f.homeworks.List(ctx, student)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.homeworks.List(ctx, nil)
	assert.ErrorIs(t, err, errors.ErrUnauthenticated)
}

func TestHomeworkService_List_EmptyIsNotNil(t *testing.T) {
	f := newFixture(t)
	teacher := f.register(t, "t1", model.RoleTeacher)

	list, err := f.homeworks.List(context.Background(), teacher)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
