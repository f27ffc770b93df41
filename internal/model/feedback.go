package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is the teacher's review of a submission. At most one exists per submission.
type Feedback struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submissionId"`
	TeacherID    string    `json:"teacherId"`
	Rating       int       `json:"rating"`
	Feedback     string    `json:"feedback"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}
