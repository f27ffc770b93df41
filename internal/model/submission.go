package model

import "time"

// Submission is a student's answer to a homework. Checked flips to true once,
// when the teacher leaves feedback.
type Submission struct {
	ID             string    `json:"id"`
	HomeworkID     string    `json:"homeworkId"`
	StudentID      string    `json:"studentId"`
	UploadText     string    `json:"uploadText"`
	TeacherMessage string    `json:"teacherMessage"`
	Checked        bool      `json:"checked"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SubmissionView is a submission joined with its homework, student and feedback.
type SubmissionView struct {
	Submission
	HomeworkNumber  string    `json:"homeworkNumber,omitempty"`
	HomeworkContent string    `json:"homeworkContent,omitempty"`
	StudentName     string    `json:"studentName,omitempty"`
	Feedback        *Feedback `json:"feedback,omitempty"`
}
