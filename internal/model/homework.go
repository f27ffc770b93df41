package model

import (
	"fmt"
	"time"
)

// HomeworkStatus represents the lifecycle state of a homework.
type HomeworkStatus string

// HomeworkStatusAssigned is the only state a homework reaches today.
const HomeworkStatusAssigned HomeworkStatus = "assigned"

// Homework is an assignment authored by a teacher and visible to every student.
type Homework struct {
	ID             string         `json:"id"`
	TeacherID      string         `json:"teacherId"`
	HomeworkNumber string         `json:"homeworkNumber"`
	Content        string         `json:"content"`
	Count          int            `json:"count"`
	Deadline       string         `json:"deadline"`
	Status         HomeworkStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// FormatHomeworkNumber renders the n-th homework number, e.g. HW-0001.
func FormatHomeworkNumber(n int) string {
	return fmt.Sprintf("HW-%04d", n)
}
