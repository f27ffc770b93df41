package model

import "time"

// Desk1Price is the number of stars desk1 costs.
const Desk1Price = 5

// Items records which decorations a student has.
type Items struct {
	Desk1 bool `json:"desk1"`
}

// StudentProfile holds a student's star balance and room decoration state.
type StudentProfile struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Stars     int       `json:"stars"`
	Inventory Items     `json:"inventory"`
	Placed    Items     `json:"placed"`
	UpdatedAt time.Time `json:"updatedAt"`
}
