package models

import "time"

// Attendance represents a student's recorded attendance for one calendar
// date. At most one record exists per (student, date, year); the absence of
// a record means the day is still pending, which is distinct from a recorded
// absence.
type Attendance struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id" validate:"required,uuid"`
	Date      DateOnly  `json:"date" db:"date" validate:"required"`
	Present   bool      `json:"present" db:"present"`
	YearID    string    `json:"year_id" db:"year_id" validate:"required,uuid"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	StudentName string `json:"student_name,omitempty" db:"-"`
}

// Holiday represents a single non-working calendar date within an academic
// year. A date may not carry two holiday records for the same year.
type Holiday struct {
	ID        string    `json:"id" db:"id"`
	YearID    string    `json:"year_id" db:"year_id" validate:"required,uuid"`
	Date      DateOnly  `json:"date" db:"date" validate:"required"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
