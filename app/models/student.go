package models

import "time"

// Student represents a student enrollment in a classroom. Enrollment is per
// academic year; the same person may sit in a different classroom next year.
type Student struct {
	ID               string    `json:"id" db:"id"`
	FullName         string    `json:"full_name" db:"full_name" validate:"required"`
	EnrollmentNumber int       `json:"enrollment_number" db:"enrollment_number" validate:"required,gt=0"`
	ClassroomID      string    `json:"classroom_id" db:"classroom_id" validate:"required,uuid"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`

	ClassroomName string `json:"classroom_name,omitempty" db:"-"`
}

// Teacher represents a member of the teaching staff.
type Teacher struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name" validate:"required"`
	Email     string    `json:"email,omitempty" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
