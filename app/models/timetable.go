package models

import "time"

// TimetableEntry represents a single scheduled lesson: a classroom, a day of
// the week, a period slot and the teacher taking it. The data layer does not
// enforce uniqueness of (classroom, day, period); duplicate rows are
// tolerated and the first match wins wherever entries are looked up.
type TimetableEntry struct {
	ID          string    `json:"id" db:"id"`
	ClassroomID string    `json:"classroom_id" db:"classroom_id" validate:"required,uuid"`
	Day         DayOfWeek `json:"day" db:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Period      int       `json:"period" db:"period" validate:"required,gt=0"`
	Subject     string    `json:"subject" db:"subject" validate:"required"`
	TeacherID   string    `json:"teacher_id" db:"teacher_id" validate:"required,uuid"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	ClassroomName string `json:"classroom_name,omitempty" db:"-"`
	TeacherName   string `json:"teacher_name,omitempty" db:"-"`
}

// Absence represents a teacher's attendance status for a date. Re-marking an
// already-absent teacher on the same date updates the existing row. A row
// with status "present" retracts a previously recorded absence.
type Absence struct {
	ID        string        `json:"id" db:"id"`
	TeacherID string        `json:"teacher_id" db:"teacher_id" validate:"required,uuid"`
	Date      DateOnly      `json:"date" db:"date" validate:"required"`
	Status    AbsenceStatus `json:"status" db:"status"`
	Reason    string        `json:"reason" db:"reason"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`

	TeacherName string `json:"teacher_name,omitempty" db:"-"`
}

// Proxy represents one substitute-teacher assignment covering a single
// period of an absent teacher's schedule on a given date.
type Proxy struct {
	ID                string      `json:"id" db:"id"`
	AbsenceID         string      `json:"absence_id" db:"absence_id"`
	ClassroomID       string      `json:"classroom_id" db:"classroom_id"`
	Day               DayOfWeek   `json:"day" db:"day"`
	Period            int         `json:"period" db:"period"`
	OriginalTeacherID string      `json:"original_teacher_id" db:"original_teacher_id"`
	ProxyTeacherID    string      `json:"proxy_teacher_id" db:"proxy_teacher_id"`
	Subject           string      `json:"subject" db:"subject"`
	Date              DateOnly    `json:"date" db:"date"`
	Status            ProxyStatus `json:"status" db:"status"`
	Reason            string      `json:"reason" db:"reason"`
	AssignedBy        *string     `json:"assigned_by,omitempty" db:"assigned_by"`
	CompletedAt       *time.Time  `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`

	ClassroomName       string `json:"classroom_name,omitempty" db:"-"`
	OriginalTeacherName string `json:"original_teacher_name,omitempty" db:"-"`
	ProxyTeacherName    string `json:"proxy_teacher_name,omitempty" db:"-"`
}

// IsActive reports whether the proxy still counts toward coverage and
// availability checks. Cancelled proxies never do.
func (p *Proxy) IsActive() bool {
	return p.Status != ProxyCancelled
}
