package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly wraps time.Time so attendance dates marshal and parse as
// YYYY-MM-DD, with any time-of-day normalized away.
type DateOnly struct {
	time.Time
}

// NewDateOnly truncates t to its calendar date.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a YYYY-MM-DD string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{t}, nil
}

// UnmarshalJSON parses dates in YYYY-MM-DD format
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		d.Time = time.Time{}
		return nil
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

// MarshalJSON formats dates in YYYY-MM-DD format
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format("2006-01-02"))), nil
}

// Scan implements the Scanner interface for database reading
func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	if t, ok := value.(time.Time); ok {
		d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}

	return fmt.Errorf("cannot scan %T into DateOnly", value)
}

// Value implements the Valuer interface for database writing
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

// Key returns the YYYY-MM-DD form used for map lookups.
func (d DateOnly) Key() string {
	return d.Time.Format("2006-01-02")
}

// AcademicYear represents the administrative school-year window bounding
// enrollment and attendance. At most one year is current at a time.
type AcademicYear struct {
	ID        string    `json:"id" db:"id"`
	Label     string    `json:"label" db:"label" validate:"required"`
	StartDate DateOnly  `json:"start_date" db:"start_date" validate:"required"`
	EndDate   DateOnly  `json:"end_date" db:"end_date" validate:"required"`
	IsCurrent bool      `json:"is_current" db:"is_current"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ContainsDate reports whether the given date falls inside the year bounds.
func (ay *AcademicYear) ContainsDate(d time.Time) bool {
	day := NewDateOnly(d).Time
	return !day.Before(ay.StartDate.Time) && !day.After(ay.EndDate.Time)
}
