package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WeekendDays is the set of weekday indices (Sunday=0 .. Saturday=6) treated
// as weekends for a classroom. External data may carry it as a JSON array or
// as a JSON string containing an array; anything malformed degrades to the
// empty set so a bad classroom record can never break a computation.
type WeekendDays []int

// ParseWeekendDays normalizes raw weekend-day data into a clean index list.
func ParseWeekendDays(raw []byte) WeekendDays {
	if len(raw) == 0 {
		return WeekendDays{}
	}

	var days []int
	if err := json.Unmarshal(raw, &days); err == nil {
		return sanitizeWeekendDays(days)
	}

	// Some clients double-encode: a JSON string holding the array.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &days); err == nil {
			return sanitizeWeekendDays(days)
		}
	}

	return WeekendDays{}
}

func sanitizeWeekendDays(days []int) WeekendDays {
	out := make(WeekendDays, 0, len(days))
	seen := make(map[int]bool)
	for _, d := range days {
		if d < 0 || d > 6 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Contains reports whether the weekday index is a weekend day.
func (w WeekendDays) Contains(weekday int) bool {
	for _, d := range w {
		if d == weekday {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts both the array and string-of-array representations.
func (w *WeekendDays) UnmarshalJSON(data []byte) error {
	*w = ParseWeekendDays(data)
	return nil
}

// MarshalJSON always emits the canonical array form.
func (w WeekendDays) MarshalJSON() ([]byte, error) {
	if w == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(w))
}

// Scan implements the Scanner interface for database reading
func (w *WeekendDays) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*w = WeekendDays{}
	case []byte:
		*w = ParseWeekendDays(v)
	case string:
		*w = ParseWeekendDays([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into WeekendDays", value)
	}
	return nil
}

// Value implements the Valuer interface for database writing
func (w WeekendDays) Value() (driver.Value, error) {
	b, err := json.Marshal([]int(w))
	return string(b), err
}

// Classroom represents a class of students within an academic year. The
// weekend configuration is scoped per classroom and overrides any school
// default.
type Classroom struct {
	ID             string      `json:"id" db:"id"`
	Name           string      `json:"name" db:"name" validate:"required"`
	AcademicYearID string      `json:"academic_year_id" db:"academic_year_id" validate:"required,uuid"`
	StartDate      *DateOnly   `json:"start_date,omitempty" db:"start_date"`
	EndDate        *DateOnly   `json:"end_date,omitempty" db:"end_date"`
	WeekendDays    WeekendDays `json:"weekend_days" db:"weekend_days"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`

	YearLabel    string `json:"year_label,omitempty" db:"-"`
	StudentCount int    `json:"student_count" db:"-"`
}

// DateBounds resolves the range attendance is computed over: classroom bounds
// win, academic-year bounds fill any gap.
func (c *Classroom) DateBounds(year *AcademicYear) (start, end DateOnly) {
	if c.StartDate != nil && !c.StartDate.IsZero() {
		start = *c.StartDate
	} else if year != nil {
		start = year.StartDate
	}
	if c.EndDate != nil && !c.EndDate.IsZero() {
		end = *c.EndDate
	} else if year != nil {
		end = year.EndDate
	}
	return start, end
}
