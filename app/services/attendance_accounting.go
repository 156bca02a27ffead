package services

import (
	"math"
	"time"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// DayStatus classifies one calendar date for a student.
type DayStatus string

const (
	DayPresent DayStatus = "present"
	DayAbsent  DayStatus = "absent"
	DayHoliday DayStatus = "holiday"
	DayWeekend DayStatus = "weekend"
	DayPending DayStatus = "pending"
)

// DayClassification is the result of classifying a single date. Label
// carries the holiday name for holidays and the weekday name for weekends.
type DayClassification struct {
	Date   models.DateOnly `json:"date"`
	Status DayStatus       `json:"status"`
	Label  string          `json:"label,omitempty"`
}

// AttendanceOverlay holds unsaved local toggles layered over stored records:
// date key -> mark, where a nil mark means "reset to pending". Reads check
// the overlay before the stored record; stored data is never mutated until
// an explicit save.
type AttendanceOverlay map[string]*bool

// Changes extracts the entries a save must submit: only dates whose final
// overlay value is non-nil. Dates reset to pending are omitted, which the
// bulk-save contract treats as deletions of any prior record.
func (o AttendanceOverlay) Changes() map[string]bool {
	out := make(map[string]bool, len(o))
	for key, mark := range o {
		if mark != nil {
			out[key] = *mark
		}
	}
	return out
}

// RecordsByDate indexes attendance records by calendar date for lookup.
// Later duplicates for the same date are ignored.
func RecordsByDate(records []models.Attendance) map[string]bool {
	out := make(map[string]bool, len(records))
	for _, r := range records {
		key := r.Date.Key()
		if _, ok := out[key]; !ok {
			out[key] = r.Present
		}
	}
	return out
}

// Calendar is an immutable snapshot of the non-working-day configuration for
// one classroom: its holiday dates and weekend-day mask. All classification
// is a pure function of this snapshot plus the records passed in.
type Calendar struct {
	holidays map[string]string
	weekend  models.WeekendDays
}

// NewCalendar builds a calendar from a holiday list and a weekend mask.
func NewCalendar(holidays []models.Holiday, weekend models.WeekendDays) *Calendar {
	c := &Calendar{
		holidays: make(map[string]string, len(holidays)),
		weekend:  weekend,
	}
	for _, h := range holidays {
		key := h.Date.Key()
		if _, ok := c.holidays[key]; !ok {
			name := h.Name
			if name == "" {
				name = "Holiday"
			}
			c.holidays[key] = name
		}
	}
	return c
}

// ClassifyDay resolves one date with strict precedence:
// holiday > weekend > overlay > stored record > pending.
// A holiday or weekend overrides any attendance record on that date.
func (c *Calendar) ClassifyDay(date models.DateOnly, records map[string]bool, overlay AttendanceOverlay) DayClassification {
	key := date.Key()

	if name, ok := c.holidays[key]; ok {
		return DayClassification{Date: date, Status: DayHoliday, Label: name}
	}

	if c.weekend.Contains(models.WeekdayIndex(date.Time)) {
		return DayClassification{Date: date, Status: DayWeekend, Label: date.Weekday().String()}
	}

	if overlay != nil {
		if mark, ok := overlay[key]; ok {
			if mark == nil {
				return DayClassification{Date: date, Status: DayPending}
			}
			if *mark {
				return DayClassification{Date: date, Status: DayPresent}
			}
			return DayClassification{Date: date, Status: DayAbsent}
		}
	}

	if present, ok := records[key]; ok {
		if present {
			return DayClassification{Date: date, Status: DayPresent}
		}
		return DayClassification{Date: date, Status: DayAbsent}
	}

	return DayClassification{Date: date, Status: DayPending}
}

// AttendanceSummary aggregates day classifications over a range. The
// identities AllowedDays == Present+Absent+Pending and
// TotalDays == AllowedDays+Holiday+Weekend hold for every summary.
type AttendanceSummary struct {
	Present     int `json:"present"`
	Absent      int `json:"absent"`
	Holiday     int `json:"holiday"`
	Weekend     int `json:"weekend"`
	Pending     int `json:"pending"`
	TotalDays   int `json:"total_days"`
	AllowedDays int `json:"allowed_days"`
	Percentage  int `json:"percentage"`
}

func (s *AttendanceSummary) add(status DayStatus) {
	switch status {
	case DayPresent:
		s.Present++
	case DayAbsent:
		s.Absent++
	case DayHoliday:
		s.Holiday++
	case DayWeekend:
		s.Weekend++
	case DayPending:
		s.Pending++
	}
}

func (s *AttendanceSummary) finalize() {
	s.AllowedDays = s.Present + s.Absent + s.Pending
	s.TotalDays = s.AllowedDays + s.Holiday + s.Weekend
	if s.AllowedDays > 0 {
		s.Percentage = int(math.Round(float64(s.Present) / float64(s.AllowedDays) * 100))
	}
}

// Aggregate classifies every date in [start, end] inclusive and tallies the
// counts. An inverted range yields a zero summary.
func (c *Calendar) Aggregate(start, end models.DateOnly, records map[string]bool, overlay AttendanceOverlay) AttendanceSummary {
	var summary AttendanceSummary
	for d := start.Time; !d.After(end.Time); d = d.AddDate(0, 0, 1) {
		day := c.ClassifyDay(models.NewDateOnly(d), records, overlay)
		summary.add(day.Status)
	}
	summary.finalize()
	return summary
}

// MonthlySummary is one month's aggregate within a breakdown.
type MonthlySummary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	AttendanceSummary
}

// MonthlyBreakdown produces one aggregate per calendar month intersecting
// the range, in chronological order.
func (c *Calendar) MonthlyBreakdown(start, end models.DateOnly, records map[string]bool, overlay AttendanceOverlay) []MonthlySummary {
	var out []MonthlySummary
	if start.Time.After(end.Time) {
		return out
	}

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end.Time) {
		monthStart := cursor
		if monthStart.Before(start.Time) {
			monthStart = start.Time
		}
		monthEnd := cursor.AddDate(0, 1, -1)
		if monthEnd.After(end.Time) {
			monthEnd = end.Time
		}

		summary := c.Aggregate(models.NewDateOnly(monthStart), models.NewDateOnly(monthEnd), records, overlay)
		out = append(out, MonthlySummary{
			Year:              cursor.Year(),
			Month:             cursor.Month(),
			AttendanceSummary: summary,
		})

		cursor = cursor.AddDate(0, 1, 0)
	}
	return out
}

// ClassifyRange classifies every date in [start, end] for per-day display.
func (c *Calendar) ClassifyRange(start, end models.DateOnly, records map[string]bool, overlay AttendanceOverlay) []DayClassification {
	var out []DayClassification
	for d := start.Time; !d.After(end.Time); d = d.AddDate(0, 0, 1) {
		out = append(out, c.ClassifyDay(models.NewDateOnly(d), records, overlay))
	}
	return out
}
