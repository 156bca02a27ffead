package services

import (
	"fmt"
	"math"
	"time"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// ClassroomSnapshot is the fetched data a classroom statistics computation
// runs over: every attendance row in the reporting range plus the number of
// enrolled students.
type ClassroomSnapshot struct {
	StudentCount int
	Records      []models.Attendance
}

type dateTally struct {
	present int
	total   int
}

func (s *ClassroomSnapshot) tallyByDate() map[string]dateTally {
	out := make(map[string]dateTally)
	for _, r := range s.Records {
		t := out[r.Date.Key()]
		t.total++
		if r.Present {
			t.present++
		}
		out[r.Date.Key()] = t
	}
	return out
}

func (s *ClassroomSnapshot) tallyRange(start, end time.Time) (present, total int) {
	for _, r := range s.Records {
		d := r.Date.Time
		if d.Before(start) || d.After(end) {
			continue
		}
		total++
		if r.Present {
			present++
		}
	}
	return present, total
}

// DailyStat is one reporting row of per-day classroom attendance.
type DailyStat struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
}

// DailyStatistics reports per-day counts for each non-holiday date in range
// that has at least one record.
func DailyStatistics(snap *ClassroomSnapshot, start, end models.DateOnly, cal *Calendar) []DailyStat {
	byDate := snap.tallyByDate()
	stats := make([]DailyStat, 0)

	for d := start.Time; !d.After(end.Time); d = d.AddDate(0, 0, 1) {
		key := models.NewDateOnly(d).Key()
		if _, holiday := cal.holidays[key]; holiday {
			continue
		}
		t := byDate[key]
		if t.total == 0 {
			continue
		}
		stats = append(stats, DailyStat{
			Date:    key,
			Present: t.present,
			Total:   t.total,
			Pending: snap.StudentCount - t.total,
		})
	}
	return stats
}

// WeeklyStat is one reporting row covering a seven-day window.
type WeeklyStat struct {
	Week    string `json:"week"`
	Present int    `json:"present"`
	Total   int    `json:"total"`
	Pending int    `json:"pending"`
}

// WeeklyStatistics reports counts per seven-day window starting at the range
// start.
func WeeklyStatistics(snap *ClassroomSnapshot, start, end models.DateOnly) []WeeklyStat {
	stats := make([]WeeklyStat, 0)
	current := start.Time
	weekNum := 1

	for !current.After(end.Time) {
		weekEnd := current.AddDate(0, 0, 6)
		if weekEnd.After(end.Time) {
			weekEnd = end.Time
		}

		present, total := snap.tallyRange(current, weekEnd)
		days := int(weekEnd.Sub(current).Hours() / 24)
		pending := snap.StudentCount*days - total
		if pending < 0 {
			pending = 0
		}

		stats = append(stats, WeeklyStat{
			Week: fmt.Sprintf("Week %d: %s to %s", weekNum,
				current.Format("2006-01-02"), weekEnd.Format("2006-01-02")),
			Present: present,
			Total:   total,
			Pending: pending,
		})

		current = weekEnd.AddDate(0, 0, 1)
		weekNum++
	}
	return stats
}

// MonthlyStat is one reporting row covering a calendar month, with the
// non-working day breakdown that explains the expected record count.
type MonthlyStat struct {
	Month        string `json:"month"`
	TotalDays    int    `json:"total_days"`
	Holidays     int    `json:"holidays"`
	Weekends     int    `json:"weekends"`
	ExpectedDays int    `json:"expected_days"`
	Present      int    `json:"present"`
	Absent       int    `json:"absent"`
	Pending      int    `json:"pending"`
}

// MonthlyStatistics reports counts per calendar month intersecting the
// range. Expected records are school days times enrolled students.
func MonthlyStatistics(snap *ClassroomSnapshot, start, end models.DateOnly, cal *Calendar) []MonthlyStat {
	stats := make([]MonthlyStat, 0)
	current := start.Time

	for !current.After(end.Time) {
		monthEnd := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, -1)
		if monthEnd.After(end.Time) {
			monthEnd = end.Time
		}

		var totalDays, weekends, holidays, schoolDays int
		for d := current; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
			totalDays++
			isWeekend := cal.weekend.Contains(models.WeekdayIndex(d))
			_, isHoliday := cal.holidays[models.NewDateOnly(d).Key()]
			if isWeekend {
				weekends++
			}
			if isHoliday {
				holidays++
			}
			if !isWeekend && !isHoliday {
				schoolDays++
			}
		}

		present, total := snap.tallyRange(current, monthEnd)
		pending := schoolDays*snap.StudentCount - total
		if pending < 0 {
			pending = 0
		}
		absent := 0
		if total > 0 {
			absent = total - present
		}

		stats = append(stats, MonthlyStat{
			Month:        current.Month().String(),
			TotalDays:    totalDays,
			Holidays:     holidays,
			Weekends:     weekends,
			ExpectedDays: schoolDays,
			Present:      present,
			Absent:       absent,
			Pending:      pending,
		})

		current = time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, time.UTC).
			AddDate(0, 1, 0)
	}
	return stats
}

// YearlyStat is the single whole-range reporting row.
type YearlyStat struct {
	Present    int     `json:"present"`
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	Percentage float64 `json:"percentage"`
}

// YearlyStatistics reports whole-range counts with a two-decimal present
// percentage over recorded days.
func YearlyStatistics(snap *ClassroomSnapshot, start, end models.DateOnly) YearlyStat {
	present, total := snap.tallyRange(start.Time, end.Time)

	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(present)/float64(total)*10000) / 100
	}
	pending := total - present
	if pending < 0 {
		pending = 0
	}

	return YearlyStat{
		Present:    present,
		Total:      total,
		Pending:    pending,
		Percentage: pct,
	}
}
