package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// Three-student classroom over 2025-06-02 (Monday) .. 2025-06-08, weekend
// Saturday/Sunday, holiday on 06-05. One stray record sits on the holiday.
func statsFixture() (*ClassroomSnapshot, *Calendar) {
	snap := &ClassroomSnapshot{
		StudentCount: 3,
		Records: []models.Attendance{
			{StudentID: "s1", Date: date("2025-06-02"), Present: true},
			{StudentID: "s2", Date: date("2025-06-02"), Present: true},
			{StudentID: "s3", Date: date("2025-06-02"), Present: false},
			{StudentID: "s1", Date: date("2025-06-03"), Present: true},
			{StudentID: "s2", Date: date("2025-06-03"), Present: false},
			{StudentID: "s1", Date: date("2025-06-05"), Present: true},
		},
	}
	cal := NewCalendar(
		[]models.Holiday{{Date: date("2025-06-05"), Name: "Founders Day"}},
		models.WeekendDays{0, 6},
	)
	return snap, cal
}

func TestDailyStatistics(t *testing.T) {
	snap, cal := statsFixture()

	stats := DailyStatistics(snap, date("2025-06-02"), date("2025-06-08"), cal)

	// Holiday dates and dates without records are skipped.
	require.Len(t, stats, 2)

	assert.Equal(t, "2025-06-02", stats[0].Date)
	assert.Equal(t, 2, stats[0].Present)
	assert.Equal(t, 3, stats[0].Total)
	assert.Equal(t, 0, stats[0].Pending)

	assert.Equal(t, "2025-06-03", stats[1].Date)
	assert.Equal(t, 1, stats[1].Present)
	assert.Equal(t, 2, stats[1].Total)
	assert.Equal(t, 1, stats[1].Pending)
}

func TestWeeklyStatistics(t *testing.T) {
	snap, _ := statsFixture()

	stats := WeeklyStatistics(snap, date("2025-06-02"), date("2025-06-08"))
	require.Len(t, stats, 1)

	assert.Equal(t, "Week 1: 2025-06-02 to 2025-06-08", stats[0].Week)
	assert.Equal(t, 4, stats[0].Present)
	assert.Equal(t, 6, stats[0].Total)

	// A second week starts where the first ended.
	stats = WeeklyStatistics(snap, date("2025-06-02"), date("2025-06-10"))
	require.Len(t, stats, 2)
	assert.Equal(t, "Week 2: 2025-06-09 to 2025-06-10", stats[1].Week)
}

func TestMonthlyStatistics(t *testing.T) {
	snap, cal := statsFixture()

	stats := MonthlyStatistics(snap, date("2025-06-02"), date("2025-06-08"), cal)
	require.Len(t, stats, 1)

	m := stats[0]
	assert.Equal(t, "June", m.Month)
	assert.Equal(t, 7, m.TotalDays)
	assert.Equal(t, 2, m.Weekends)
	assert.Equal(t, 1, m.Holidays)
	assert.Equal(t, 4, m.ExpectedDays)
	assert.Equal(t, 4, m.Present)
	assert.Equal(t, 2, m.Absent)
	assert.Equal(t, 6, m.Pending)
}

func TestMonthlyStatisticsSpansMonths(t *testing.T) {
	snap, cal := statsFixture()

	stats := MonthlyStatistics(snap, date("2025-05-28"), date("2025-06-03"), cal)
	require.Len(t, stats, 2)
	assert.Equal(t, "May", stats[0].Month)
	assert.Equal(t, 4, stats[0].TotalDays)
	assert.Equal(t, "June", stats[1].Month)
	assert.Equal(t, 3, stats[1].TotalDays)
}

func TestYearlyStatistics(t *testing.T) {
	snap, _ := statsFixture()

	stat := YearlyStatistics(snap, date("2025-06-02"), date("2025-06-08"))
	assert.Equal(t, 4, stat.Present)
	assert.Equal(t, 6, stat.Total)
	assert.Equal(t, 2, stat.Pending)
	assert.InDelta(t, 66.67, stat.Percentage, 0.001)

	empty := YearlyStatistics(&ClassroomSnapshot{StudentCount: 3}, date("2025-06-02"), date("2025-06-08"))
	assert.Equal(t, 0.0, empty.Percentage)
}
