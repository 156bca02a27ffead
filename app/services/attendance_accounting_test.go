package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func date(s string) models.DateOnly {
	d, err := models.ParseDateOnly(s)
	if err != nil {
		panic(err)
	}
	return d
}

func boolPtr(b bool) *bool { return &b }

// Fixture: classroom running 2025-06-01 (a Sunday) through 2025-06-10 with
// Saturday/Sunday weekends, one holiday on 06-05, the student present on
// 06-02..06-04 and absent on 06-09.
func fixtureCalendar() (*Calendar, map[string]bool) {
	cal := NewCalendar(
		[]models.Holiday{{Date: date("2025-06-05"), Name: "Test Holiday"}},
		models.WeekendDays{0, 6},
	)
	records := RecordsByDate([]models.Attendance{
		{Date: date("2025-06-02"), Present: true},
		{Date: date("2025-06-03"), Present: true},
		{Date: date("2025-06-04"), Present: true},
		{Date: date("2025-06-09"), Present: false},
	})
	return cal, records
}

func TestClassifyDayPrecedence(t *testing.T) {
	cal, records := fixtureCalendar()

	holiday := cal.ClassifyDay(date("2025-06-05"), records, nil)
	assert.Equal(t, DayHoliday, holiday.Status)
	assert.Equal(t, "Test Holiday", holiday.Label)

	weekend := cal.ClassifyDay(date("2025-06-01"), records, nil)
	assert.Equal(t, DayWeekend, weekend.Status)
	assert.Equal(t, "Sunday", weekend.Label)

	assert.Equal(t, DayPresent, cal.ClassifyDay(date("2025-06-02"), records, nil).Status)
	assert.Equal(t, DayAbsent, cal.ClassifyDay(date("2025-06-09"), records, nil).Status)
	assert.Equal(t, DayPending, cal.ClassifyDay(date("2025-06-06"), records, nil).Status)
}

func TestClassifyDayHolidayOverridesRecord(t *testing.T) {
	// A stray attendance record on a holiday must not surface.
	cal := NewCalendar(
		[]models.Holiday{{Date: date("2025-06-05"), Name: "Eid"}},
		models.WeekendDays{},
	)
	records := map[string]bool{"2025-06-05": true}

	got := cal.ClassifyDay(date("2025-06-05"), records, nil)
	assert.Equal(t, DayHoliday, got.Status)
}

func TestClassifyDayWeekendOverridesOverlay(t *testing.T) {
	cal := NewCalendar(nil, models.WeekendDays{0, 6})
	overlay := AttendanceOverlay{"2025-06-01": boolPtr(true)}

	got := cal.ClassifyDay(date("2025-06-01"), nil, overlay)
	assert.Equal(t, DayWeekend, got.Status)
}

func TestClassifyDayOverlayBeatsStoredRecord(t *testing.T) {
	cal := NewCalendar(nil, models.WeekendDays{})
	records := map[string]bool{"2025-06-02": true}

	// Overlay flips a stored present to absent without touching the record.
	overlay := AttendanceOverlay{"2025-06-02": boolPtr(false)}
	assert.Equal(t, DayAbsent, cal.ClassifyDay(date("2025-06-02"), records, overlay).Status)

	// A nil overlay mark resets the day to pending.
	overlay = AttendanceOverlay{"2025-06-02": nil}
	assert.Equal(t, DayPending, cal.ClassifyDay(date("2025-06-02"), records, overlay).Status)

	// The stored record is untouched.
	assert.Equal(t, DayPresent, cal.ClassifyDay(date("2025-06-02"), records, nil).Status)
}

func TestClassifyDayIdempotent(t *testing.T) {
	cal, records := fixtureCalendar()
	first := cal.ClassifyDay(date("2025-06-09"), records, nil)
	second := cal.ClassifyDay(date("2025-06-09"), records, nil)
	assert.Equal(t, first, second)
}

func TestAggregateFixture(t *testing.T) {
	cal, records := fixtureCalendar()

	got := cal.Aggregate(date("2025-06-01"), date("2025-06-10"), records, nil)

	// 06-01 Sun, 06-07 Sat, 06-08 Sun are weekends; 06-05 holiday;
	// 06-06 and 06-10 pending.
	assert.Equal(t, 3, got.Present)
	assert.Equal(t, 1, got.Absent)
	assert.Equal(t, 1, got.Holiday)
	assert.Equal(t, 3, got.Weekend)
	assert.Equal(t, 2, got.Pending)
	assert.Equal(t, 10, got.TotalDays)
	assert.Equal(t, 6, got.AllowedDays)
	assert.Equal(t, 50, got.Percentage)
}

func TestAggregateIdentities(t *testing.T) {
	cal, records := fixtureCalendar()
	got := cal.Aggregate(date("2025-06-01"), date("2025-06-10"), records, nil)

	assert.Equal(t, got.AllowedDays, got.Present+got.Absent+got.Pending)
	assert.Equal(t, got.TotalDays, got.AllowedDays+got.Holiday+got.Weekend)
}

func TestAggregatePartitionAdditivity(t *testing.T) {
	cal, records := fixtureCalendar()

	whole := cal.Aggregate(date("2025-06-01"), date("2025-06-10"), records, nil)
	first := cal.Aggregate(date("2025-06-01"), date("2025-06-05"), records, nil)
	second := cal.Aggregate(date("2025-06-06"), date("2025-06-10"), records, nil)

	assert.Equal(t, whole.Present, first.Present+second.Present)
	assert.Equal(t, whole.Absent, first.Absent+second.Absent)
	assert.Equal(t, whole.Holiday, first.Holiday+second.Holiday)
	assert.Equal(t, whole.Weekend, first.Weekend+second.Weekend)
	assert.Equal(t, whole.Pending, first.Pending+second.Pending)
	assert.Equal(t, whole.TotalDays, first.TotalDays+second.TotalDays)
}

func TestAggregateEmptyAllowedDays(t *testing.T) {
	// Every day of the range is a weekend: no allowed days, percentage 0.
	cal := NewCalendar(nil, models.WeekendDays{0, 6})
	got := cal.Aggregate(date("2025-06-07"), date("2025-06-08"), nil, nil)

	assert.Equal(t, 0, got.AllowedDays)
	assert.Equal(t, 0, got.Percentage)
	assert.Equal(t, 2, got.Weekend)
}

func TestAggregatePercentageBounds(t *testing.T) {
	cal := NewCalendar(nil, models.WeekendDays{})
	records := map[string]bool{
		"2025-06-02": true,
		"2025-06-03": true,
		"2025-06-04": true,
	}

	got := cal.Aggregate(date("2025-06-02"), date("2025-06-04"), records, nil)
	assert.Equal(t, 100, got.Percentage)

	got = cal.Aggregate(date("2025-06-02"), date("2025-06-05"), records, nil)
	assert.Equal(t, 75, got.Percentage)
	assert.GreaterOrEqual(t, got.Percentage, 0)
	assert.LessOrEqual(t, got.Percentage, 100)
}

func TestAggregateUncoveredDatesArePending(t *testing.T) {
	// Holiday and weekend data stop before the classroom span ends; the
	// uncovered tail must classify as pending, not error.
	cal, records := fixtureCalendar()
	got := cal.Aggregate(date("2025-07-01"), date("2025-07-04"), records, nil)

	assert.Equal(t, 4, got.Pending)
	assert.Equal(t, 4, got.TotalDays)
}

func TestMonthlyBreakdown(t *testing.T) {
	cal, records := fixtureCalendar()

	months := cal.MonthlyBreakdown(date("2025-05-25"), date("2025-06-10"), records, nil)
	require.Len(t, months, 2)

	assert.Equal(t, 2025, months[0].Year)
	assert.Equal(t, time.May, months[0].Month)
	assert.Equal(t, 7, months[0].TotalDays)

	assert.Equal(t, time.June, months[1].Month)
	assert.Equal(t, 10, months[1].TotalDays)
	assert.Equal(t, 3, months[1].Present)

	for _, m := range months {
		assert.Equal(t, m.TotalDays,
			m.Present+m.Absent+m.Holiday+m.Weekend+m.Pending,
			"month %s fails the total-days identity", m.Month)
	}
}

func TestClassifyRange(t *testing.T) {
	cal, records := fixtureCalendar()

	days := cal.ClassifyRange(date("2025-06-01"), date("2025-06-05"), records, nil)
	require.Len(t, days, 5)

	assert.Equal(t, DayWeekend, days[0].Status)
	assert.Equal(t, DayPresent, days[1].Status)
	assert.Equal(t, DayHoliday, days[4].Status)
	assert.Equal(t, "2025-06-03", days[2].Date.Key())
}

func TestOverlayChanges(t *testing.T) {
	overlay := AttendanceOverlay{
		"2025-06-02": boolPtr(true),
		"2025-06-03": boolPtr(false),
		"2025-06-04": nil,
	}

	changes := overlay.Changes()
	require.Len(t, changes, 2)
	assert.True(t, changes["2025-06-02"])
	assert.False(t, changes["2025-06-03"])
	_, hasReset := changes["2025-06-04"]
	assert.False(t, hasReset, "reset-to-pending dates must be omitted from the save payload")
}

func TestRecordsByDateFirstMatchWins(t *testing.T) {
	records := RecordsByDate([]models.Attendance{
		{Date: date("2025-06-02"), Present: true},
		{Date: date("2025-06-02"), Present: false},
	})
	assert.True(t, records["2025-06-02"])
}

func TestWeekendDaysParsing(t *testing.T) {
	assert.Equal(t, models.WeekendDays{0, 6}, models.ParseWeekendDays([]byte(`[0,6]`)))
	assert.Equal(t, models.WeekendDays{5}, models.ParseWeekendDays([]byte(`"[5]"`)))
	assert.Empty(t, models.ParseWeekendDays([]byte(`"not json"`)))
	assert.Empty(t, models.ParseWeekendDays([]byte(`{"bad": true}`)))
	assert.Empty(t, models.ParseWeekendDays(nil))
	// Out-of-range and duplicate codes are dropped.
	assert.Equal(t, models.WeekendDays{0}, models.ParseWeekendDays([]byte(`[0, 0, 9, -1]`)))
}
