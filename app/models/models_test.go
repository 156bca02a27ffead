package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnlyRoundTrip(t *testing.T) {
	d, err := ParseDateOnly("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-02", d.Key())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-02"`, string(b))

	var parsed DateOnly
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, d.Key(), parsed.Key())
}

func TestDateOnlyNullAndZero(t *testing.T) {
	var d DateOnly
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	b, err := json.Marshal(DateOnly{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDateOnlyScanNormalizesTime(t *testing.T) {
	var d DateOnly
	require.NoError(t, d.Scan(time.Date(2025, 6, 2, 15, 30, 45, 0, time.Local)))
	assert.Equal(t, "2025-06-02", d.Key())
	assert.Equal(t, 0, d.Hour())
}

func TestDayOfWeekFor(t *testing.T) {
	// 2025-06-02 is a Monday, 2025-06-01 a Sunday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, Monday, DayOfWeekFor(monday))
	assert.Equal(t, Sunday, DayOfWeekFor(sunday))
	assert.Equal(t, 1, WeekdayIndex(monday))
	assert.Equal(t, 0, WeekdayIndex(sunday))
}

func TestClassroomDateBounds(t *testing.T) {
	yearStart, _ := ParseDateOnly("2025-04-01")
	yearEnd, _ := ParseDateOnly("2026-03-31")
	year := &AcademicYear{StartDate: yearStart, EndDate: yearEnd}

	roomStart, _ := ParseDateOnly("2025-06-01")

	// Classroom bounds win; the year fills gaps.
	room := &Classroom{StartDate: &roomStart}
	start, end := room.DateBounds(year)
	assert.Equal(t, "2025-06-01", start.Key())
	assert.Equal(t, "2026-03-31", end.Key())

	// No classroom bounds at all: year bounds throughout.
	bare := &Classroom{}
	start, end = bare.DateBounds(year)
	assert.Equal(t, "2025-04-01", start.Key())
	assert.Equal(t, "2026-03-31", end.Key())
}

func TestAcademicYearContainsDate(t *testing.T) {
	start, _ := ParseDateOnly("2025-04-01")
	end, _ := ParseDateOnly("2026-03-31")
	year := &AcademicYear{StartDate: start, EndDate: end}

	assert.True(t, year.ContainsDate(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, year.ContainsDate(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, year.ContainsDate(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekendDaysJSON(t *testing.T) {
	var w WeekendDays
	require.NoError(t, json.Unmarshal([]byte(`"[0,6]"`), &w))
	assert.Equal(t, WeekendDays{0, 6}, w)

	b, err := json.Marshal(WeekendDays(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestChangeSetScan(t *testing.T) {
	var cs ChangeSet
	require.NoError(t, cs.Scan([]byte(`{"name":{"old":"A","new":"B"}}`)))
	assert.Equal(t, "A", cs["name"].Old)
	assert.Equal(t, "B", cs["name"].New)

	require.NoError(t, cs.Scan(nil))
	assert.Empty(t, cs)
}
