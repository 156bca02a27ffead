package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// Fixture for Monday 2025-06-02: teacher t1 is absent and teaches 10-A in
// periods 1 and 3; t2 teaches 10-B in period 2; t3 and t4 are free.
func fixtureSnapshot() *MatcherSnapshot {
	return &MatcherSnapshot{
		Date: date("2025-06-02"),
		Absences: []models.Absence{
			{ID: "abs-1", TeacherID: "t1", Date: date("2025-06-02"), Status: models.AbsenceAbsent},
		},
		Timetable: []models.TimetableEntry{
			{ID: "tt-1", ClassroomID: "c1", Day: models.Monday, Period: 1, Subject: "Maths", TeacherID: "t1"},
			{ID: "tt-2", ClassroomID: "c1", Day: models.Monday, Period: 3, Subject: "Science", TeacherID: "t1"},
			{ID: "tt-3", ClassroomID: "c2", Day: models.Monday, Period: 2, Subject: "English", TeacherID: "t2"},
			{ID: "tt-4", ClassroomID: "c2", Day: models.Tuesday, Period: 1, Subject: "English", TeacherID: "t2"},
		},
		Teachers: []models.Teacher{
			{ID: "t1", FullName: "Asha Verma"},
			{ID: "t2", FullName: "Bilal Khan"},
			{ID: "t3", FullName: "Chitra Rao"},
			{ID: "t4", FullName: "Divya Nair"},
		},
		Classrooms: []models.Classroom{
			{ID: "c1", Name: "10-A"},
			{ID: "c2", Name: "10-B"},
		},
	}
}

func TestAffectedPeriods(t *testing.T) {
	snap := fixtureSnapshot()

	needs := AffectedPeriods(snap)
	require.Len(t, needs, 2)

	assert.Equal(t, 1, needs[0].Period)
	assert.Equal(t, "10-A", needs[0].ClassroomName)
	assert.Equal(t, "Maths", needs[0].Subject)
	assert.Equal(t, "Asha Verma", needs[0].AbsentTeacherName)
	assert.Equal(t, "abs-1", needs[0].AbsenceID)
	assert.Nil(t, needs[0].ExistingProxy)

	assert.Equal(t, 3, needs[1].Period)
	assert.Equal(t, "Science", needs[1].Subject)
}

func TestAffectedPeriodsIgnoresRetractedAbsence(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Absences[0].Status = models.AbsencePresent

	assert.Empty(t, AffectedPeriods(snap))
}

func TestAffectedPeriodsToleratesDuplicateEntries(t *testing.T) {
	snap := fixtureSnapshot()
	// A second row for the same (classroom, day, period); first match wins.
	snap.Timetable = append(snap.Timetable, models.TimetableEntry{
		ID: "tt-dup", ClassroomID: "c1", Day: models.Monday, Period: 1,
		Subject: "History", TeacherID: "t1",
	})

	needs := AffectedPeriods(snap)
	require.Len(t, needs, 2)
	assert.Equal(t, "Maths", needs[0].Subject)
}

func TestAffectedPeriodsAttachesActiveProxy(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Proxies = []models.Proxy{
		{ID: "p1", ClassroomID: "c1", Period: 1, Date: date("2025-06-02"),
			OriginalTeacherID: "t1", ProxyTeacherID: "t3", Status: models.ProxyAssigned},
		{ID: "p2", ClassroomID: "c1", Period: 3, Date: date("2025-06-02"),
			OriginalTeacherID: "t1", ProxyTeacherID: "t4", Status: models.ProxyCancelled},
	}

	needs := AffectedPeriods(snap)
	require.Len(t, needs, 2)
	require.NotNil(t, needs[0].ExistingProxy)
	assert.Equal(t, "p1", needs[0].ExistingProxy.ID)
	assert.Nil(t, needs[1].ExistingProxy, "cancelled proxy must not count as coverage")
}

func TestEligibleSubstitutesExclusions(t *testing.T) {
	snap := fixtureSnapshot()

	// Period 2: t1 is absent, t2 has their own class, t3 and t4 are free.
	avail := EligibleSubstitutes(snap, 2, "")

	byID := make(map[string]TeacherAvailability)
	for _, a := range avail {
		byID[a.TeacherID] = a
	}

	assert.False(t, byID["t1"].Available)
	assert.Equal(t, ReasonAbsent, byID["t1"].ReasonType)

	assert.False(t, byID["t2"].Available)
	assert.Equal(t, ReasonClass, byID["t2"].ReasonType)

	assert.True(t, byID["t3"].Available)
	assert.True(t, byID["t4"].Available)
}

func TestEligibleSubstitutesExcludesActiveProxyHolder(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Proxies = []models.Proxy{
		{ID: "p1", ClassroomID: "c1", Period: 1, Date: date("2025-06-02"),
			OriginalTeacherID: "t1", ProxyTeacherID: "t3", Status: models.ProxyAssigned},
	}

	avail := EligibleSubstitutes(snap, 1, "t1")
	byID := make(map[string]TeacherAvailability)
	for _, a := range avail {
		byID[a.TeacherID] = a
	}

	assert.False(t, byID["t3"].Available)
	assert.Equal(t, ReasonProxy, byID["t3"].ReasonType)

	// A proxy in period 1 does not block t3 from period 3 the same day.
	availP3 := EligibleSubstitutes(snap, 3, "t1")
	for _, a := range availP3 {
		if a.TeacherID == "t3" {
			assert.True(t, a.Available)
			assert.Equal(t, 1, a.ProxyCount)
		}
	}
}

func TestEligibleSubstitutesCancelledProxyRestoresAvailability(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Proxies = []models.Proxy{
		{ID: "p1", ClassroomID: "c1", Period: 1, Date: date("2025-06-02"),
			OriginalTeacherID: "t1", ProxyTeacherID: "t3", Status: models.ProxyCancelled},
	}

	avail := EligibleSubstitutes(snap, 1, "t1")
	for _, a := range avail {
		if a.TeacherID == "t3" {
			assert.True(t, a.Available)
			assert.Equal(t, 0, a.ProxyCount)
		}
	}
}

func TestEligibleSubstitutesRanking(t *testing.T) {
	snap := fixtureSnapshot()
	// t4 already carries a proxy in another period; t3 carries none.
	snap.Proxies = []models.Proxy{
		{ID: "p1", ClassroomID: "c2", Period: 4, Date: date("2025-06-02"),
			OriginalTeacherID: "t2", ProxyTeacherID: "t4", Status: models.ProxyAssigned},
	}

	avail := EligibleSubstitutes(snap, 2, "t1")
	require.NotEmpty(t, avail)

	// Available teachers first, lighter proxy load first.
	assert.Equal(t, "t3", avail[0].TeacherID)
	assert.Equal(t, "t4", avail[1].TeacherID)
	assert.False(t, avail[len(avail)-1].Available)
}

func TestEligibleSubstitutesUnknownRosterName(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Teachers = append(snap.Teachers, models.Teacher{ID: "t9"})

	avail := EligibleSubstitutes(snap, 2, "")
	found := false
	for _, a := range avail {
		if a.TeacherID == "t9" {
			found = true
		}
	}
	assert.True(t, found)

	// An absence referencing a teacher missing from the roster renders as
	// Unknown instead of failing.
	snap.Teachers = snap.Teachers[:0]
	needs := AffectedPeriods(snap)
	require.NotEmpty(t, needs)
	assert.Equal(t, "Unknown", needs[0].AbsentTeacherName)
}

func TestValidateAssignment(t *testing.T) {
	snap := fixtureSnapshot()
	absence := &snap.Absences[0]

	err := ValidateAssignment(snap, absence, "c1", 1, "t3", date("2025-06-02"))
	assert.NoError(t, err)

	// Self assignment.
	err = ValidateAssignment(snap, absence, "c1", 1, "t1", date("2025-06-02"))
	var selfErr *SelfAssignmentError
	require.True(t, errors.As(err, &selfErr))

	// Wrong date: only same-day assignment is permitted.
	err = ValidateAssignment(snap, absence, "c1", 1, "t3", date("2025-06-03"))
	var dateErr *InvalidDateError
	require.True(t, errors.As(err, &dateErr))
}

func TestValidateAssignmentRejectsSecondActiveProxy(t *testing.T) {
	snap := fixtureSnapshot()
	absence := &snap.Absences[0]

	require.NoError(t, ValidateAssignment(snap, absence, "c1", 1, "t3", date("2025-06-02")))

	snap.Proxies = append(snap.Proxies, models.Proxy{
		ID: "p1", ClassroomID: "c1", Period: 1, Date: date("2025-06-02"),
		OriginalTeacherID: "t1", ProxyTeacherID: "t3", Status: models.ProxyAssigned,
	})

	err := ValidateAssignment(snap, absence, "c1", 1, "t4", date("2025-06-02"))
	var dupErr *AlreadyAssignedError
	require.True(t, errors.As(err, &dupErr))
	assert.Equal(t, 1, dupErr.Period)

	// Cancelling the proxy frees the slot again.
	snap.Proxies[0].Status = models.ProxyCancelled
	assert.NoError(t, ValidateAssignment(snap, absence, "c1", 1, "t4", date("2025-06-02")))
}

func TestProxyStatusTransitions(t *testing.T) {
	assert.True(t, CanTransitionProxy(models.ProxyAssigned, models.ProxyCompleted))
	assert.True(t, CanTransitionProxy(models.ProxyAssigned, models.ProxyCancelled))

	assert.False(t, CanTransitionProxy(models.ProxyCompleted, models.ProxyCancelled))
	assert.False(t, CanTransitionProxy(models.ProxyCancelled, models.ProxyAssigned))
	assert.False(t, CanTransitionProxy(models.ProxyCompleted, models.ProxyAssigned))
	assert.False(t, CanTransitionProxy(models.ProxyAssigned, models.ProxyAssigned))
}
