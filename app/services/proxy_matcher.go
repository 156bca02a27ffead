package services

import (
	"fmt"
	"sort"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// MatcherSnapshot is the fetched state a day's proxy matching runs over: the
// target date, every absence record for that date, the full weekly
// timetable, the proxies already recorded for the date, and the teacher
// roster with classroom names for display.
type MatcherSnapshot struct {
	Date       models.DateOnly
	Absences   []models.Absence
	Timetable  []models.TimetableEntry
	Proxies    []models.Proxy
	Teachers   []models.Teacher
	Classrooms []models.Classroom
}

func (s *MatcherSnapshot) teacherName(id string) string {
	for _, t := range s.Teachers {
		if t.ID == id {
			return t.FullName
		}
	}
	return "Unknown"
}

func (s *MatcherSnapshot) classroomName(id string) string {
	for _, c := range s.Classrooms {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}

func (s *MatcherSnapshot) absentTeacherIDs() map[string]bool {
	out := make(map[string]bool)
	for _, a := range s.Absences {
		if a.Status == models.AbsenceAbsent {
			out[a.TeacherID] = true
		}
	}
	return out
}

// activeProxyFor returns the first non-cancelled proxy covering the given
// classroom and period on the snapshot date, if any.
func (s *MatcherSnapshot) activeProxyFor(classroomID string, period int) *models.Proxy {
	for i := range s.Proxies {
		p := &s.Proxies[i]
		if p.IsActive() && p.ClassroomID == classroomID && p.Period == period &&
			p.Date.Key() == s.Date.Key() {
			return p
		}
	}
	return nil
}

// PeriodNeed is one period left uncovered by an absent teacher.
type PeriodNeed struct {
	TimetableEntryID  string         `json:"timetable_entry_id"`
	ClassroomID       string         `json:"classroom_id"`
	ClassroomName     string         `json:"classroom_name"`
	Period            int            `json:"period"`
	Subject           string         `json:"subject"`
	AbsenceID         string         `json:"absence_id"`
	AbsentTeacherID   string         `json:"absent_teacher_id"`
	AbsentTeacherName string         `json:"absent_teacher_name"`
	ExistingProxy     *models.Proxy  `json:"existing_proxy,omitempty"`
}

// AffectedPeriods enumerates every period needing coverage on the snapshot
// date: for each teacher marked absent, their timetable entries on that
// weekday. Duplicate timetable rows for the same (classroom, period) are
// tolerated; the first row wins. A non-cancelled proxy already matching the
// slot is attached as ExistingProxy.
func AffectedPeriods(snap *MatcherSnapshot) []PeriodNeed {
	day := models.DayOfWeekFor(snap.Date.Time)

	var needs []PeriodNeed
	seen := make(map[string]bool)

	for _, absence := range snap.Absences {
		if absence.Status != models.AbsenceAbsent {
			continue
		}
		for _, entry := range snap.Timetable {
			if entry.TeacherID != absence.TeacherID || entry.Day != day {
				continue
			}
			slot := fmt.Sprintf("%s/%d", entry.ClassroomID, entry.Period)
			if seen[slot] {
				continue
			}
			seen[slot] = true

			need := PeriodNeed{
				TimetableEntryID:  entry.ID,
				ClassroomID:       entry.ClassroomID,
				ClassroomName:     snap.classroomName(entry.ClassroomID),
				Period:            entry.Period,
				Subject:           entry.Subject,
				AbsenceID:         absence.ID,
				AbsentTeacherID:   absence.TeacherID,
				AbsentTeacherName: snap.teacherName(absence.TeacherID),
			}
			if p := snap.activeProxyFor(entry.ClassroomID, entry.Period); p != nil &&
				p.OriginalTeacherID == absence.TeacherID {
				need.ExistingProxy = p
			}
			needs = append(needs, need)
		}
	}

	sort.SliceStable(needs, func(i, j int) bool {
		if needs[i].Period != needs[j].Period {
			return needs[i].Period < needs[j].Period
		}
		return needs[i].ClassroomName < needs[j].ClassroomName
	})
	return needs
}

// ReasonType categorizes why a teacher cannot cover a period.
type ReasonType string

const (
	ReasonAbsent ReasonType = "absent"
	ReasonClass  ReasonType = "class"
	ReasonProxy  ReasonType = "proxy"
)

// TeacherAvailability is one roster entry's fitness to cover a period.
type TeacherAvailability struct {
	TeacherID  string     `json:"teacher_id"`
	Name       string     `json:"name"`
	Available  bool       `json:"available"`
	Reason     string     `json:"reason,omitempty"`
	ReasonType ReasonType `json:"reason_type,omitempty"`
	ProxyCount int        `json:"proxy_count"`
}

// EligibleSubstitutes evaluates the whole roster for one period on the
// snapshot date. Excluded with a reason: teachers absent that date, teachers
// with their own scheduled class at that period, and teachers already
// holding a non-cancelled proxy at that period. A teacher may take proxies
// in several different periods of the same day. Available teachers come
// first, ordered by how many proxies they already carry that date so load
// spreads across the roster; the ordering is advisory for the assigning
// administrator, not a constraint.
func EligibleSubstitutes(snap *MatcherSnapshot, period int, excludeTeacherID string) []TeacherAvailability {
	day := models.DayOfWeekFor(snap.Date.Time)
	absent := snap.absentTeacherIDs()

	scheduled := make(map[string]bool)
	for _, entry := range snap.Timetable {
		if entry.Day == day && entry.Period == period {
			scheduled[entry.TeacherID] = true
		}
	}

	proxied := make(map[string]bool)
	proxyCount := make(map[string]int)
	for _, p := range snap.Proxies {
		if !p.IsActive() || p.Date.Key() != snap.Date.Key() {
			continue
		}
		proxyCount[p.ProxyTeacherID]++
		if p.Period == period {
			proxied[p.ProxyTeacherID] = true
		}
	}

	var out []TeacherAvailability
	for _, t := range snap.Teachers {
		if t.ID == excludeTeacherID {
			continue
		}

		entry := TeacherAvailability{
			TeacherID:  t.ID,
			Name:       t.FullName,
			Available:  true,
			ProxyCount: proxyCount[t.ID],
		}

		switch {
		case absent[t.ID]:
			entry.Available = false
			entry.Reason = "Teacher is absent on this date"
			entry.ReasonType = ReasonAbsent
		case scheduled[t.ID]:
			entry.Available = false
			entry.Reason = "Teacher has a scheduled class at this period"
			entry.ReasonType = ReasonClass
		case proxied[t.ID]:
			entry.Available = false
			entry.Reason = "Teacher already has a proxy assigned at this period"
			entry.ReasonType = ReasonProxy
		}

		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Available != out[j].Available {
			return out[i].Available
		}
		if out[i].Available && out[i].ProxyCount != out[j].ProxyCount {
			return out[i].ProxyCount < out[j].ProxyCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AlreadyAssignedError reports an attempt to assign a second active proxy to
// a period that already has one.
type AlreadyAssignedError struct {
	ClassroomID string
	Period      int
	Date        models.DateOnly
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("period %d in classroom %s already has an active proxy on %s",
		e.Period, e.ClassroomID, e.Date.Key())
}

// SelfAssignmentError reports an attempt to assign the absent teacher as
// their own substitute.
type SelfAssignmentError struct {
	TeacherID string
}

func (e *SelfAssignmentError) Error() string {
	return fmt.Sprintf("teacher %s cannot substitute for their own absence", e.TeacherID)
}

// InvalidDateError reports a proxy assignment targeting a date other than
// the matching date. Only same-day assignment is permitted.
type InvalidDateError struct {
	Got  models.DateOnly
	Want models.DateOnly
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("proxy assignment for %s rejected: only assignments for %s are allowed",
		e.Got.Key(), e.Want.Key())
}

// ValidateAssignment checks a proposed assignment against the snapshot
// before anything is written.
func ValidateAssignment(snap *MatcherSnapshot, absence *models.Absence, classroomID string, period int, proxyTeacherID string, date models.DateOnly) error {
	if date.Key() != snap.Date.Key() {
		return &InvalidDateError{Got: date, Want: snap.Date}
	}
	if proxyTeacherID == absence.TeacherID {
		return &SelfAssignmentError{TeacherID: proxyTeacherID}
	}
	if p := snap.activeProxyFor(classroomID, period); p != nil {
		return &AlreadyAssignedError{ClassroomID: classroomID, Period: period, Date: date}
	}
	return nil
}

// CanTransitionProxy reports whether a proxy status change is legal:
// assigned -> completed and assigned -> cancelled only.
func CanTransitionProxy(from, to models.ProxyStatus) bool {
	if from != models.ProxyAssigned {
		return false
	}
	return to == models.ProxyCompleted || to == models.ProxyCancelled
}
