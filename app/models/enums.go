package models

import (
	"strings"
	"time"
)

// DayOfWeek defines the days of the week for timetables.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DayOfWeekFor returns the lowercase day name for a date.
func DayOfWeekFor(t time.Time) DayOfWeek {
	return DayOfWeek(strings.ToLower(t.Weekday().String()))
}

// WeekdayIndex returns the weekday of t as an index with Sunday=0,
// matching the stored weekend-day codes.
func WeekdayIndex(t time.Time) int {
	return int(t.Weekday())
}

// AbsenceStatus defines the status values for a teacher absence record.
// "present" retracts a previously recorded absence.
type AbsenceStatus string

const (
	AbsenceAbsent  AbsenceStatus = "absent"
	AbsencePresent AbsenceStatus = "present"
)

// ProxyStatus defines the lifecycle of a proxy assignment.
// assigned -> completed or assigned -> cancelled; both are terminal.
type ProxyStatus string

const (
	ProxyAssigned  ProxyStatus = "assigned"
	ProxyCompleted ProxyStatus = "completed"
	ProxyCancelled ProxyStatus = "cancelled"
)

// AuditAction defines the recorded audit log actions.
type AuditAction string

const (
	AuditCreate AuditAction = "create"
	AuditUpdate AuditAction = "update"
	AuditDelete AuditAction = "delete"
)

// UserRole defines the application roles.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
)
