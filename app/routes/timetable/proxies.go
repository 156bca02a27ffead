package timetable

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/services"
)

// buildMatcherSnapshot fetches everything the matching core needs for one
// date.
func buildMatcherSnapshot(date models.DateOnly) (*services.MatcherSnapshot, error) {
	db := config.GetDB()

	absences, err := database.GetAbsencesByDate(db, date)
	if err != nil {
		return nil, err
	}
	entries, err := database.GetAllTimetableEntries(db)
	if err != nil {
		return nil, err
	}
	proxies, err := database.GetProxiesByDate(db, date)
	if err != nil {
		return nil, err
	}
	teachers, err := database.GetTeachers(db)
	if err != nil {
		return nil, err
	}
	classrooms, err := database.GetClassrooms(db, "")
	if err != nil {
		return nil, err
	}

	return &services.MatcherSnapshot{
		Date:       date,
		Absences:   absences,
		Timetable:  entries,
		Proxies:    proxies,
		Teachers:   teachers,
		Classrooms: classrooms,
	}, nil
}

// GetAvailabilityAPI evaluates the whole roster for one period on a date.
func GetAvailabilityAPI(c *fiber.Ctx) error {
	date, err := models.ParseDateOnly(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}

	period, err := strconv.Atoi(c.Query("period"))
	if err != nil || period <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "period must be a positive integer"})
	}

	snap, err := buildMatcherSnapshot(date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load timetable data"})
	}

	availability := services.EligibleSubstitutes(snap, period, c.Query("exclude_teacher_id"))

	return c.JSON(fiber.Map{
		"date":     date,
		"period":   period,
		"teachers": availability,
	})
}

// AssignProxyAPI assigns a substitute to one affected period. Duplicate
// active proxies return 409; self-assignment and off-date assignment return
// 400.
func AssignProxyAPI(c *fiber.Ctx) error {
	type AssignRequest struct {
		AbsenceID        string          `json:"absence_id"`
		TimetableEntryID string          `json:"timetable_entry_id"`
		ProxyTeacherID   string          `json:"proxy_teacher_id"`
		Date             models.DateOnly `json:"date"`
		Reason           string          `json:"reason"`
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.AbsenceID == "" || req.TimetableEntryID == "" || req.ProxyTeacherID == "" || req.Date.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "absence_id, timetable_entry_id, proxy_teacher_id and date are required"})
	}

	absence, err := database.GetAbsenceByID(config.GetDB(), req.AbsenceID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch absence"})
	}
	if absence == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Absence not found"})
	}

	entry, err := database.GetTimetableEntryByID(config.GetDB(), req.TimetableEntryID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable entry"})
	}
	if entry == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Timetable entry not found"})
	}

	substitute, err := database.GetTeacherByID(config.GetDB(), req.ProxyTeacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if substitute == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	snap, err := buildMatcherSnapshot(absence.Date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load timetable data"})
	}

	if err := services.ValidateAssignment(snap, absence, entry.ClassroomID, entry.Period, req.ProxyTeacherID, req.Date); err != nil {
		var dupErr *services.AlreadyAssignedError
		if errors.As(err, &dupErr) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	proxy := models.Proxy{
		AbsenceID:         absence.ID,
		ClassroomID:       entry.ClassroomID,
		Day:               entry.Day,
		Period:            entry.Period,
		OriginalTeacherID: absence.TeacherID,
		ProxyTeacherID:    req.ProxyTeacherID,
		Subject:           entry.Subject,
		Date:              req.Date,
		Status:            models.ProxyAssigned,
		Reason:            req.Reason,
		AssignedBy:        currentUserID(c),
	}
	if err := database.CreateProxy(config.GetDB(), &proxy); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create proxy"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"Proxy", proxy.ID,
		fmt.Sprintf("%s period %d on %s", entry.Subject, entry.Period, req.Date.Key()),
		services.CreateChanges(map[string]interface{}{
			"classroom_id":     entry.ClassroomID,
			"period":           entry.Period,
			"proxy_teacher_id": req.ProxyTeacherID,
			"date":             req.Date.Key(),
		}))

	return c.Status(201).JSON(fiber.Map{"proxy": proxy})
}

func GetProxiesAPI(c *fiber.Ctx) error {
	date, err := models.ParseDateOnly(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}

	proxies, err := database.GetProxiesByDate(config.GetDB(), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proxies"})
	}
	return c.JSON(fiber.Map{"proxies": proxies})
}

func GetProxyAPI(c *fiber.Ctx) error {
	proxy, err := database.GetProxyByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proxy"})
	}
	if proxy == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Proxy not found"})
	}
	return c.JSON(fiber.Map{"proxy": proxy})
}

func CompleteProxyAPI(c *fiber.Ctx) error {
	return transitionProxy(c, models.ProxyCompleted)
}

func CancelProxyAPI(c *fiber.Ctx) error {
	return transitionProxy(c, models.ProxyCancelled)
}

func transitionProxy(c *fiber.Ctx, to models.ProxyStatus) error {
	proxy, err := database.GetProxyByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proxy"})
	}
	if proxy == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Proxy not found"})
	}

	if !services.CanTransitionProxy(proxy.Status, to) {
		return c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot move proxy from %s to %s", proxy.Status, to),
		})
	}

	if err := database.UpdateProxyStatus(config.GetDB(), proxy.ID, to); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update proxy"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"Proxy", proxy.ID, proxy.Subject,
		models.ChangeSet{"status": models.FieldChange{Old: string(proxy.Status), New: string(to)}})

	return c.JSON(fiber.Map{"message": "Proxy " + string(to)})
}

// GetProxyScheduleAPI lists the proxies a teacher is covering, optionally
// narrowed to one date.
func GetProxyScheduleAPI(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	teacher, err := database.GetTeacherByID(config.GetDB(), teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	proxies, err := database.GetProxiesByTeacher(config.GetDB(), teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proxies"})
	}

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := models.ParseDateOnly(dateStr)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
		}
		filtered := make([]models.Proxy, 0, len(proxies))
		for _, p := range proxies {
			if p.Date.Key() == date.Key() {
				filtered = append(filtered, p)
			}
		}
		proxies = filtered
	}

	return c.JSON(fiber.Map{
		"teacher": teacher.FullName,
		"proxies": proxies,
	})
}
