package timetable

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/services"
)

func GetAbsencesAPI(c *fiber.Ctx) error {
	date, err := models.ParseDateOnly(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}

	absences, err := database.GetAbsencesByDate(config.GetDB(), date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch absences"})
	}
	return c.JSON(fiber.Map{"absences": absences})
}

// BulkMarkAbsentAPI marks a set of teachers absent for one date. Re-marking
// an already absent teacher updates the existing row, so the call is
// idempotent.
func BulkMarkAbsentAPI(c *fiber.Ctx) error {
	type BulkRequest struct {
		Date       models.DateOnly `json:"date"`
		TeacherIDs []string        `json:"teacher_ids"`
		Reason     string          `json:"reason"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Date.IsZero() || len(req.TeacherIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "date and teacher_ids are required"})
	}

	marked := make([]models.Absence, 0, len(req.TeacherIDs))
	for _, teacherID := range req.TeacherIDs {
		teacher, err := database.GetTeacherByID(config.GetDB(), teacherID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
		}
		if teacher == nil {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher " + teacherID + " not found"})
		}

		absence := models.Absence{
			TeacherID: teacherID,
			Date:      req.Date,
			Status:    models.AbsenceAbsent,
			Reason:    req.Reason,
		}
		if err := database.UpsertAbsence(config.GetDB(), &absence); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to mark absence"})
		}
		absence.TeacherName = teacher.FullName
		marked = append(marked, absence)
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"Absence", req.Date.Key(), "",
		models.ChangeSet{"marked_absent": models.FieldChange{New: len(marked)}})

	return c.JSON(fiber.Map{"absences": marked})
}

// BulkMarkPresentAPI retracts absences by deleting the rows. Teachers with
// no absence row for the date are skipped silently.
func BulkMarkPresentAPI(c *fiber.Ctx) error {
	type BulkRequest struct {
		Date       models.DateOnly `json:"date"`
		TeacherIDs []string        `json:"teacher_ids"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Date.IsZero() || len(req.TeacherIDs) == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "date and teacher_ids are required"})
	}

	for _, teacherID := range req.TeacherIDs {
		if err := database.DeleteAbsenceByTeacherAndDate(config.GetDB(), teacherID, req.Date); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to mark present"})
		}
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"Absence", req.Date.Key(), "",
		models.ChangeSet{"marked_present": models.FieldChange{New: len(req.TeacherIDs)}})

	return c.JSON(fiber.Map{"message": "Absences retracted"})
}

// GetAbsenceDetailsAPI reports one absent teacher's affected periods for a
// date, with any proxies already covering them.
func GetAbsenceDetailsAPI(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	date, err := models.ParseDateOnly(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}

	absence, err := database.GetAbsenceByTeacherAndDate(config.GetDB(), teacherID, date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch absence"})
	}
	if absence == nil || absence.Status != models.AbsenceAbsent {
		return c.Status(404).JSON(fiber.Map{"error": "No absence recorded for this teacher and date"})
	}

	snap, err := buildMatcherSnapshot(date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load timetable data"})
	}

	needs := make([]services.PeriodNeed, 0)
	for _, need := range services.AffectedPeriods(snap) {
		if need.AbsentTeacherID == teacherID {
			needs = append(needs, need)
		}
	}

	proxies, err := database.GetProxiesByAbsence(config.GetDB(), absence.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch proxies"})
	}

	return c.JSON(fiber.Map{
		"absence":          absence,
		"affected_periods": needs,
		"proxies":          proxies,
	})
}
