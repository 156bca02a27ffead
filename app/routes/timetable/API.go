package timetable

import (
	"database/sql"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/services"
)

var validate = validator.New()

// defaultPeriods is how many period slots a day shows when the timetable
// itself does not go higher.
const defaultPeriods = 8

var weekDays = []models.DayOfWeek{
	models.Monday, models.Tuesday, models.Wednesday,
	models.Thursday, models.Friday, models.Saturday, models.Sunday,
}

func currentUserID(c *fiber.Ctx) *string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return &id
	}
	return nil
}

func GetTimetableAPI(c *fiber.Ctx) error {
	entries, err := database.GetTimetableEntries(config.GetDB(), c.Query("classroom_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func CreateTimetableEntryAPI(c *fiber.Ctx) error {
	var entry models.TimetableEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	classroom, err := database.GetClassroomByID(config.GetDB(), entry.ClassroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	teacher, err := database.GetTeacherByID(config.GetDB(), entry.TeacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	if err := database.CreateTimetableEntry(config.GetDB(), &entry); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create timetable entry"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"TimetableEntry", entry.ID, entry.Subject,
		services.CreateChanges(map[string]interface{}{
			"classroom_id": entry.ClassroomID,
			"day":          string(entry.Day),
			"period":       entry.Period,
			"subject":      entry.Subject,
			"teacher_id":   entry.TeacherID,
		}))

	return c.Status(201).JSON(fiber.Map{"entry": entry})
}

func GetTimetableEntryAPI(c *fiber.Ctx) error {
	entry, err := database.GetTimetableEntryByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable entry"})
	}
	if entry == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Timetable entry not found"})
	}
	return c.JSON(fiber.Map{"entry": entry})
}

func UpdateTimetableEntryAPI(c *fiber.Ctx) error {
	existing, err := database.GetTimetableEntryByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable entry"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Timetable entry not found"})
	}

	var entry models.TimetableEntry
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	entry.ID = existing.ID
	if entry.ClassroomID == "" {
		entry.ClassroomID = existing.ClassroomID
	}
	if entry.TeacherID == "" {
		entry.TeacherID = existing.TeacherID
	}
	if err := validate.Struct(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateTimetableEntry(config.GetDB(), &entry); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update timetable entry"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{
			"day":        string(existing.Day),
			"period":     existing.Period,
			"subject":    existing.Subject,
			"teacher_id": existing.TeacherID,
		},
		map[string]interface{}{
			"day":        string(entry.Day),
			"period":     entry.Period,
			"subject":    entry.Subject,
			"teacher_id": entry.TeacherID,
		})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"TimetableEntry", entry.ID, entry.Subject, changes)
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func DeleteTimetableEntryAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.DeleteTimetableEntry(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Timetable entry not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete timetable entry"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"TimetableEntry", id, "", services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Timetable entry deleted"})
}

// GetClassroomTimetableAPI returns the classroom's week grouped by day with
// free periods marked. Duplicate rows for a slot are tolerated; the first
// one wins.
func GetClassroomTimetableAPI(c *fiber.Ctx) error {
	classroomID := c.Params("classroomId")

	classroom, err := database.GetClassroomByID(config.GetDB(), classroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	entries, err := database.GetTimetableEntries(config.GetDB(), classroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}

	maxPeriod := defaultPeriods
	for _, e := range entries {
		if e.Period > maxPeriod {
			maxPeriod = e.Period
		}
	}

	type periodSlot struct {
		Period int                    `json:"period"`
		Free   bool                   `json:"free"`
		Entry  *models.TimetableEntry `json:"entry,omitempty"`
	}

	week := make(map[models.DayOfWeek][]periodSlot, len(weekDays))
	for _, day := range weekDays {
		slots := make([]periodSlot, 0, maxPeriod)
		for period := 1; period <= maxPeriod; period++ {
			slot := periodSlot{Period: period, Free: true}
			for i := range entries {
				if entries[i].Day == day && entries[i].Period == period {
					slot.Free = false
					slot.Entry = &entries[i]
					break
				}
			}
			slots = append(slots, slot)
		}
		week[day] = slots
	}

	return c.JSON(fiber.Map{
		"classroom": classroom.Name,
		"week":      week,
	})
}

// GetTeacherScheduleAPI returns one teacher's weekly schedule grouped by day.
func GetTeacherScheduleAPI(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")

	teacher, err := database.GetTeacherByID(config.GetDB(), teacherID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	entries, err := database.GetTimetableEntries(config.GetDB(), "")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}

	schedule := make(map[models.DayOfWeek][]models.TimetableEntry)
	for _, e := range entries {
		if e.TeacherID == teacherID {
			schedule[e.Day] = append(schedule[e.Day], e)
		}
	}
	for day := range schedule {
		entries := schedule[day]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Period < entries[j].Period })
		schedule[day] = entries
	}

	return c.JSON(fiber.Map{
		"teacher":  teacher.FullName,
		"schedule": schedule,
	})
}
