package classes

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/services"
)

var validate = validator.New()

func currentUserID(c *fiber.Ctx) *string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return &id
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code.Name() == "unique_violation"
	}
	return false
}

func GetClassroomsAPI(c *fiber.Ctx) error {
	classrooms, err := database.GetClassrooms(config.GetDB(), c.Query("year_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classrooms"})
	}
	return c.JSON(fiber.Map{"classrooms": classrooms})
}

func CreateClassroomAPI(c *fiber.Ctx) error {
	var classroom models.Classroom
	if err := c.BodyParser(&classroom); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&classroom); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	year, err := database.GetAcademicYearByID(config.GetDB(), classroom.AcademicYearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic year"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	if err := database.CreateClassroom(config.GetDB(), &classroom); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A classroom with this name already exists in the year"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create classroom"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"Classroom", classroom.ID, classroom.Name,
		services.CreateChanges(map[string]interface{}{
			"name":             classroom.Name,
			"academic_year_id": classroom.AcademicYearID,
		}))

	return c.Status(201).JSON(fiber.Map{"classroom": classroom})
}

func GetClassroomAPI(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid classroom ID"})
	}

	classroom, err := database.GetClassroomByID(config.GetDB(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	count, err := database.CountStudentsByClassroom(config.GetDB(), id)
	if err == nil {
		classroom.StudentCount = count
	}

	return c.JSON(fiber.Map{"classroom": classroom})
}

func UpdateClassroomAPI(c *fiber.Ctx) error {
	existing, err := database.GetClassroomByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	var classroom models.Classroom
	if err := c.BodyParser(&classroom); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	classroom.ID = existing.ID
	if classroom.AcademicYearID == "" {
		classroom.AcademicYearID = existing.AcademicYearID
	}
	if err := validate.Struct(&classroom); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateClassroom(config.GetDB(), &classroom); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A classroom with this name already exists in the year"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update classroom"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{"name": existing.Name},
		map[string]interface{}{"name": classroom.Name})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"Classroom", classroom.ID, classroom.Name, changes)
	}

	return c.JSON(fiber.Map{"classroom": classroom})
}

// UpdateWeekendDaysAPI replaces only the classroom's weekend configuration.
// Malformed weekend data degrades to the empty set rather than erroring.
func UpdateWeekendDaysAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		WeekendDays models.WeekendDays `json:"weekend_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if err := database.UpdateClassroomWeekendDays(config.GetDB(), id, req.WeekendDays); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update weekend days"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"Classroom", id, "",
		models.ChangeSet{"weekend_days": models.FieldChange{New: req.WeekendDays}})

	return c.JSON(fiber.Map{"weekend_days": req.WeekendDays})
}

func DeleteClassroomAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.DeleteClassroom(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete classroom"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"Classroom", id, "", services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Classroom deleted"})
}
