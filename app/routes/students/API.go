package students

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
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

// GetStudentsAPI lists students, scoped to a classroom when classroom_id is
// given and school-wide otherwise.
func GetStudentsAPI(c *fiber.Ctx) error {
	students, err := database.GetStudentsByClassroom(config.GetDB(), c.Query("classroom_id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	return c.JSON(fiber.Map{"students": students})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	classroom, err := database.GetClassroomByID(config.GetDB(), student.ClassroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "Enrollment number already taken in this classroom"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create student"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"Student", student.ID, student.FullName,
		services.CreateChanges(map[string]interface{}{
			"full_name":         student.FullName,
			"enrollment_number": student.EnrollmentNumber,
			"classroom_id":      student.ClassroomID,
		}))

	return c.Status(201).JSON(fiber.Map{"student": student})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(fiber.Map{"student": student})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	existing, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	student.ID = existing.ID
	if student.ClassroomID == "" {
		student.ClassroomID = existing.ClassroomID
	}
	if err := validate.Struct(&student); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateStudent(config.GetDB(), &student); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "Enrollment number already taken in this classroom"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{
			"full_name":         existing.FullName,
			"enrollment_number": existing.EnrollmentNumber,
			"classroom_id":      existing.ClassroomID,
		},
		map[string]interface{}{
			"full_name":         student.FullName,
			"enrollment_number": student.EnrollmentNumber,
			"classroom_id":      student.ClassroomID,
		})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"Student", student.ID, student.FullName, changes)
	}

	return c.JSON(fiber.Map{"student": student})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := database.GetStudentByID(config.GetDB(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	if err := database.DeleteStudent(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"Student", id, existing.FullName, services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Student deleted"})
}
