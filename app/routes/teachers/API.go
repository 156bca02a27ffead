package teachers

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

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

func GetTeachersAPI(c *fiber.Ctx) error {
	teachers, err := database.GetTeachers(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}
	return c.JSON(fiber.Map{"teachers": teachers})
}

func CreateTeacherAPI(c *fiber.Ctx) error {
	var teacher models.Teacher
	if err := c.BodyParser(&teacher); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&teacher); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.CreateTeacher(config.GetDB(), &teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"Teacher", teacher.ID, teacher.FullName,
		services.CreateChanges(map[string]interface{}{
			"full_name": teacher.FullName,
			"email":     teacher.Email,
		}))

	return c.Status(201).JSON(fiber.Map{"teacher": teacher})
}

func GetTeacherAPI(c *fiber.Ctx) error {
	teacher, err := database.GetTeacherByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if teacher == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(fiber.Map{"teacher": teacher})
}

func UpdateTeacherAPI(c *fiber.Ctx) error {
	existing, err := database.GetTeacherByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var teacher models.Teacher
	if err := c.BodyParser(&teacher); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	teacher.ID = existing.ID
	if err := validate.Struct(&teacher); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.UpdateTeacher(config.GetDB(), &teacher); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{"full_name": existing.FullName, "email": existing.Email},
		map[string]interface{}{"full_name": teacher.FullName, "email": teacher.Email})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"Teacher", teacher.ID, teacher.FullName, changes)
	}

	return c.JSON(fiber.Map{"teacher": teacher})
}

func DeleteTeacherAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	existing, err := database.GetTeacherByID(config.GetDB(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch teacher"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
	}

	if err := database.DeleteTeacher(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete teacher"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"Teacher", id, existing.FullName, services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Teacher deleted"})
}
