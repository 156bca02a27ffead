package academic

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

func GetYearsAPI(c *fiber.Ctx) error {
	years, err := database.GetAcademicYears(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic years"})
	}
	return c.JSON(fiber.Map{"years": years})
}

func CreateYearAPI(c *fiber.Ctx) error {
	var year models.AcademicYear
	if err := c.BodyParser(&year); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&year); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if year.EndDate.Time.Before(year.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	if err := database.CreateAcademicYear(config.GetDB(), &year); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create academic year"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"AcademicYear", year.ID, year.Label,
		services.CreateChanges(map[string]interface{}{
			"label":      year.Label,
			"start_date": year.StartDate.Key(),
			"end_date":   year.EndDate.Key(),
		}))

	return c.Status(201).JSON(fiber.Map{"year": year})
}

func GetCurrentYearAPI(c *fiber.Ctx) error {
	year, err := database.GetCurrentAcademicYear(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch current year"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No current academic year set"})
	}
	return c.JSON(fiber.Map{"year": year})
}

func GetYearAPI(c *fiber.Ctx) error {
	year, err := database.GetAcademicYearByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic year"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}
	return c.JSON(fiber.Map{"year": year})
}

func UpdateYearAPI(c *fiber.Ctx) error {
	existing, err := database.GetAcademicYearByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic year"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	var year models.AcademicYear
	if err := c.BodyParser(&year); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	year.ID = existing.ID
	if err := validate.Struct(&year); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if year.EndDate.Time.Before(year.StartDate.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "End date must be after start date"})
	}

	if err := database.UpdateAcademicYear(config.GetDB(), &year); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update academic year"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{
			"label":      existing.Label,
			"start_date": existing.StartDate.Key(),
			"end_date":   existing.EndDate.Key(),
		},
		map[string]interface{}{
			"label":      year.Label,
			"start_date": year.StartDate.Key(),
			"end_date":   year.EndDate.Key(),
		})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"AcademicYear", year.ID, year.Label, changes)
	}

	return c.JSON(fiber.Map{"year": year})
}

func SetCurrentYearAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.SetCurrentAcademicYear(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to set current year"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"AcademicYear", id, "",
		models.ChangeSet{"is_current": models.FieldChange{Old: false, New: true}})

	return c.JSON(fiber.Map{"message": "Current academic year updated"})
}

func DeleteYearAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.DeleteAcademicYear(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete academic year"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"AcademicYear", id, "", services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Academic year deleted"})
}

// GetHolidaysAPI lists a year's holidays. Defaults to the current year when
// no year_id filter is given.
func GetHolidaysAPI(c *fiber.Ctx) error {
	yearID := c.Query("year_id")
	if yearID == "" {
		year, err := database.GetCurrentAcademicYear(config.GetDB())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch current year"})
		}
		if year == nil {
			return c.Status(404).JSON(fiber.Map{"error": "No current academic year set"})
		}
		yearID = year.ID
	}

	holidays, err := database.GetHolidaysByYear(config.GetDB(), yearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch holidays"})
	}
	return c.JSON(fiber.Map{"holidays": holidays})
}

func CreateHolidayAPI(c *fiber.Ctx) error {
	var holiday models.Holiday
	if err := c.BodyParser(&holiday); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(&holiday); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	year, err := database.GetAcademicYearByID(config.GetDB(), holiday.YearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic year"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}
	if !year.ContainsDate(holiday.Date.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "Holiday date is outside the academic year"})
	}

	if err := database.CreateHoliday(config.GetDB(), &holiday); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A holiday already exists on this date"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create holiday"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditCreate,
		"Holiday", holiday.ID, holiday.Name,
		services.CreateChanges(map[string]interface{}{
			"date": holiday.Date.Key(),
			"name": holiday.Name,
		}))

	return c.Status(201).JSON(fiber.Map{"holiday": holiday})
}

func GetHolidayAPI(c *fiber.Ctx) error {
	holiday, err := database.GetHolidayByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch holiday"})
	}
	if holiday == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Holiday not found"})
	}
	return c.JSON(fiber.Map{"holiday": holiday})
}

func UpdateHolidayAPI(c *fiber.Ctx) error {
	existing, err := database.GetHolidayByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch holiday"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Holiday not found"})
	}

	var holiday models.Holiday
	if err := c.BodyParser(&holiday); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	holiday.ID = existing.ID
	holiday.YearID = existing.YearID

	if err := database.UpdateHoliday(config.GetDB(), &holiday); err != nil {
		if isUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A holiday already exists on this date"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update holiday"})
	}

	changes := services.UpdateChanges(
		map[string]interface{}{"date": existing.Date.Key(), "name": existing.Name},
		map[string]interface{}{"date": holiday.Date.Key(), "name": holiday.Name})
	if len(changes) > 0 {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"Holiday", holiday.ID, holiday.Name, changes)
	}

	return c.JSON(fiber.Map{"holiday": holiday})
}

func DeleteHolidayAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.DeleteHoliday(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Holiday not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete holiday"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"Holiday", id, "", services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Holiday deleted"})
}

// GetSchoolWeekendsAPI reports the weekend configuration of every classroom
// in the current academic year.
func GetSchoolWeekendsAPI(c *fiber.Ctx) error {
	year, err := database.GetCurrentAcademicYear(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch current year"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "No current academic year set"})
	}

	classrooms, err := database.GetClassrooms(config.GetDB(), year.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classrooms"})
	}

	type classroomWeekend struct {
		ClassroomID   string             `json:"classroom_id"`
		ClassroomName string             `json:"classroom_name"`
		WeekendDays   models.WeekendDays `json:"weekend_days"`
	}
	weekends := make([]classroomWeekend, 0, len(classrooms))
	for _, room := range classrooms {
		weekends = append(weekends, classroomWeekend{
			ClassroomID:   room.ID,
			ClassroomName: room.Name,
			WeekendDays:   room.WeekendDays,
		})
	}

	return c.JSON(fiber.Map{
		"year":     year,
		"weekends": weekends,
	})
}
