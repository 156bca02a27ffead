package attendance

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/services"
)

func currentUserID(c *fiber.Ctx) *string {
	if id, ok := c.Locals("user_id").(string); ok && id != "" {
		return &id
	}
	return nil
}

// classroomCalendar loads the classroom, its academic year and the calendar
// the pure accounting core runs over.
func classroomCalendar(classroomID string) (*models.Classroom, *models.AcademicYear, *services.Calendar, error) {
	classroom, err := database.GetClassroomByID(config.GetDB(), classroomID)
	if err != nil || classroom == nil {
		return nil, nil, nil, err
	}

	year, err := database.GetAcademicYearByID(config.GetDB(), classroom.AcademicYearID)
	if err != nil {
		return nil, nil, nil, err
	}

	holidays, err := database.GetHolidaysByYear(config.GetDB(), classroom.AcademicYearID)
	if err != nil {
		return nil, nil, nil, err
	}

	return classroom, year, services.NewCalendar(holidays, classroom.WeekendDays), nil
}

func GetStudentAttendanceAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	student, err := database.GetStudentByID(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	yearID := c.Query("year_id")
	if yearID == "" {
		classroom, err := database.GetClassroomByID(config.GetDB(), student.ClassroomID)
		if err != nil || classroom == nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
		}
		yearID = classroom.AcademicYearID
	}

	records, err := database.GetAttendanceByStudent(config.GetDB(), studentID, yearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{"records": records})
}

// GetStudentReportAPI computes the student's full-range summary and per-month
// breakdown through the accounting core.
func GetStudentReportAPI(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	student, err := database.GetStudentByID(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	if student == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
	}

	classroom, year, cal, err := classroomCalendar(student.ClassroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load classroom calendar"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	start, end := classroom.DateBounds(year)
	if start.IsZero() || end.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "Classroom has no date bounds configured"})
	}

	rows, err := database.GetAttendanceByStudent(config.GetDB(), studentID, classroom.AcademicYearID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	records := services.RecordsByDate(rows)
	summary := cal.Aggregate(start, end, records, nil)
	months := cal.MonthlyBreakdown(start, end, records, nil)

	resp := fiber.Map{
		"student":    student,
		"classroom":  classroom.Name,
		"start_date": start,
		"end_date":   end,
		"summary":    summary,
		"months":     months,
	}

	// ?month=YYYY-MM adds a per-day calendar for that month.
	if month := c.Query("month"); month != "" {
		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid month format, expected YYYY-MM"})
		}
		resp["days"] = cal.ClassifyRange(
			models.NewDateOnly(monthStart),
			models.NewDateOnly(monthStart.AddDate(0, 1, -1)),
			records, nil,
		)
	}

	return c.JSON(resp)
}

// GetClassroomAttendanceAPI lists a classroom's records for one date or one
// month (?date=YYYY-MM-DD or ?month=YYYY-MM).
func GetClassroomAttendanceAPI(c *fiber.Ctx) error {
	classroomID := c.Params("classroomId")

	classroom, err := database.GetClassroomByID(config.GetDB(), classroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	if month := c.Query("month"); month != "" {
		monthStart, err := time.Parse("2006-01", month)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid month format, expected YYYY-MM"})
		}
		start := models.NewDateOnly(monthStart)
		end := models.NewDateOnly(monthStart.AddDate(0, 1, -1))

		records, err := database.GetAttendanceByClassroomRange(config.GetDB(), classroomID, start, end)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
		}
		return c.JSON(fiber.Map{"records": records})
	}

	date, err := models.ParseDateOnly(c.Query("date"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid date format, expected YYYY-MM-DD"})
	}

	records, err := database.GetAttendanceByClassroomAndDate(config.GetDB(), classroomID, date)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	return c.JSON(fiber.Map{"records": records})
}

// BulkSaveAttendanceAPI saves one classroom's marks for a single date.
// Students omitted from the payload get any stored record for that date
// deleted, reverting their day to pending.
func BulkSaveAttendanceAPI(c *fiber.Ctx) error {
	type BulkRequest struct {
		ClassroomID string          `json:"classroom_id"`
		Date        models.DateOnly `json:"date"`
		Records     map[string]bool `json:"records"`
	}

	var req BulkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.ClassroomID == "" || req.Date.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "classroom_id and date are required"})
	}

	classroom, year, cal, err := classroomCalendar(req.ClassroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load classroom calendar"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}
	if year == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Academic year not found"})
	}

	today := models.NewDateOnly(time.Now())
	if req.Date.Time.After(today.Time) {
		return c.Status(400).JSON(fiber.Map{"error": "Cannot mark attendance for a future date"})
	}

	switch cal.ClassifyDay(req.Date, nil, nil).Status {
	case services.DayHoliday:
		return c.Status(400).JSON(fiber.Map{"error": "Cannot mark attendance on a holiday"})
	case services.DayWeekend:
		return c.Status(400).JSON(fiber.Map{"error": "Cannot mark attendance on a weekend"})
	}

	roster, err := database.GetStudentsByClassroom(config.GetDB(), req.ClassroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}
	enrolled := make(map[string]bool, len(roster))
	for _, s := range roster {
		enrolled[s.ID] = true
	}
	for studentID := range req.Records {
		if !enrolled[studentID] {
			return c.Status(404).JSON(fiber.Map{"error": "Student " + studentID + " is not in this classroom"})
		}
	}

	if err := database.SaveClassroomAttendance(
		config.GetDB(), req.ClassroomID, classroom.AcademicYearID, req.Date, req.Records,
	); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save attendance"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
		"Attendance", req.ClassroomID,
		fmt.Sprintf("%s %s", classroom.Name, req.Date.Key()),
		models.ChangeSet{
			"date":   models.FieldChange{New: req.Date.Key()},
			"marked": models.FieldChange{New: len(req.Records)},
		})

	return c.JSON(fiber.Map{
		"message": "Attendance saved",
		"marked":  len(req.Records),
	})
}

func UpdateAttendanceAPI(c *fiber.Ctx) error {
	type UpdateRequest struct {
		Present bool `json:"present"`
	}

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	id := c.Params("id")
	existing, err := database.GetAttendanceByID(config.GetDB(), id)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	if existing == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Attendance record not found"})
	}

	if err := database.UpdateAttendancePresent(config.GetDB(), id, req.Present); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update attendance"})
	}

	if existing.Present != req.Present {
		database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditUpdate,
			"Attendance", id, existing.Date.Key(),
			models.ChangeSet{"present": models.FieldChange{Old: existing.Present, New: req.Present}})
	}

	return c.JSON(fiber.Map{"message": "Attendance updated"})
}

func DeleteAttendanceAPI(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := database.DeleteAttendanceByID(config.GetDB(), id); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Attendance record not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete attendance"})
	}

	database.RecordAudit(config.GetDB(), currentUserID(c), models.AuditDelete,
		"Attendance", id, "", services.DeleteChanges())

	return c.JSON(fiber.Map{"message": "Attendance record deleted"})
}

// GetStatisticsAPI reports classroom attendance statistics for one of the
// daily, weekly, monthly or yearly views.
func GetStatisticsAPI(c *fiber.Ctx) error {
	classroomID := c.Query("classroom_id")
	if classroomID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "classroom_id is required"})
	}

	classroom, year, cal, err := classroomCalendar(classroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load classroom calendar"})
	}
	if classroom == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Classroom not found"})
	}

	start, end := classroom.DateBounds(year)
	if s := c.Query("start_date"); s != "" {
		if start, err = models.ParseDateOnly(s); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid start_date format"})
		}
	}
	if e := c.Query("end_date"); e != "" {
		if end, err = models.ParseDateOnly(e); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid end_date format"})
		}
	}
	if start.IsZero() || end.IsZero() {
		return c.Status(400).JSON(fiber.Map{"error": "Classroom has no date bounds configured"})
	}

	rows, err := database.GetAttendanceByClassroomRange(config.GetDB(), classroomID, start, end)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	studentCount, err := database.CountStudentsByClassroom(config.GetDB(), classroomID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to count students"})
	}

	snap := &services.ClassroomSnapshot{
		StudentCount: studentCount,
		Records:      rows,
	}

	period := c.Query("period", "daily")
	switch period {
	case "daily":
		return c.JSON(fiber.Map{"period": period, "statistics": services.DailyStatistics(snap, start, end, cal)})
	case "weekly":
		return c.JSON(fiber.Map{"period": period, "statistics": services.WeeklyStatistics(snap, start, end)})
	case "monthly":
		return c.JSON(fiber.Map{"period": period, "statistics": services.MonthlyStatistics(snap, start, end, cal)})
	case "yearly":
		return c.JSON(fiber.Map{"period": period, "statistics": services.YearlyStatistics(snap, start, end)})
	default:
		return c.Status(400).JSON(fiber.Map{"error": "period must be daily, weekly, monthly or yearly"})
	}
}
