package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/academic"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/attendance"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/audit"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/classes"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/students"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/teachers"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/timetable"
)

const appVersion = "1.2.0"

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	config.Load()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "edu-core",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/api/config", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "edu-core",
			"version": appVersion,
		})
	})

	auth.SetupAuthRoutes(app)
	academic.SetupAcademicRoutes(app)
	classes.SetupClassesRoutes(app)
	students.SetupStudentsRoutes(app)

	// Timetable registers /api/teachers/availability and must come before
	// the teachers package's /api/teachers/:id.
	timetable.SetupTimetableRoutes(app)
	teachers.SetupTeachersRoutes(app)

	attendance.SetupAttendanceRoutes(app)
	audit.SetupAuditRoutes(app)

	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	log.Println("Server starting on :" + config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
