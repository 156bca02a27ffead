package classes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App) {
	api := app.Group("/api/classrooms", auth.AuthMiddleware)

	api.Get("/", GetClassroomsAPI)
	api.Post("/", CreateClassroomAPI)
	api.Get("/:id", GetClassroomAPI)
	api.Put("/:id", UpdateClassroomAPI)
	api.Put("/:id/weekend-days", UpdateWeekendDaysAPI)
	api.Delete("/:id", DeleteClassroomAPI)
}
