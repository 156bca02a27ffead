package teachers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupTeachersRoutes(app *fiber.App) {
	api := app.Group("/api/teachers", auth.AuthMiddleware)

	api.Get("/", GetTeachersAPI)
	api.Post("/", CreateTeacherAPI)
	api.Get("/:id", GetTeacherAPI)
	api.Put("/:id", UpdateTeacherAPI)
	api.Delete("/:id", DeleteTeacherAPI)
}
