package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	api := app.Group("/api/students", auth.AuthMiddleware)

	api.Get("/", GetStudentsAPI)
	api.Post("/", CreateStudentAPI)
	api.Get("/:id", GetStudentAPI)
	api.Put("/:id", UpdateStudentAPI)
	api.Delete("/:id", DeleteStudentAPI)
}
