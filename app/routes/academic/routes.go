package academic

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupAcademicRoutes(app *fiber.App) {
	api := app.Group("/api", auth.AuthMiddleware)

	api.Get("/years", GetYearsAPI)
	api.Post("/years", CreateYearAPI)
	api.Get("/years/current", GetCurrentYearAPI)
	api.Get("/years/:id", GetYearAPI)
	api.Put("/years/:id", UpdateYearAPI)
	api.Post("/years/:id/set-current", SetCurrentYearAPI)
	api.Delete("/years/:id", DeleteYearAPI)

	api.Get("/holidays", GetHolidaysAPI)
	api.Post("/holidays", CreateHolidayAPI)
	api.Get("/holidays/:id", GetHolidayAPI)
	api.Put("/holidays/:id", UpdateHolidayAPI)
	api.Delete("/holidays/:id", DeleteHolidayAPI)

	api.Get("/school/weekends", GetSchoolWeekendsAPI)
}
