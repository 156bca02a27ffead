package timetable

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

// SetupTimetableRoutes registers timetable, absence and proxy routes. It
// must run before the teachers package so /api/teachers/availability is not
// swallowed by the /api/teachers/:id route.
func SetupTimetableRoutes(app *fiber.App) {
	api := app.Group("/api", auth.AuthMiddleware)

	api.Get("/timetable", GetTimetableAPI)
	api.Post("/timetable", CreateTimetableEntryAPI)
	api.Get("/timetable/:id", GetTimetableEntryAPI)
	api.Put("/timetable/:id", UpdateTimetableEntryAPI)
	api.Delete("/timetable/:id", DeleteTimetableEntryAPI)

	api.Get("/classrooms/:classroomId/timetable", GetClassroomTimetableAPI)
	api.Get("/teachers/availability", GetAvailabilityAPI)
	api.Get("/teachers/:teacherId/schedule", GetTeacherScheduleAPI)
	api.Get("/teachers/:teacherId/proxy-schedule", GetProxyScheduleAPI)

	api.Get("/absences", GetAbsencesAPI)
	api.Post("/absences/bulk/mark-absent", BulkMarkAbsentAPI)
	api.Post("/absences/bulk/mark-present", BulkMarkPresentAPI)
	api.Get("/absences/:teacherId/details", GetAbsenceDetailsAPI)

	api.Get("/proxies", GetProxiesAPI)
	api.Post("/proxies/assign", AssignProxyAPI)
	api.Get("/proxies/:id", GetProxyAPI)
	api.Post("/proxies/:id/complete", CompleteProxyAPI)
	api.Post("/proxies/:id/cancel", CancelProxyAPI)
}
