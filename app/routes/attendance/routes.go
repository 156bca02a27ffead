package attendance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App) {
	api := app.Group("/api", auth.AuthMiddleware)

	api.Get("/attendance/student/:studentId", GetStudentAttendanceAPI)
	api.Get("/attendance/report/:studentId", GetStudentReportAPI)
	api.Get("/attendance/statistics", GetStatisticsAPI)
	api.Post("/attendance/bulk", BulkSaveAttendanceAPI)
	api.Put("/attendance/:id", UpdateAttendanceAPI)
	api.Delete("/attendance/:id", DeleteAttendanceAPI)

	api.Get("/classrooms/:classroomId/attendance", GetClassroomAttendanceAPI)
}
