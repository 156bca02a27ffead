package audit

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/routes/auth"
)

func SetupAuditRoutes(app *fiber.App) {
	api := app.Group("/api/audit-logs", auth.AuthMiddleware, auth.AdminMiddleware)

	api.Get("/", GetAuditLogsAPI)
}
