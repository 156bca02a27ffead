package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/config"
	"github.com/ajinzrathod/ajinzrathod-edu-core/app/database"
)

// GetAuditLogsAPI lists audit entries newest first with a pagination
// envelope.
func GetAuditLogsAPI(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	filters := database.AuditFilters{
		Action:    c.Query("action"),
		ModelName: c.Query("model"),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}

	logs, total, err := database.GetAuditLogs(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch audit logs"})
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	return c.JSON(fiber.Map{
		"logs":         logs,
		"total":        total,
		"current_page": page,
		"total_pages":  totalPages,
		"has_next":     page < totalPages,
		"has_previous": page > 1,
	})
}
