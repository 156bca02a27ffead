package database

import (
	"database/sql"
	"log"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// AuditFilters narrows an audit listing. Zero values mean no filter.
type AuditFilters struct {
	Action    string
	ModelName string
	Limit     int
	Offset    int
}

func CreateAuditLog(db *sql.DB, entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (action, performed_by, model_name, object_id, object_display, changes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, timestamp
	`
	return db.QueryRow(
		query,
		entry.Action, entry.PerformedBy, entry.ModelName,
		entry.ObjectID, entry.ObjectDisplay, entry.Changes,
	).Scan(&entry.ID, &entry.Timestamp)
}

// RecordAudit writes an audit entry. Failures are logged and swallowed so a
// broken audit trail never fails the request that triggered it.
func RecordAudit(db *sql.DB, performedBy *string, action models.AuditAction, modelName, objectID, objectDisplay string, changes models.ChangeSet) {
	entry := &models.AuditLog{
		Action:        action,
		PerformedBy:   performedBy,
		ModelName:     modelName,
		ObjectID:      objectID,
		ObjectDisplay: objectDisplay,
		Changes:       changes,
	}
	if err := CreateAuditLog(db, entry); err != nil {
		log.Printf("Failed to record audit log for %s %s: %v", modelName, objectID, err)
	}
}

// GetAuditLogs returns one page of audit entries, newest first, plus the
// unpaged total for the same filters.
func GetAuditLogs(db *sql.DB, filters AuditFilters) ([]models.AuditLog, int, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM audit_logs
		WHERE ($1 = '' OR action = $1)
		AND ($2 = '' OR model_name = $2)
	`
	if err := db.QueryRow(countQuery, filters.Action, filters.ModelName).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT al.id, al.action, al.performed_by, al.model_name, al.object_id,
			   al.object_display, al.changes, al.timestamp,
			   COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM audit_logs al
		LEFT JOIN users u ON al.performed_by = u.id
		WHERE ($1 = '' OR al.action = $1)
		AND ($2 = '' OR al.model_name = $2)
		ORDER BY al.timestamp DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := db.Query(query, filters.Action, filters.ModelName, filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]models.AuditLog, 0)
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(
			&l.ID, &l.Action, &l.PerformedBy, &l.ModelName, &l.ObjectID,
			&l.ObjectDisplay, &l.Changes, &l.Timestamp, &l.PerformedByName,
		); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, nil
}
