package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateProxy(db *sql.DB, proxy *models.Proxy) error {
	query := `
		INSERT INTO proxy_assignments
			(absence_id, classroom_id, day, period, original_teacher_id, proxy_teacher_id,
			 subject, date, status, reason, assigned_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(
		query,
		proxy.AbsenceID, proxy.ClassroomID, proxy.Day, proxy.Period,
		proxy.OriginalTeacherID, proxy.ProxyTeacherID, proxy.Subject,
		proxy.Date, proxy.Status, proxy.Reason, proxy.AssignedBy,
	).Scan(&proxy.ID, &proxy.CreatedAt, &proxy.UpdatedAt)
}

const proxySelect = `
	SELECT p.id, p.absence_id, p.classroom_id, p.day, p.period,
		   p.original_teacher_id, p.proxy_teacher_id, p.subject, p.date,
		   p.status, p.reason, p.assigned_by, p.completed_at,
		   p.created_at, p.updated_at,
		   c.name, ot.full_name, pt.full_name
	FROM proxy_assignments p
	JOIN classrooms c ON p.classroom_id = c.id
	JOIN teachers ot ON p.original_teacher_id = ot.id
	JOIN teachers pt ON p.proxy_teacher_id = pt.id
`

func scanProxyRows(rows *sql.Rows) ([]models.Proxy, error) {
	proxies := make([]models.Proxy, 0)
	for rows.Next() {
		var p models.Proxy
		if err := rows.Scan(
			&p.ID, &p.AbsenceID, &p.ClassroomID, &p.Day, &p.Period,
			&p.OriginalTeacherID, &p.ProxyTeacherID, &p.Subject, &p.Date,
			&p.Status, &p.Reason, &p.AssignedBy, &p.CompletedAt,
			&p.CreatedAt, &p.UpdatedAt,
			&p.ClassroomName, &p.OriginalTeacherName, &p.ProxyTeacherName,
		); err != nil {
			return nil, err
		}
		proxies = append(proxies, p)
	}
	return proxies, nil
}

// GetProxiesByDate returns every proxy recorded for a date, cancelled ones
// included so callers can show history.
func GetProxiesByDate(db *sql.DB, date models.DateOnly) ([]models.Proxy, error) {
	rows, err := db.Query(proxySelect+` WHERE p.date = $1 ORDER BY p.period, c.name`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProxyRows(rows)
}

// GetProxiesByTeacher returns the proxies a teacher is covering, newest
// first.
func GetProxiesByTeacher(db *sql.DB, teacherID string) ([]models.Proxy, error) {
	rows, err := db.Query(
		proxySelect+` WHERE p.proxy_teacher_id = $1 ORDER BY p.date DESC, p.period`,
		teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProxyRows(rows)
}

// GetProxiesByAbsence returns the proxies recorded against one absence.
func GetProxiesByAbsence(db *sql.DB, absenceID string) ([]models.Proxy, error) {
	rows, err := db.Query(
		proxySelect+` WHERE p.absence_id = $1 ORDER BY p.period`,
		absenceID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProxyRows(rows)
}

func GetProxyByID(db *sql.DB, id string) (*models.Proxy, error) {
	rows, err := db.Query(proxySelect+` WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proxies, err := scanProxyRows(rows)
	if err != nil {
		return nil, err
	}
	if len(proxies) == 0 {
		return nil, nil
	}
	return &proxies[0], nil
}

// UpdateProxyStatus moves a proxy to a new status. Completion stamps
// completed_at.
func UpdateProxyStatus(db *sql.DB, id string, status models.ProxyStatus) error {
	var query string
	if status == models.ProxyCompleted {
		query = `UPDATE proxy_assignments SET status = $1, completed_at = NOW(), updated_at = NOW() WHERE id = $2`
	} else {
		query = `UPDATE proxy_assignments SET status = $1, updated_at = NOW() WHERE id = $2`
	}
	result, err := db.Exec(query, status, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
