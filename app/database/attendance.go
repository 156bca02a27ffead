package database

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// UpsertAttendance saves one student's attendance for a date. Re-marking the
// same (student, date, year) updates the existing row.
func UpsertAttendance(db *sql.DB, record *models.Attendance) error {
	query := `INSERT INTO attendance_records (student_id, date, present, year_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  ON CONFLICT (student_id, date, year_id)
			  DO UPDATE SET present = EXCLUDED.present, updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, record.StudentID, record.Date, record.Present, record.YearID).Scan(
		&record.ID, &record.CreatedAt, &record.UpdatedAt,
	)
}

// SaveClassroomAttendance replaces one classroom's attendance for a single
// date in one transaction: marked students are upserted, and rows for the
// classroom's other students on that date are deleted so their day reverts
// to pending. Records of other dates and other classrooms are untouched.
func SaveClassroomAttendance(db *sql.DB, classroomID, yearID string, date models.DateOnly, marks map[string]bool) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	markedIDs := make([]string, 0, len(marks))
	for studentID, present := range marks {
		_, err := tx.Exec(`
			INSERT INTO attendance_records (student_id, date, present, year_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			ON CONFLICT (student_id, date, year_id)
			DO UPDATE SET present = EXCLUDED.present, updated_at = NOW()`,
			studentID, date, present, yearID,
		)
		if err != nil {
			return err
		}
		markedIDs = append(markedIDs, studentID)
	}

	_, err = tx.Exec(`
		DELETE FROM attendance_records
		WHERE date = $1 AND year_id = $2
		AND student_id IN (SELECT id FROM students WHERE classroom_id = $3)
		AND NOT (student_id::text = ANY($4))`,
		date, yearID, classroomID, pq.Array(markedIDs),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetAttendanceByStudent returns every record for one student within a year,
// ordered by date.
func GetAttendanceByStudent(db *sql.DB, studentID, yearID string) ([]models.Attendance, error) {
	query := `
		SELECT id, student_id, date, present, year_id, created_at, updated_at
		FROM attendance_records
		WHERE student_id = $1 AND year_id = $2
		ORDER BY date ASC
	`
	rows, err := db.Query(query, studentID, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// GetAttendanceByClassroomAndDate returns the classroom's records for one
// date with student names attached.
func GetAttendanceByClassroomAndDate(db *sql.DB, classroomID string, date models.DateOnly) ([]models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.date, a.present, a.year_id, a.created_at, a.updated_at, s.full_name
		FROM attendance_records a
		JOIN students s ON a.student_id = s.id
		WHERE s.classroom_id = $1 AND a.date = $2
		ORDER BY s.enrollment_number ASC
	`
	rows, err := db.Query(query, classroomID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.Attendance, 0)
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.Date, &a.Present, &a.YearID,
			&a.CreatedAt, &a.UpdatedAt, &a.StudentName,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, nil
}

// GetAttendanceByClassroomRange returns every record of the classroom's
// students within a date range.
func GetAttendanceByClassroomRange(db *sql.DB, classroomID string, start, end models.DateOnly) ([]models.Attendance, error) {
	query := `
		SELECT a.id, a.student_id, a.date, a.present, a.year_id, a.created_at, a.updated_at
		FROM attendance_records a
		JOIN students s ON a.student_id = s.id
		WHERE s.classroom_id = $1 AND a.date >= $2 AND a.date <= $3
		ORDER BY a.date ASC
	`
	rows, err := db.Query(query, classroomID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

func scanAttendanceRows(rows *sql.Rows) ([]models.Attendance, error) {
	records := make([]models.Attendance, 0)
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(
			&a.ID, &a.StudentID, &a.Date, &a.Present, &a.YearID,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, nil
}

func GetAttendanceByID(db *sql.DB, id string) (*models.Attendance, error) {
	record := &models.Attendance{}
	query := `SELECT id, student_id, date, present, year_id, created_at, updated_at
			  FROM attendance_records WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&record.ID, &record.StudentID, &record.Date, &record.Present, &record.YearID,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

func UpdateAttendancePresent(db *sql.DB, id string, present bool) error {
	result, err := db.Exec(
		`UPDATE attendance_records SET present = $1, updated_at = NOW() WHERE id = $2`,
		present, id,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteAttendanceByID removes one record, reverting the day to pending.
func DeleteAttendanceByID(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
