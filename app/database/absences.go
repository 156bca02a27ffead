package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// UpsertAbsence saves a teacher's absence record for a date. Re-marking the
// same (teacher, date) updates the existing row.
func UpsertAbsence(db *sql.DB, absence *models.Absence) error {
	query := `INSERT INTO teacher_absences (teacher_id, date, status, reason, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  ON CONFLICT (teacher_id, date)
			  DO UPDATE SET status = EXCLUDED.status, reason = EXCLUDED.reason, updated_at = NOW()
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, absence.TeacherID, absence.Date, absence.Status, absence.Reason).Scan(
		&absence.ID, &absence.CreatedAt, &absence.UpdatedAt,
	)
}

// DeleteAbsenceByTeacherAndDate retracts an absence by removing the row.
// Deleting a row that does not exist is not an error.
func DeleteAbsenceByTeacherAndDate(db *sql.DB, teacherID string, date models.DateOnly) error {
	_, err := db.Exec(
		`DELETE FROM teacher_absences WHERE teacher_id = $1 AND date = $2`,
		teacherID, date,
	)
	return err
}

// GetAbsencesByDate retrieves all teacher absence records for a date with
// teacher names attached.
func GetAbsencesByDate(db *sql.DB, date models.DateOnly) ([]models.Absence, error) {
	query := `
		SELECT a.id, a.teacher_id, a.date, a.status, a.reason, a.created_at, a.updated_at, t.full_name
		FROM teacher_absences a
		JOIN teachers t ON a.teacher_id = t.id
		WHERE a.date = $1
		ORDER BY t.full_name
	`
	rows, err := db.Query(query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := make([]models.Absence, 0)
	for rows.Next() {
		var a models.Absence
		if err := rows.Scan(
			&a.ID, &a.TeacherID, &a.Date, &a.Status, &a.Reason,
			&a.CreatedAt, &a.UpdatedAt, &a.TeacherName,
		); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}
	return absences, nil
}

func GetAbsenceByID(db *sql.DB, id string) (*models.Absence, error) {
	absence := &models.Absence{}
	query := `
		SELECT a.id, a.teacher_id, a.date, a.status, a.reason, a.created_at, a.updated_at, t.full_name
		FROM teacher_absences a
		JOIN teachers t ON a.teacher_id = t.id
		WHERE a.id = $1
	`
	err := db.QueryRow(query, id).Scan(
		&absence.ID, &absence.TeacherID, &absence.Date, &absence.Status, &absence.Reason,
		&absence.CreatedAt, &absence.UpdatedAt, &absence.TeacherName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return absence, err
}

func GetAbsenceByTeacherAndDate(db *sql.DB, teacherID string, date models.DateOnly) (*models.Absence, error) {
	absence := &models.Absence{}
	query := `SELECT id, teacher_id, date, status, reason, created_at, updated_at
			  FROM teacher_absences
			  WHERE teacher_id = $1 AND date = $2`

	err := db.QueryRow(query, teacherID, date).Scan(
		&absence.ID, &absence.TeacherID, &absence.Date, &absence.Status, &absence.Reason,
		&absence.CreatedAt, &absence.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return absence, err
}
