package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateTimetableEntry(db *sql.DB, entry *models.TimetableEntry) error {
	query := `
		INSERT INTO timetable_entries (classroom_id, day, period, subject, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(
		query,
		entry.ClassroomID, entry.Day, entry.Period, entry.Subject, entry.TeacherID,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
}

// GetTimetableEntries lists entries with classroom and teacher names,
// optionally filtered by classroom.
func GetTimetableEntries(db *sql.DB, classroomID string) ([]models.TimetableEntry, error) {
	query := `
		SELECT te.id, te.classroom_id, te.day, te.period, te.subject, te.teacher_id,
			   te.created_at, te.updated_at, c.name, t.full_name
		FROM timetable_entries te
		JOIN classrooms c ON te.classroom_id = c.id
		JOIN teachers t ON te.teacher_id = t.id
		WHERE ($1 = '' OR te.classroom_id::text = $1)
		ORDER BY te.day, te.period, c.name
	`
	rows, err := db.Query(query, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TimetableEntry, 0)
	for rows.Next() {
		var e models.TimetableEntry
		if err := rows.Scan(
			&e.ID, &e.ClassroomID, &e.Day, &e.Period, &e.Subject, &e.TeacherID,
			&e.CreatedAt, &e.UpdatedAt, &e.ClassroomName, &e.TeacherName,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// GetAllTimetableEntries returns the whole weekly timetable without joins,
// for matching computations.
func GetAllTimetableEntries(db *sql.DB) ([]models.TimetableEntry, error) {
	query := `
		SELECT id, classroom_id, day, period, subject, teacher_id, created_at, updated_at
		FROM timetable_entries
		ORDER BY day, period
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.TimetableEntry, 0)
	for rows.Next() {
		var e models.TimetableEntry
		if err := rows.Scan(
			&e.ID, &e.ClassroomID, &e.Day, &e.Period, &e.Subject, &e.TeacherID,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func GetTimetableEntryByID(db *sql.DB, id string) (*models.TimetableEntry, error) {
	entry := &models.TimetableEntry{}
	query := `
		SELECT id, classroom_id, day, period, subject, teacher_id, created_at, updated_at
		FROM timetable_entries WHERE id = $1
	`
	err := db.QueryRow(query, id).Scan(
		&entry.ID, &entry.ClassroomID, &entry.Day, &entry.Period, &entry.Subject,
		&entry.TeacherID, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return entry, err
}

func UpdateTimetableEntry(db *sql.DB, entry *models.TimetableEntry) error {
	query := `
		UPDATE timetable_entries
		SET classroom_id = $1, day = $2, period = $3, subject = $4, teacher_id = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := db.Exec(query,
		entry.ClassroomID, entry.Day, entry.Period, entry.Subject, entry.TeacherID, entry.ID,
	)
	return err
}

func DeleteTimetableEntry(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM timetable_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
