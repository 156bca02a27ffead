package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateTeacher(db *sql.DB, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (full_name, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(query, teacher.FullName, teacher.Email).Scan(
		&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt,
	)
}

func GetTeachers(db *sql.DB) ([]models.Teacher, error) {
	query := `
		SELECT id, full_name, email, created_at, updated_at
		FROM teachers
		ORDER BY full_name ASC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := make([]models.Teacher, 0)
	for rows.Next() {
		var t models.Teacher
		if err := rows.Scan(&t.ID, &t.FullName, &t.Email, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, nil
}

func GetTeacherByID(db *sql.DB, id string) (*models.Teacher, error) {
	teacher := &models.Teacher{}
	query := `SELECT id, full_name, email, created_at, updated_at FROM teachers WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&teacher.ID, &teacher.FullName, &teacher.Email, &teacher.CreatedAt, &teacher.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return teacher, err
}

func UpdateTeacher(db *sql.DB, teacher *models.Teacher) error {
	query := `UPDATE teachers SET full_name = $1, email = $2, updated_at = NOW() WHERE id = $3`
	_, err := db.Exec(query, teacher.FullName, teacher.Email, teacher.ID)
	return err
}

func DeleteTeacher(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
