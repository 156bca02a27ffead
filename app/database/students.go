package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateStudent(db *sql.DB, student *models.Student) error {
	query := `
		INSERT INTO students (full_name, enrollment_number, classroom_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(query, student.FullName, student.EnrollmentNumber, student.ClassroomID).Scan(
		&student.ID, &student.CreatedAt, &student.UpdatedAt,
	)
}

// GetStudentsByClassroom lists students ordered by enrollment number. An
// empty classroomID lists the whole school.
func GetStudentsByClassroom(db *sql.DB, classroomID string) ([]models.Student, error) {
	query := `
		SELECT s.id, s.full_name, s.enrollment_number, s.classroom_id, s.created_at, s.updated_at, c.name
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE ($1 = '' OR s.classroom_id::text = $1)
		ORDER BY c.name ASC, s.enrollment_number ASC
	`
	rows, err := db.Query(query, classroomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]models.Student, 0)
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.FullName, &s.EnrollmentNumber, &s.ClassroomID,
			&s.CreatedAt, &s.UpdatedAt, &s.ClassroomName,
		); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func GetStudentByID(db *sql.DB, id string) (*models.Student, error) {
	student := &models.Student{}
	query := `
		SELECT s.id, s.full_name, s.enrollment_number, s.classroom_id, s.created_at, s.updated_at, c.name
		FROM students s
		JOIN classrooms c ON s.classroom_id = c.id
		WHERE s.id = $1
	`
	err := db.QueryRow(query, id).Scan(
		&student.ID, &student.FullName, &student.EnrollmentNumber, &student.ClassroomID,
		&student.CreatedAt, &student.UpdatedAt, &student.ClassroomName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return student, err
}

func CountStudentsByClassroom(db *sql.DB, classroomID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE classroom_id = $1`, classroomID).Scan(&count)
	return count, err
}

func UpdateStudent(db *sql.DB, student *models.Student) error {
	query := `
		UPDATE students
		SET full_name = $1, enrollment_number = $2, classroom_id = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := db.Exec(query,
		student.FullName, student.EnrollmentNumber, student.ClassroomID, student.ID,
	)
	return err
}

// DeleteStudent removes the student; attendance rows cascade.
func DeleteStudent(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
