package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateClassroom(db *sql.DB, classroom *models.Classroom) error {
	query := `
		INSERT INTO classrooms (name, academic_year_id, start_date, end_date, weekend_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(
		query,
		classroom.Name,
		classroom.AcademicYearID,
		classroom.StartDate,
		classroom.EndDate,
		classroom.WeekendDays,
	).Scan(&classroom.ID, &classroom.CreatedAt, &classroom.UpdatedAt)
}

// GetClassrooms lists classrooms with their year label and enrolled student
// count, optionally filtered to one academic year.
func GetClassrooms(db *sql.DB, yearID string) ([]models.Classroom, error) {
	query := `
		SELECT c.id, c.name, c.academic_year_id, c.start_date, c.end_date, c.weekend_days,
			   c.created_at, c.updated_at, ay.label,
			   COUNT(s.id) AS student_count
		FROM classrooms c
		JOIN academic_years ay ON c.academic_year_id = ay.id
		LEFT JOIN students s ON s.classroom_id = c.id
		WHERE ($1 = '' OR c.academic_year_id::text = $1)
		GROUP BY c.id, ay.label
		ORDER BY c.name ASC
	`
	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classrooms := make([]models.Classroom, 0)
	for rows.Next() {
		var c models.Classroom
		if err := rows.Scan(
			&c.ID, &c.Name, &c.AcademicYearID, &c.StartDate, &c.EndDate, &c.WeekendDays,
			&c.CreatedAt, &c.UpdatedAt, &c.YearLabel, &c.StudentCount,
		); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, nil
}

func GetClassroomByID(db *sql.DB, id string) (*models.Classroom, error) {
	classroom := &models.Classroom{}
	query := `
		SELECT c.id, c.name, c.academic_year_id, c.start_date, c.end_date, c.weekend_days,
			   c.created_at, c.updated_at, ay.label
		FROM classrooms c
		JOIN academic_years ay ON c.academic_year_id = ay.id
		WHERE c.id = $1
	`
	err := db.QueryRow(query, id).Scan(
		&classroom.ID, &classroom.Name, &classroom.AcademicYearID,
		&classroom.StartDate, &classroom.EndDate, &classroom.WeekendDays,
		&classroom.CreatedAt, &classroom.UpdatedAt, &classroom.YearLabel,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return classroom, err
}

func UpdateClassroom(db *sql.DB, classroom *models.Classroom) error {
	query := `
		UPDATE classrooms
		SET name = $1, academic_year_id = $2, start_date = $3, end_date = $4,
			weekend_days = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := db.Exec(query,
		classroom.Name, classroom.AcademicYearID, classroom.StartDate,
		classroom.EndDate, classroom.WeekendDays, classroom.ID,
	)
	return err
}

// UpdateClassroomWeekendDays replaces only the weekend configuration.
func UpdateClassroomWeekendDays(db *sql.DB, id string, days models.WeekendDays) error {
	result, err := db.Exec(
		`UPDATE classrooms SET weekend_days = $1, updated_at = NOW() WHERE id = $2`,
		days, id,
	)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func DeleteClassroom(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
