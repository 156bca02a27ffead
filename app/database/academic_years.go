package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

func CreateAcademicYear(db *sql.DB, year *models.AcademicYear) error {
	query := `
		INSERT INTO academic_years (label, start_date, end_date, is_current, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(query, year.Label, year.StartDate, year.EndDate, year.IsCurrent).Scan(
		&year.ID, &year.CreatedAt, &year.UpdatedAt,
	)
}

func GetAcademicYears(db *sql.DB) ([]models.AcademicYear, error) {
	query := `
		SELECT id, label, start_date, end_date, is_current, created_at, updated_at
		FROM academic_years
		ORDER BY start_date DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []models.AcademicYear
	for rows.Next() {
		var y models.AcademicYear
		if err := rows.Scan(
			&y.ID, &y.Label, &y.StartDate, &y.EndDate, &y.IsCurrent,
			&y.CreatedAt, &y.UpdatedAt,
		); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}

func GetAcademicYearByID(db *sql.DB, id string) (*models.AcademicYear, error) {
	year := &models.AcademicYear{}
	query := `SELECT id, label, start_date, end_date, is_current, created_at, updated_at
			  FROM academic_years WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&year.ID, &year.Label, &year.StartDate, &year.EndDate, &year.IsCurrent,
		&year.CreatedAt, &year.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return year, err
}

// GetCurrentAcademicYear returns the year flagged current, or nil when none
// is set.
func GetCurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	year := &models.AcademicYear{}
	query := `SELECT id, label, start_date, end_date, is_current, created_at, updated_at
			  FROM academic_years WHERE is_current = true
			  ORDER BY start_date DESC LIMIT 1`

	err := db.QueryRow(query).Scan(
		&year.ID, &year.Label, &year.StartDate, &year.EndDate, &year.IsCurrent,
		&year.CreatedAt, &year.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return year, err
}

func UpdateAcademicYear(db *sql.DB, year *models.AcademicYear) error {
	query := `
		UPDATE academic_years
		SET label = $1, start_date = $2, end_date = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := db.Exec(query, year.Label, year.StartDate, year.EndDate, year.ID)
	return err
}

// SetCurrentAcademicYear flags one year current and clears the flag on every
// other year in the same transaction.
func SetCurrentAcademicYear(db *sql.DB, id string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE academic_years SET is_current = false, updated_at = NOW() WHERE is_current = true`); err != nil {
		return err
	}

	result, err := tx.Exec(`UPDATE academic_years SET is_current = true, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

func DeleteAcademicYear(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM academic_years WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
