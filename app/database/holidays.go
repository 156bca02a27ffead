package database

import (
	"database/sql"

	"github.com/ajinzrathod/ajinzrathod-edu-core/app/models"
)

// CreateHoliday inserts a holiday. The (year_id, date) unique constraint
// surfaces as a pq unique_violation when the date is already a holiday.
func CreateHoliday(db *sql.DB, holiday *models.Holiday) error {
	query := `
		INSERT INTO holidays (year_id, date, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return db.QueryRow(query, holiday.YearID, holiday.Date, holiday.Name).Scan(
		&holiday.ID, &holiday.CreatedAt, &holiday.UpdatedAt,
	)
}

func GetHolidaysByYear(db *sql.DB, yearID string) ([]models.Holiday, error) {
	query := `
		SELECT id, year_id, date, name, created_at, updated_at
		FROM holidays
		WHERE year_id = $1
		ORDER BY date ASC
	`
	rows, err := db.Query(query, yearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make([]models.Holiday, 0)
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.ID, &h.YearID, &h.Date, &h.Name, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func GetHolidayByID(db *sql.DB, id string) (*models.Holiday, error) {
	holiday := &models.Holiday{}
	query := `SELECT id, year_id, date, name, created_at, updated_at FROM holidays WHERE id = $1`

	err := db.QueryRow(query, id).Scan(
		&holiday.ID, &holiday.YearID, &holiday.Date, &holiday.Name,
		&holiday.CreatedAt, &holiday.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return holiday, err
}

func UpdateHoliday(db *sql.DB, holiday *models.Holiday) error {
	query := `UPDATE holidays SET date = $1, name = $2, updated_at = NOW() WHERE id = $3`
	_, err := db.Exec(query, holiday.Date, holiday.Name, holiday.ID)
	return err
}

func DeleteHoliday(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
