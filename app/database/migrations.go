package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if missing and applies incremental
// updates. Every statement is idempotent so startup can run this
// unconditionally.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'admin',
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS academic_years (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			label VARCHAR(50) NOT NULL,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			is_current BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS classrooms (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			academic_year_id UUID NOT NULL REFERENCES academic_years(id),
			start_date DATE,
			end_date DATE,
			weekend_days JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, academic_year_id)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(200) NOT NULL,
			enrollment_number INTEGER NOT NULL,
			classroom_id UUID NOT NULL REFERENCES classrooms(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (enrollment_number, classroom_id)
		)`,

		`CREATE TABLE IF NOT EXISTS teachers (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(200) NOT NULL,
			email VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS holidays (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			year_id UUID NOT NULL REFERENCES academic_years(id),
			date DATE NOT NULL,
			name VARCHAR(200) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (year_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS attendance_records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
			date DATE NOT NULL,
			present BOOLEAN NOT NULL,
			year_id UUID NOT NULL REFERENCES academic_years(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (student_id, date, year_id)
		)`,

		`CREATE TABLE IF NOT EXISTS timetable_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			classroom_id UUID NOT NULL REFERENCES classrooms(id),
			day VARCHAR(10) NOT NULL,
			period INTEGER NOT NULL,
			subject VARCHAR(100) NOT NULL,
			teacher_id UUID NOT NULL REFERENCES teachers(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS teacher_absences (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			teacher_id UUID NOT NULL REFERENCES teachers(id),
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'absent',
			reason TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (teacher_id, date)
		)`,

		`CREATE TABLE IF NOT EXISTS proxy_assignments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			absence_id UUID NOT NULL REFERENCES teacher_absences(id),
			classroom_id UUID NOT NULL REFERENCES classrooms(id),
			day VARCHAR(10) NOT NULL,
			period INTEGER NOT NULL,
			original_teacher_id UUID NOT NULL REFERENCES teachers(id),
			proxy_teacher_id UUID NOT NULL REFERENCES teachers(id),
			subject VARCHAR(100) NOT NULL DEFAULT '',
			date DATE NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'assigned',
			reason TEXT NOT NULL DEFAULT '',
			assigned_by UUID REFERENCES users(id),
			completed_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS audit_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			action VARCHAR(10) NOT NULL,
			performed_by UUID REFERENCES users(id),
			model_name VARCHAR(100) NOT NULL,
			object_id VARCHAR(100) NOT NULL,
			object_display VARCHAR(255) NOT NULL DEFAULT '',
			changes JSONB NOT NULL DEFAULT '{}',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_attendance_records_date ON attendance_records (date)`,
		`CREATE INDEX IF NOT EXISTS idx_attendance_records_student ON attendance_records (student_id)`,
		`CREATE INDEX IF NOT EXISTS idx_students_classroom ON students (classroom_id)`,
		`CREATE INDEX IF NOT EXISTS idx_timetable_entries_teacher ON timetable_entries (teacher_id)`,
		`CREATE INDEX IF NOT EXISTS idx_timetable_entries_classroom ON timetable_entries (classroom_id)`,
		`CREATE INDEX IF NOT EXISTS idx_proxy_assignments_date ON proxy_assignments (date)`,
		`CREATE INDEX IF NOT EXISTS idx_teacher_absences_date ON teacher_absences (date)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_timestamp ON audit_logs (timestamp DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration failed: %v", err)
			return err
		}
	}

	if err := addAbsenceReasonColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Earlier deployments created teacher_absences without the reason column.
func addAbsenceReasonColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'teacher_absences'
				AND column_name = 'reason'
			) THEN
				ALTER TABLE teacher_absences ADD COLUMN reason TEXT NOT NULL DEFAULT '';
			END IF;
		END $$;
	`
	_, err := db.Exec(query)
	if err != nil {
		log.Printf("Failed to run migration for absence reason column: %v", err)
		return err
	}
	return nil
}
