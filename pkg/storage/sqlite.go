package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ogulcanaydogan/vitals-guardian/pkg/model"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

const patientColumns = `id, first_name, last_name, birth_date, normal_temperature,
	normal_bp_upper, normal_bp_lower, created_at, updated_at`

func (s *SQLite) GetPatient(ctx context.Context, id string) (*model.Patient, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = ?`, id)

	p, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *SQLite) SavePatient(ctx context.Context, patient *model.Patient) error {
	if patient.ID == "" {
		return fmt.Errorf("save patient: empty id")
	}
	now := time.Now().UTC()

	// An update keeps the original creation time.
	var created time.Time
	err := s.db.QueryRowContext(ctx, `SELECT created_at FROM patients WHERE id = ?`, patient.ID).Scan(&created)
	switch {
	case err == nil:
		patient.CreatedAt = created
	case errors.Is(err, sql.ErrNoRows):
		if patient.CreatedAt.IsZero() {
			patient.CreatedAt = now
		}
	default:
		return fmt.Errorf("save patient: read created_at: %w", err)
	}
	patient.UpdatedAt = now

	var birth string
	if !patient.BirthDate.IsZero() {
		birth = patient.BirthDate.Format(model.BirthDateLayout)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO patients (`+patientColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   first_name = excluded.first_name,
		   last_name = excluded.last_name,
		   birth_date = excluded.birth_date,
		   normal_temperature = excluded.normal_temperature,
		   normal_bp_upper = excluded.normal_bp_upper,
		   normal_bp_lower = excluded.normal_bp_lower,
		   updated_at = excluded.updated_at`,
		patient.ID, patient.FirstName, patient.LastName, birth,
		patient.Health.NormalTemperature.String(),
		patient.Health.NormalPressure.Upper, patient.Health.NormalPressure.Lower,
		patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save patient: %w", err)
	}
	return nil
}

func (s *SQLite) ListPatients(ctx context.Context) ([]model.Patient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+patientColumns+` FROM patients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []model.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient row: %w", err)
		}
		patients = append(patients, *p)
	}
	return patients, rows.Err()
}

func (s *SQLite) DeletePatient(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient %q: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*model.Patient, error) {
	var (
		p           model.Patient
		birth, temp string
	)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &birth, &temp,
		&p.Health.NormalPressure.Upper, &p.Health.NormalPressure.Lower,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}

	t, err := decimal.NewFromString(temp)
	if err != nil {
		return nil, fmt.Errorf("parse normal temperature %q: %w", temp, err)
	}
	p.Health.NormalTemperature = t

	if birth != "" {
		d, err := time.Parse(model.BirthDateLayout, birth)
		if err != nil {
			return nil, fmt.Errorf("parse birth date %q: %w", birth, err)
		}
		p.BirthDate = d
	}
	return &p, nil
}
