package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"violations-dashboard/internal/models"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteRepository stores violations in a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository migrates the database at path and opens it.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	if err := RunMigrations(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open sqlite database: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// RunMigrations applies the embedded migrations to the database at path.
func RunMigrations(path string) error {
	// Separate connection: closing the migrator closes its database.
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("repository: open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("repository: create sqlite driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("repository: create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("repository: create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("repository: run migrations: %w", err)
	}
	return nil
}

// LoadViolations returns every stored violation in insertion order.
func (r *SQLiteRepository) LoadViolations(ctx context.Context) ([]models.Violation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			COALESCE(case_no, ''),
			COALESCE(violation_city, ''),
			COALESCE(violation_street, ''),
			COALESCE(description, ''),
			COALESCE(code, ''),
			COALESCE(status, ''),
			status_dttm,
			latitude,
			longitude
		FROM violations
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute load query: %w", err)
	}
	defer rows.Close()

	violations := []models.Violation{}
	for rows.Next() {
		var (
			v        models.Violation
			ts       sql.NullString
			lat, lon sql.NullFloat64
		)
		if err := rows.Scan(&v.CaseNo, &v.City, &v.Street, &v.Description, &v.Code, &v.Status, &ts, &lat, &lon); err != nil {
			return nil, fmt.Errorf("repository: failed to scan violation: %w", err)
		}
		if ts.Valid {
			v.StatusTime = ParseTimestamp(ts.String)
		}
		if lat.Valid {
			v.Latitude = &lat.Float64
		}
		if lon.Valid {
			v.Longitude = &lon.Float64
		}
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}
	return violations, nil
}

// SaveViolations inserts violations in a single transaction.
func (r *SQLiteRepository) SaveViolations(ctx context.Context, violations []models.Violation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repository: begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO violations (case_no, violation_city, violation_street, description, code, status, status_dttm, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("repository: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range violations {
		var ts *string
		if v.StatusTime != nil {
			s := v.StatusTime.Format(time.RFC3339)
			ts = &s
		}
		_, err := stmt.ExecContext(ctx,
			nullString(v.CaseNo),
			nullString(v.City),
			nullString(v.Street),
			nullString(v.Description),
			nullString(v.Code),
			nullString(v.Status),
			ts,
			v.Latitude,
			v.Longitude,
		)
		if err != nil {
			return fmt.Errorf("repository: insert violation %q: %w", v.CaseNo, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repository: commit: %w", err)
	}
	return nil
}

// CountViolations returns the number of stored rows.
func (r *SQLiteRepository) CountViolations(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM violations").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count violations: %w", err)
	}
	return count, nil
}
