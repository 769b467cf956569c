package repository

import (
	"context"
	"fmt"
	"time"

	"violations-dashboard/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS violations (
		id BIGSERIAL PRIMARY KEY,
		case_no VARCHAR(64),
		violation_city VARCHAR(255),
		violation_street VARCHAR(255),
		description TEXT,
		code VARCHAR(64),
		status VARCHAR(32),
		status_dttm TIMESTAMPTZ,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION
	);
	CREATE INDEX IF NOT EXISTS violations_city_idx ON violations (violation_city);
	CREATE INDEX IF NOT EXISTS violations_status_dttm_idx ON violations (status_dttm);
`

// PostgresRepository stores violations in PostgreSQL
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the violations table if it does not exist
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// LoadViolations returns every stored violation in insertion order
func (r *PostgresRepository) LoadViolations(ctx context.Context) ([]models.Violation, error) {
	sql := `
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
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute load query: %w", err)
	}
	defer rows.Close()

	violations := []models.Violation{}
	for rows.Next() {
		var v models.Violation
		err := rows.Scan(
			&v.CaseNo,
			&v.City,
			&v.Street,
			&v.Description,
			&v.Code,
			&v.Status,
			&v.StatusTime,
			&v.Latitude,
			&v.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan violation: %w", err)
		}
		v.StatusTime = inUTC(v.StatusTime)
		violations = append(violations, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return violations, nil
}

// SaveViolations bulk inserts violations with COPY
func (r *PostgresRepository) SaveViolations(ctx context.Context, violations []models.Violation) error {
	_, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"violations"},
		[]string{"case_no", "violation_city", "violation_street", "description", "code", "status", "status_dttm", "latitude", "longitude"},
		pgx.CopyFromSlice(len(violations), func(i int) ([]any, error) {
			v := violations[i]
			return []any{
				nullString(v.CaseNo),
				nullString(v.City),
				nullString(v.Street),
				nullString(v.Description),
				nullString(v.Code),
				nullString(v.Status),
				v.StatusTime,
				v.Latitude,
				v.Longitude,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("repository: failed to copy violations: %w", err)
	}
	return nil
}

// CountViolations returns the number of stored rows
func (r *PostgresRepository) CountViolations(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM violations").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count violations: %w", err)
	}
	return count, nil
}

// inUTC moves a timestamptz value out of the session's local zone. CSV
// timestamps are parsed as UTC, and the year must not shift on reload.
func inUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// nullString maps empty strings back to NULL.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
