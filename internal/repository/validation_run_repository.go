package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpattn/csvcheck/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// ErrNotInitialized is returned when a repository has no connection pool.
var ErrNotInitialized = errors.New("validation run repository not initialized")

type validationRunRepository struct {
	pool *pgxpool.Pool
}

// NewValidationRunRepository wires a repository backed by pgxpool.
func NewValidationRunRepository(pool *pgxpool.Pool) ValidationRunRepository {
	return &validationRunRepository{pool: pool}
}

func (r *validationRunRepository) Record(ctx context.Context, run domain.ValidationRun) error {
	if r.pool == nil {
		return ErrNotInitialized
	}

	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO validation_runs (id, file_name, status, error_count, row_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID,
		run.FileName,
		string(run.Status),
		run.ErrorCount,
		run.RowCount,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record validation run: %w", err)
	}

	return nil
}

func (r *validationRunRepository) List(ctx context.Context, limit int, offset int) ([]domain.ValidationRun, error) {
	if r.pool == nil {
		return nil, ErrNotInitialized
	}

	limit, offset = normalizePage(limit, offset)

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, file_name, status, error_count, row_count, created_at
		 FROM validation_runs
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.ValidationRun{}
	for rows.Next() {
		var (
			run       domain.ValidationRun
			status    string
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&run.ID,
			&run.FileName,
			&status,
			&run.ErrorCount,
			&run.RowCount,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan validation run: %w", scanErr)
		}

		run.Status = domain.Status(status)
		if createdAt.Valid {
			run.CreatedAt = createdAt.Time
		}

		runs = append(runs, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate validation runs: %w", rowsErr)
	}

	return runs, nil
}

func normalizePage(limit int, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type noopValidationRunRepository struct{}

// NewNoopValidationRunRepository returns a repository that discards runs. It
// is used when no database is configured.
func NewNoopValidationRunRepository() ValidationRunRepository {
	return noopValidationRunRepository{}
}

func (noopValidationRunRepository) Record(context.Context, domain.ValidationRun) error {
	return nil
}

func (noopValidationRunRepository) List(context.Context, int, int) ([]domain.ValidationRun, error) {
	return []domain.ValidationRun{}, nil
}
