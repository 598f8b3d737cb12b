package repository

import (
	"context"

	"github.com/rpattn/csvcheck/internal/domain"
)

// ValidationRunRepository stores validation run metadata for observability.
type ValidationRunRepository interface {
	Record(ctx context.Context, run domain.ValidationRun) error
	List(ctx context.Context, limit int, offset int) ([]domain.ValidationRun, error)
}
