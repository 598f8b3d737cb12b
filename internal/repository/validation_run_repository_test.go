package repository

import (
	"context"
	"testing"

	"github.com/rpattn/csvcheck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationRunRepositoryRequiresPool(t *testing.T) {
	repo := NewValidationRunRepository(nil)
	run := domain.NewValidationRun("people.csv", 11, domain.NewValidationReport(nil))

	require.ErrorIs(t, repo.Record(context.Background(), run), ErrNotInitialized)

	_, err := repo.List(context.Background(), 10, 0)
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestNoopValidationRunRepository(t *testing.T) {
	repo := NewNoopValidationRunRepository()
	run := domain.NewValidationRun("people.csv", 11, domain.NewValidationReport(nil))

	require.NoError(t, repo.Record(context.Background(), run))

	runs, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{limit: 0, offset: 0, wantLimit: defaultListLimit, wantOffset: 0},
		{limit: -3, offset: -1, wantLimit: defaultListLimit, wantOffset: 0},
		{limit: 25, offset: 50, wantLimit: 25, wantOffset: 50},
		{limit: 10000, offset: 5, wantLimit: maxListLimit, wantOffset: 5},
	}

	for _, tt := range tests {
		limit, offset := normalizePage(tt.limit, tt.offset)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOffset, offset)
	}
}
