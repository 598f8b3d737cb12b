package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rpattn/csvcheck/internal/domain"
	"github.com/rpattn/csvcheck/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunRepo struct {
	recorded  []domain.ValidationRun
	recordErr error
	listErr   error
}

func (s *stubRunRepo) Record(ctx context.Context, run domain.ValidationRun) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recorded = append(s.recorded, run)
	return nil
}

func (s *stubRunRepo) List(ctx context.Context, limit int, offset int) ([]domain.ValidationRun, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.recorded) {
		return []domain.ValidationRun{}, nil
	}
	end := len(s.recorded)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return s.recorded[offset:end], nil
}

func validCSV(rows int) string {
	var b strings.Builder
	b.WriteString("id,email,age\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&b, "%d,user%d@example.com,%d\n", i, i, 20+i)
	}
	return b.String()
}

func TestServiceValidatePassRecordsRun(t *testing.T) {
	repo := &stubRunRepo{}
	service := NewService(repo, zerolog.Nop())

	result, err := service.Validate(context.Background(), Request{
		FileName: "People.CSV",
		Data:     strings.NewReader(validCSV(11)),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPass, result.Report.Status)
	assert.Equal(t, 11, result.RowCount)
	require.Len(t, repo.recorded, 1)
	assert.Equal(t, "People.CSV", repo.recorded[0].FileName)
	assert.Equal(t, domain.StatusPass, repo.recorded[0].Status)
	assert.Equal(t, 11, repo.recorded[0].RowCount)
}

func TestServiceValidateContentErrorsAreNotErrors(t *testing.T) {
	repo := &stubRunRepo{}
	service := NewService(repo, zerolog.Nop())

	result, err := service.Validate(context.Background(), Request{
		FileName: "people.csv",
		Data:     strings.NewReader("id,age\n1,20\n"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFail, result.Report.Status)
	require.Len(t, result.Report.Errors, 1)
	assert.Equal(t, "Missing required columns: email", result.Report.Errors[0].ErrorMessage)
	require.Len(t, repo.recorded, 1)
	assert.Equal(t, 1, repo.recorded[0].ErrorCount)
}

func TestServiceValidateInputErrors(t *testing.T) {
	repo := &stubRunRepo{}
	service := NewService(repo, zerolog.Nop())

	_, err := service.Validate(context.Background(), Request{FileName: "people.xlsx", Data: strings.NewReader(validCSV(11))})
	assert.ErrorIs(t, err, ErrNotCSV)

	_, err = service.Validate(context.Background(), Request{FileName: "people.csv", Data: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = service.Validate(context.Background(), Request{FileName: "people.csv"})
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = service.Validate(context.Background(), Request{FileName: "people.csv", Data: strings.NewReader("id,email,age\n1,2,3,4\n")})
	assert.ErrorIs(t, err, validation.ErrParse)

	assert.Empty(t, repo.recorded, "rejected uploads are not recorded")
}

func TestServiceValidateIgnoresRecordFailure(t *testing.T) {
	repo := &stubRunRepo{recordErr: errors.New("database down")}
	service := NewService(repo, zerolog.Nop())

	result, err := service.Validate(context.Background(), Request{
		FileName: "people.csv",
		Data:     strings.NewReader(validCSV(12)),
	})
	require.NoError(t, err)
	assert.True(t, result.Report.Passed())
}

func TestServiceDefaultsToNoopRepository(t *testing.T) {
	service := NewService(nil, zerolog.Nop())

	_, err := service.Validate(context.Background(), Request{FileName: "a.csv", Data: strings.NewReader(validCSV(11))})
	require.NoError(t, err)

	runs, err := service.ListRuns(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
