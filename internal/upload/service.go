package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rpattn/csvcheck/internal/domain"
	"github.com/rpattn/csvcheck/internal/repository"
	"github.com/rpattn/csvcheck/internal/validation"

	"github.com/rs/zerolog"
)

var (
	// ErrNotCSV is returned when the uploaded file name lacks a .csv suffix.
	ErrNotCSV = errors.New("uploaded file must be a CSV")
	// ErrEmptyFile is returned when the upload has no content.
	ErrEmptyFile = errors.New("uploaded file is empty")
)

// Service validates uploaded files and records each run.
type Service struct {
	validator validation.Validator
	runs      repository.ValidationRunRepository
	log       zerolog.Logger
}

// NewService creates a new upload service.
func NewService(runs repository.ValidationRunRepository, log zerolog.Logger) *Service {
	if runs == nil {
		runs = repository.NewNoopValidationRunRepository()
	}
	return &Service{
		validator: validation.New(),
		runs:      runs,
		log:       log,
	}
}

// Request describes one uploaded file.
type Request struct {
	FileName string
	Data     io.Reader
}

// Result is a finished validation together with the number of data rows seen.
type Result struct {
	Report   domain.ValidationReport
	RowCount int
}

// Validate checks the upload, parses it and runs the validator. Input problems
// are returned as errors (ErrNotCSV, ErrEmptyFile or a *validation.ParseError);
// content problems are only ever reported in Result.Report.
func (s *Service) Validate(ctx context.Context, req Request) (Result, error) {
	if !strings.HasSuffix(strings.ToLower(req.FileName), ".csv") {
		return Result{}, ErrNotCSV
	}
	if req.Data == nil {
		return Result{}, ErrEmptyFile
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return Result{}, ErrEmptyFile
	}

	table, err := validation.ParseCSV(payload)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Report:   s.validator.Validate(table),
		RowCount: len(table.Rows),
	}

	s.recordRun(ctx, req.FileName, result)
	return result, nil
}

// ListRuns returns recorded runs, newest first.
func (s *Service) ListRuns(ctx context.Context, limit int, offset int) ([]domain.ValidationRun, error) {
	runs, err := s.runs.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation runs: %w", err)
	}
	return runs, nil
}

// recordRun never fails the request; the run log is best effort.
func (s *Service) recordRun(ctx context.Context, fileName string, result Result) {
	run := domain.NewValidationRun(fileName, result.RowCount, result.Report)
	if err := s.runs.Record(ctx, run); err != nil {
		s.log.Error().Err(err).Str("file_name", fileName).Msg("failed to record validation run")
		return
	}
	s.log.Debug().
		Str("run_id", run.ID.String()).
		Str("file_name", fileName).
		Str("status", string(run.Status)).
		Int("error_count", run.ErrorCount).
		Int("row_count", run.RowCount).
		Msg("validation run recorded")
}
