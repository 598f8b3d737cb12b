package domain

import (
	"time"

	"github.com/google/uuid"
)

// ValidationRun records metadata about a validation request. Uploaded content
// is never stored.
type ValidationRun struct {
	ID         uuid.UUID `json:"id"`
	FileName   string    `json:"file_name"`
	Status     Status    `json:"status"`
	ErrorCount int       `json:"error_count"`
	RowCount   int       `json:"row_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewValidationRun summarizes a finished report for the run log.
func NewValidationRun(fileName string, rowCount int, report ValidationReport) ValidationRun {
	return ValidationRun{
		ID:         uuid.New(),
		FileName:   fileName,
		Status:     report.Status,
		ErrorCount: len(report.Errors),
		RowCount:   rowCount,
		CreatedAt:  time.Now().UTC(),
	}
}
