package report

import (
	"fmt"
	"io"

	"github.com/rpattn/csvcheck/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	// ContentTypeXLSX is the media type of a rendered workbook.
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SummarySheet = "Summary"
	ErrorsSheet  = "Errors"
)

var errorHeaders = []any{"row_index", "id", "column", "error_message"}

// WriteXLSX renders report as a workbook with a summary sheet and one row per
// error. File-level errors and missing ids leave their cells blank.
func WriteXLSX(w io.Writer, report domain.ValidationReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A1", &[]any{"status", string(report.Status)}); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := f.SetSheetRow(SummarySheet, "A2", &[]any{"error_count", len(report.Errors)}); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if _, err := f.NewSheet(ErrorsSheet); err != nil {
		return fmt.Errorf("failed to create errors sheet: %w", err)
	}
	if err := f.SetSheetRow(ErrorsSheet, "A1", &errorHeaders); err != nil {
		return fmt.Errorf("failed to write error headers: %w", err)
	}

	for i, validationErr := range report.Errors {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve cell for error %d: %w", i, err)
		}
		values := []any{nil, nil, validationErr.Column, validationErr.ErrorMessage}
		if !validationErr.IsFileLevel() {
			values[0] = *validationErr.RowIndex
		}
		if validationErr.ID != nil {
			values[1] = *validationErr.ID
		}
		if err := f.SetSheetRow(ErrorsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write error %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
