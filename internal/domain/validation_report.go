package domain

// Status is the overall outcome of a validation.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Synthetic column names used by file-level errors.
const (
	ColumnColumns = "columns"
	ColumnGlobal  = "global"
)

// ValidationError describes one problem found in an uploaded file. RowIndex and
// ID are nil for file-level errors.
type ValidationError struct {
	RowIndex     *int    `json:"row_index"`
	ID           *string `json:"id"`
	Column       string  `json:"column"`
	ErrorMessage string  `json:"error_message"`
}

// IsFileLevel reports whether the error is not attributable to a single row.
func (e ValidationError) IsFileLevel() bool {
	return e.RowIndex == nil
}

// NewFileError builds an error that applies to the file as a whole.
func NewFileError(column, message string) ValidationError {
	return ValidationError{Column: column, ErrorMessage: message}
}

// NewRowError builds an error for a single data row. id may be nil.
func NewRowError(rowIndex int, id *string, column, message string) ValidationError {
	return ValidationError{
		RowIndex:     &rowIndex,
		ID:           id,
		Column:       column,
		ErrorMessage: message,
	}
}

// ValidationReport is the result of validating one file.
type ValidationReport struct {
	Status Status            `json:"status"`
	Errors []ValidationError `json:"errors"`
}

// NewValidationReport derives the status from errors. A nil slice is replaced
// with an empty one so the report always serializes errors as an array.
func NewValidationReport(errs []ValidationError) ValidationReport {
	if errs == nil {
		errs = []ValidationError{}
	}
	status := StatusPass
	if len(errs) > 0 {
		status = StatusFail
	}
	return ValidationReport{Status: status, Errors: errs}
}

// Passed reports whether no errors were found.
func (r ValidationReport) Passed() bool {
	return r.Status == StatusPass
}
