package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rpattn/csvcheck/internal/domain"
	"github.com/rpattn/csvcheck/pkg/validator"
)

const (
	ColumnID    = "id"
	ColumnEmail = "email"
	ColumnAge   = "age"

	// MinDataRowsExclusive is the row count a file must exceed.
	MinDataRowsExclusive = 10
)

var (
	requiredColumns = []string{ColumnID, ColumnEmail, ColumnAge}

	// AllowedAgeRange bounds the age column, inclusive.
	AllowedAgeRange = validator.IntegerRange{Min: 18, Max: 100}
)

// rowCheck inspects one row and reports at most one error.
type rowCheck func(row Row) (domain.ValidationError, bool)

// rowChecks run in this order for every row.
var rowChecks = []rowCheck{
	validateEmail,
	validateAge,
}

// Validator checks tables against the fixed id/email/age schema. It holds no
// state and is safe for concurrent use.
type Validator struct{}

// New returns a Validator.
func New() Validator {
	return Validator{}
}

// ValidateBytes parses payload and validates it. The only error returned is a
// *ParseError; content problems are reported inside the report.
func (v Validator) ValidateBytes(payload []byte) (domain.ValidationReport, error) {
	table, err := ParseCSV(payload)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return v.Validate(table), nil
}

// Validate runs the column check, the volume check and then every row check.
// A file-level error ends validation and is the only error reported.
func (v Validator) Validate(table Table) domain.ValidationReport {
	if fileErr, found := validateColumns(table); found {
		return domain.NewValidationReport([]domain.ValidationError{fileErr})
	}
	if fileErr, found := validateVolume(table); found {
		return domain.NewValidationReport([]domain.ValidationError{fileErr})
	}

	var errs []domain.ValidationError
	for _, row := range table.Rows {
		for _, check := range rowChecks {
			if rowErr, found := check(row); found {
				errs = append(errs, rowErr)
			}
		}
	}
	return domain.NewValidationReport(errs)
}

func validateColumns(table Table) (domain.ValidationError, bool) {
	var missing []string
	for _, column := range requiredColumns {
		if !table.HasColumn(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) == 0 {
		return domain.ValidationError{}, false
	}

	sort.Strings(missing)
	return domain.NewFileError(
		domain.ColumnColumns,
		fmt.Sprintf("Missing required columns: %s", strings.Join(missing, ", ")),
	), true
}

func validateVolume(table Table) (domain.ValidationError, bool) {
	count := len(table.Rows)
	if count > MinDataRowsExclusive {
		return domain.ValidationError{}, false
	}
	return domain.NewFileError(
		domain.ColumnGlobal,
		fmt.Sprintf("File must contain more than %d data rows. Found %d.", MinDataRowsExclusive, count),
	), true
}

func validateEmail(row Row) (domain.ValidationError, bool) {
	email := row.Get(ColumnEmail)
	if email.Present && !validator.IsBlank(email.Text) {
		return domain.ValidationError{}, false
	}
	return domain.NewRowError(row.Index, rowID(row), ColumnEmail, "Email is required."), true
}

func validateAge(row Row) (domain.ValidationError, bool) {
	raw := row.Get(ColumnAge)
	if !raw.Present || validator.IsBlank(raw.Text) {
		return domain.NewRowError(row.Index, rowID(row), ColumnAge, "Age is missing or has an invalid format."), true
	}

	age, err := validator.ParseInteger(strings.TrimSpace(raw.Text))
	if err != nil {
		return domain.NewRowError(
			row.Index, rowID(row), ColumnAge,
			fmt.Sprintf("Invalid age format: '%s'.", raw.Text),
		), true
	}

	if !AllowedAgeRange.Contains(age) {
		return domain.NewRowError(
			row.Index, rowID(row), ColumnAge,
			fmt.Sprintf("Age %s is out of allowed range (%s).", age.String(), AllowedAgeRange),
		), true
	}

	return domain.ValidationError{}, false
}

// rowID echoes the row's id, or nil when it is missing or blank.
func rowID(row Row) *string {
	id := row.Get(ColumnID)
	if !id.Present || validator.IsBlank(id.Text) {
		return nil
	}
	text := id.Text
	return &text
}
