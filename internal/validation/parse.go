package validation

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("unable to parse csv")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// ParseError reports why raw bytes could not be read as a CSV table.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func newParseError(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// ParseCSV reads payload as a CSV file whose first record is the header.
// Every value is kept as text. Blank and whitespace-only lines are skipped, so
// row indices count data records only. Lone CR line endings are read as line
// breaks and stray quotes inside unquoted fields are kept literally; a quoted
// field left open at end of input is an error.
func ParseCSV(payload []byte) (Table, error) {
	if len(payload) == 0 {
		return Table{}, newParseError("No columns to parse from file")
	}

	payload = normalizeLineEndings(bytes.TrimPrefix(payload, byteOrderMark))
	if line, open := openQuoteAtEOF(payload); open {
		return Table{}, newParseError("Error tokenizing data. EOF inside string starting at line %d", line)
	}

	csvReader := csv.NewReader(bytes.NewReader(payload))
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true

	var (
		header  []string
		records [][]string
	)
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, &ParseError{Message: err.Error()}
		}

		if isWhitespaceLine(record) {
			continue
		}

		if header == nil {
			header = record
			continue
		}

		if len(record) > len(header) {
			line, _ := csvReader.FieldPos(0)
			return Table{}, newParseError(
				"Error tokenizing data. Expected %d fields in line %d, saw %d",
				len(header), line, len(record),
			)
		}
		records = append(records, record)
	}

	if header == nil {
		return Table{}, newParseError("No columns to parse from file")
	}

	return NewTable(header, records), nil
}

func isWhitespaceLine(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

// normalizeLineEndings turns every CR not followed by LF into LF.
func normalizeLineEndings(payload []byte) []byte {
	if !bytes.Contains(payload, []byte{'\r'}) {
		return payload
	}

	out := make([]byte, 0, len(payload))
	for i, b := range payload {
		if b == '\r' && (i+1 == len(payload) || payload[i+1] != '\n') {
			out = append(out, '\n')
			continue
		}
		out = append(out, b)
	}
	return out
}

// openQuoteAtEOF scans payload with the same quoting rules the lazy reader
// uses and reports whether a quoted field is still open at the end, along
// with the 1-based line where that field started.
func openQuoteAtEOF(payload []byte) (int, bool) {
	line := 1
	fieldStart := true
	inQuotes := false
	quoteLine := 0

	for i := 0; i < len(payload); i++ {
		b := payload[i]
		if inQuotes {
			switch {
			case b == '"' && i+1 < len(payload) && payload[i+1] == '"':
				i++
			case b == '"' && (i+1 == len(payload) || payload[i+1] == ',' || payload[i+1] == '\n' || payload[i+1] == '\r'):
				inQuotes = false
				fieldStart = false
			case b == '\n':
				line++
			}
			continue
		}

		switch b {
		case '"':
			if fieldStart {
				inQuotes = true
				quoteLine = line
			}
			fieldStart = false
		case ',':
			fieldStart = true
		case '\n':
			line++
			fieldStart = true
		default:
			fieldStart = false
		}
	}

	return quoteLine, inQuotes
}
