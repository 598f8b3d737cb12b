package validator

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	// ErrNotInteger is returned when a value is not a base-10 integer string.
	ErrNotInteger = errors.New("value is not an integer")

	signedIntegerPattern = regexp.MustCompile(`^-?[0-9]+$`)
)

// IntegerRange is an inclusive range of allowed integer values.
type IntegerRange struct {
	Min int64
	Max int64
}

// Contains reports whether n lies within the range, bounds included.
func (r IntegerRange) Contains(n *big.Int) bool {
	return n.Cmp(big.NewInt(r.Min)) >= 0 && n.Cmp(big.NewInt(r.Max)) <= 0
}

// String renders the range as "min-max".
func (r IntegerRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// IsBlank reports whether value is empty once surrounding whitespace is removed.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// IsSignedInteger reports whether the whole value is an optional minus sign
// followed by one or more ASCII digits.
func IsSignedInteger(value string) bool {
	return signedIntegerPattern.MatchString(value)
}

// ParseInteger parses a signed integer string without any size limit.
func ParseInteger(value string) (*big.Int, error) {
	if !IsSignedInteger(value) {
		return nil, fmt.Errorf("%w: %q", ErrNotInteger, value)
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInteger, value)
	}
	return n, nil
}
