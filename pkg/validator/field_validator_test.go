package validator

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   "))
	assert.True(t, IsBlank("\t\n"))
	assert.False(t, IsBlank(" a "))
}

func TestIsSignedInteger(t *testing.T) {
	valid := []string{"0", "25", "-3", "007", "123456789012345678901234567890"}
	for _, value := range valid {
		assert.True(t, IsSignedInteger(value), "expected %q to be accepted", value)
	}

	invalid := []string{"", "-", "+5", "25.5", "abc", "1e3", " 25", "25 ", "--1", "٣"}
	for _, value := range invalid {
		assert.False(t, IsSignedInteger(value), "expected %q to be rejected", value)
	}
}

func TestParseInteger(t *testing.T) {
	n, err := ParseInteger("007")
	require.NoError(t, err)
	assert.Equal(t, "7", n.String())

	n, err = ParseInteger("-0")
	require.NoError(t, err)
	assert.Equal(t, "0", n.String())

	n, err = ParseInteger("99999999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999999999", n.String())

	_, err = ParseInteger("12a")
	require.ErrorIs(t, err, ErrNotInteger)
}

func TestIntegerRangeContains(t *testing.T) {
	r := IntegerRange{Min: 18, Max: 100}

	assert.Equal(t, "18-100", r.String())
	assert.True(t, r.Contains(big.NewInt(18)))
	assert.True(t, r.Contains(big.NewInt(100)))
	assert.False(t, r.Contains(big.NewInt(17)))
	assert.False(t, r.Contains(big.NewInt(101)))
	assert.False(t, r.Contains(big.NewInt(-5)))

	huge, _ := new(big.Int).SetString("1000000000000000000000", 10)
	assert.False(t, r.Contains(huge))
}
