package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, dir, name string, rows int, firstAge string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("id,email,age\n")
	for i := 1; i <= rows; i++ {
		age := "30"
		if i == 1 {
			age = firstAge
		}
		fmt.Fprintf(&b, "%d,u%d@example.com,%s\n", i, i, age)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func TestRunPassingFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "ok.csv", 11, "40")

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, exitPass, code)
	var got fileReport
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, path, got.File)
	assert.Equal(t, "pass", string(got.Status))
	assert.Empty(t, got.Errors)
}

func TestRunFailingFile(t *testing.T) {
	dir := t.TempDir()
	ok := writeCSV(t, dir, "ok.csv", 11, "40")
	bad := writeCSV(t, dir, "bad.csv", 11, "17")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-pretty", ok, bad}, &stdout, &stderr)

	assert.Equal(t, exitFail, code)
	assert.Contains(t, stdout.String(), "Age 17 is out of allowed range (18-100).")
	assert.Contains(t, stdout.String(), "\n  \"status\"")
}

func TestRunUsageAndReadErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitUsage, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: csvcheck")

	stderr.Reset()
	assert.Equal(t, exitUsage, run([]string{filepath.Join(t.TempDir(), "missing.csv")}, &stdout, &stderr))

	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	stderr.Reset()
	assert.Equal(t, exitUsage, run([]string{empty}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "No columns to parse from file")
}
