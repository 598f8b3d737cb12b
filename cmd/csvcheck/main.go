// Command csvcheck validates CSV files from disk and prints one JSON report
// per file. It exits 0 when every file passes, 1 when any report fails and 2
// on usage, read or parse errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rpattn/csvcheck/internal/domain"
	"github.com/rpattn/csvcheck/internal/validation"

	"github.com/rs/zerolog"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

type fileReport struct {
	File string `json:"file"`
	domain.ValidationReport
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("csvcheck", flag.ContinueOnError)
	flags.SetOutput(stderr)
	pretty := flags.Bool("pretty", false, "indent JSON output")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: csvcheck [-pretty] FILE...")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return exitUsage
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).With().Timestamp().Logger()

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	v := validation.New()
	code := exitPass
	for _, path := range flags.Args() {
		payload, err := os.ReadFile(path)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("unable to read file")
			code = exitUsage
			continue
		}

		report, err := v.ValidateBytes(payload)
		if err != nil {
			log.Error().Str("file", path).Msgf("Unable to read CSV: %v", err)
			code = exitUsage
			continue
		}

		if err := enc.Encode(fileReport{File: path, ValidationReport: report}); err != nil {
			log.Error().Err(err).Msg("unable to write report")
			return exitUsage
		}
		if !report.Passed() && code == exitPass {
			code = exitFail
		}
	}

	return code
}
