// Package store realizes the database-reader and output-sink
// collaborators: flat-file dataset readers in the teacher's bufio.Scanner
// idiom, and parquet-go-backed output sinks for the arrivals/profiles
// tables.
package store

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"csb/streamer/internal/xerrors"
)

// ArrivalReader reads the `arrivals` table's ascending `time` column (one
// absolute timestamp per line, in seconds) and turns it into an
// interarrival sample by taking successive differences.
type ArrivalReader struct {
	path string
}

// NewArrivalReader builds a reader over a newline-delimited dataset file.
func NewArrivalReader(path string) *ArrivalReader {
	return &ArrivalReader{path: path}
}

// Read loads the arrival timestamps, skipping blank lines the way
// datareader.go does, and returns the successive differences between them
// (one fewer value than the number of timestamps read).
func (r *ArrivalReader) Read() ([]float64, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "open arrival dataset %q", r.path)
	}
	defer file.Close()

	var out []float64
	var last float64
	haveLast := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parse arrival timestamp %q", line)
		}
		if haveLast {
			if t < last {
				return nil, xerrors.New(xerrors.Dataset, "arrival dataset %q is not sorted ascending", r.path)
			}
			out = append(out, t-last)
		}
		last = t
		haveLast = true
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "read arrival dataset %q", r.path)
	}
	if len(out) == 0 {
		return nil, xerrors.New(xerrors.Dataset, "arrival dataset %q has too few rows to form an interarrival sample", r.path)
	}
	return out, nil
}
