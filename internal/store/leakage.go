package store

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"csb/streamer/internal/platform"
	"csb/streamer/internal/xerrors"
)

// LeakageReader reads a leakage-power-per-kind model dataset, shaped like
// ElementReader but keyed by kind rather than by job:
//
//	<kind> <area> <leakage_power>
type LeakageReader struct {
	path string
}

// NewLeakageReader builds a reader over a flat leakage-model file.
func NewLeakageReader(path string) *LeakageReader {
	return &LeakageReader{path: path}
}

// Read loads every leakage model, in file order.
func (r *LeakageReader) Read() ([]platform.LeakageModel, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "open leakage dataset %q", r.path)
	}
	defer file.Close()

	var out []platform.LeakageModel
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, xerrors.New(xerrors.Dataset, "malformed leakage model row %q", line)
		}

		kind, err := platform.ParseKind(fields[0])
		if err != nil {
			return nil, err
		}
		area, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parse model area")
		}
		power, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parse model leakage power")
		}

		out = append(out, platform.LeakageModel{Kind: kind, Area: area, LeakagePower: power})
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "read leakage dataset %q", r.path)
	}
	if len(out) == 0 {
		return nil, xerrors.New(xerrors.Dataset, "leakage dataset %q has no models", r.path)
	}
	return out, nil
}
