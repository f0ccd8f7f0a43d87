package store

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"csb/streamer/internal/platform"
	"csb/streamer/internal/workload"
	"csb/streamer/internal/xerrors"
)

// ElementReader reads a workload-pattern dataset: one processing element
// per line, collapsing the original's "static" (name, area, leakage_power)
// and "dynamic" (per-step dynamic power) tables into a single flat row, the
// way datareader.go's one-row-per-line format reads a vector dataset.
//
//	<name> <area> <leakage_power> <power_0> <power_1> ...
type ElementReader struct {
	path string
}

// NewElementReader builds a reader over a flat workload-pattern file.
func NewElementReader(path string) *ElementReader {
	return &ElementReader{path: path}
}

// Read loads every processing element of the pattern, in file order.
func (r *ElementReader) Read() ([]workload.Element, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "open workload dataset %q", r.path)
	}
	defer file.Close()

	var out []workload.Element
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, xerrors.New(xerrors.Dataset, "malformed workload element row %q", line)
		}

		kind, err := platform.ParseKind(fields[0])
		if err != nil {
			return nil, err
		}
		area, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parse element area")
		}
		leakage, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parse element leakage power")
		}
		dynamic := make([]float64, len(fields)-3)
		for i, f := range fields[3:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, xerrors.Wrap(xerrors.Dataset, err, "parse dynamic power sample")
			}
			dynamic[i] = v
		}

		out = append(out, workload.Element{
			Kind:         kind,
			Area:         area,
			LeakagePower: leakage,
			DynamicPower: dynamic,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "read workload dataset %q", r.path)
	}
	if len(out) == 0 {
		return nil, xerrors.New(xerrors.Dataset, "workload dataset %q has no elements", r.path)
	}
	return out, nil
}
