// Package thermal provides the simplified lumped-element thermal model this
// repository substitutes for the original's full 3D-ICE multi-node mesh: one
// capacitance/conductance-to-ambient pair per processing element, advanced
// one time step at a time via forward-Euler integration. The real
// thermal-circuit extractor and ODE solver are external collaborators per
// the simulator's scope (see SPEC_FULL.md 4.7); this package is what stands
// in for them so internal/platform has something concrete to drive.
package thermal

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"csb/streamer/internal/xerrors"
)

// Circuit holds one diagonal RC pair (capacitance, conductance-to-ambient)
// per processing element, in element order.
type Circuit struct {
	Names       []string
	Areas       []float64
	Capacitance []float64
	Conductance []float64
}

// Len reports the number of thermal nodes (one per processing element).
func (c *Circuit) Len() int {
	return len(c.Names)
}

// ExtractStack reads a simplified stack description: one element per line,
// "name area capacitance conductance", whitespace separated. This plays the
// role the original's .stk 3D-ICE floorplan format played, simplified to a
// diagonal circuit (see package doc).
func ExtractStack(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "opening thermal stack %q", path)
	}
	defer f.Close()

	circuit := &Circuit{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, xerrors.New(xerrors.Dataset, "malformed stack line %q", line)
		}
		area, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parsing area in %q", line)
		}
		capacitance, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parsing capacitance in %q", line)
		}
		conductance, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, xerrors.Wrap(xerrors.Dataset, err, "parsing conductance in %q", line)
		}
		circuit.Names = append(circuit.Names, fields[0])
		circuit.Areas = append(circuit.Areas, area)
		circuit.Capacitance = append(circuit.Capacitance, capacitance)
		circuit.Conductance = append(circuit.Conductance, conductance)
	}
	if err := scanner.Err(); err != nil {
		return nil, xerrors.Wrap(xerrors.IOError, err, "reading thermal stack %q", path)
	}
	if len(circuit.Names) == 0 {
		return nil, xerrors.New(xerrors.Dataset, "thermal stack %q has no elements", path)
	}
	return circuit, nil
}
