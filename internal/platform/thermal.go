package platform

import (
	"csb/streamer/internal/profile"
	"csb/streamer/internal/thermal"
	"csb/streamer/internal/workload"
	"csb/streamer/internal/xerrors"
)

// LeakageModel is a per-kind leakage-power reference, read from the
// platform.power dataset, used to derive a processing element's static
// (fill) power contribution scaled by its area relative to the model.
type LeakageModel struct {
	Kind         Kind
	Area         float64
	LeakagePower float64
}

// Mapping is the (workload element index -> platform element id) pairing
// the scheduler produced for one job; shaped identically to
// schedule.Mapping so the two packages need not import one another.
type Mapping struct {
	WorkloadIndex int
	PlatformID    int
}

// Thermal is the platform: the elements themselves, a power ProfileBuilder
// seeded with a per-element leakage fill, and the thermal simulator that
// turns accumulated power into a temperature trajectory.
type Thermal struct {
	elements  []Element
	simulator *thermal.Simulator
	builder   *profile.Builder
}

// ElementsFromCircuit derives the platform's processing elements from a
// thermal circuit's node names, mirroring the original's
// construct_circuit: each thermal node names a processing element (its
// kind parsed by ParseKind), in circuit order, with area taken from the
// circuit's own per-node area.
func ElementsFromCircuit(circuit *thermal.Circuit) ([]Element, error) {
	elements := make([]Element, circuit.Len())
	for i, name := range circuit.Names {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		elements[i] = Element{ID: i, Kind: kind, Area: circuit.Areas[i]}
	}
	return elements, nil
}

// NewThermal builds a platform over elements, deriving each element's
// leakage baseline from models by kind (scaled by area ratio) and wiring a
// power ProfileBuilder and thermal Simulator over circuit.
func NewThermal(elements []Element, circuit *thermal.Circuit, ambience, timeStep float64, models []LeakageModel) (*Thermal, error) {
	leakage := make([]float64, len(elements))
	for i, e := range elements {
		model, ok := findModel(models, e.Kind)
		if !ok {
			return nil, xerrors.New(xerrors.Dataset, "cannot find leakage data for a processing element")
		}
		if e.Area <= 0 || model.Area <= 0 {
			return nil, xerrors.New(xerrors.Modeling, "non-positive area in leakage scaling")
		}
		leakage[i] = (e.Area / model.Area) * model.LeakagePower
	}

	return &Thermal{
		elements:  elements,
		simulator: thermal.NewSimulator(circuit, ambience, timeStep),
		builder:   profile.NewBuilder(len(elements), timeStep, leakage),
	}, nil
}

func findModel(models []LeakageModel, kind Kind) (LeakageModel, bool) {
	for _, m := range models {
		if m.Kind == kind {
			return m, true
		}
	}
	return LeakageModel{}, false
}

// Elements returns the platform's processing elements, ordered by id.
func (p *Thermal) Elements() []Element {
	return p.elements
}

// Push deposits a job's dynamic power onto the elements named by mapping,
// on top of their already-filled leakage baseline.
func (p *Thermal) Push(pattern *workload.Pattern, start float64, mapping []Mapping) {
	for _, m := range mapping {
		we := pattern.Elements[m.WorkloadIndex]
		p.builder.Push(m.PlatformID, start, pattern.TimeStep, we.DynamicPower)
	}
}

// Next advances the platform to time, returning the power and temperature
// profiles accumulated since the previous call. Both profiles share
// identical grid metadata.
func (p *Thermal) Next(time float64) (power, temperature *profile.Profile) {
	power = p.builder.Pull(time)
	temperature = power.CloneZero()
	p.simulator.Next(power, temperature)
	return power, temperature
}
