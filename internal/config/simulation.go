package config

import (
	"path/filepath"
	"strings"

	"csb/streamer/internal/xerrors"
)

// Simulation is the fully resolved, typed view of the recognized
// configuration keys: seed, traffic.path, workload.patterns[*], the
// platform.temperature and platform.power branches, and output.*.
type Simulation struct {
	Seed int64

	TrafficPath string

	Patterns []PatternConfig

	Temperature ThermalConfig
	Power       PowerConfig

	OutputTimeSpan float64
	OutputPath     string
}

// PatternConfig is one entry of workload.patterns[*].
type PatternConfig struct {
	Path     string
	TimeStep float64
	Name     string
}

// ThermalConfig is the platform.temperature branch.
type ThermalConfig struct {
	Path     string
	Ambience float64
	TimeStep float64
}

// PowerConfig is the platform.power branch.
type PowerConfig struct {
	Path     string
	TimeStep float64
}

// LoadSimulation reads and validates a simulator configuration file.
func LoadSimulation(path string) (*Simulation, error) {
	root, err := Load(path)
	if err != nil {
		return nil, err
	}
	return root.Simulation()
}

// Simulation extracts and validates a Simulation from an already-loaded
// Tree, resolving relative dataset paths against the config file's
// directory.
func (t *Tree) Simulation() (*Simulation, error) {
	sim := &Simulation{
		Seed:           t.Int64("seed"),
		TrafficPath:    t.Path("traffic.path"),
		OutputTimeSpan: t.Float64("output.time_span"),
		OutputPath:     t.Path("output.path"),
	}
	if sim.TrafficPath == "" {
		return nil, xerrors.New(xerrors.Configuration, "traffic.path is required")
	}

	patterns := t.Branches("workload.patterns")
	if len(patterns) == 0 {
		return nil, xerrors.New(xerrors.Configuration, "workload.patterns must list at least one pattern")
	}
	for _, p := range patterns {
		pc := PatternConfig{
			Path:     p.Path("path"),
			TimeStep: p.Float64("time_step"),
			Name:     p.String("name"),
		}
		if pc.Path == "" {
			return nil, xerrors.New(xerrors.Configuration, "workload.patterns[*].path is required")
		}
		if pc.TimeStep <= 0 {
			return nil, xerrors.New(xerrors.Configuration, "workload.patterns[*].time_step must be > 0")
		}
		if pc.Name == "" {
			pc.Name = stem(pc.Path)
		}
		sim.Patterns = append(sim.Patterns, pc)
	}

	temp := t.Branch("platform.temperature")
	if temp == nil {
		return nil, xerrors.New(xerrors.Configuration, "platform.temperature is required")
	}
	sim.Temperature = ThermalConfig{
		Path:     temp.Path("path"),
		Ambience: temp.Float64("ambience"),
		TimeStep: temp.Float64("time_step"),
	}
	if sim.Temperature.Path == "" {
		return nil, xerrors.New(xerrors.Configuration, "platform.temperature.path is required")
	}
	if sim.Temperature.TimeStep <= 0 {
		return nil, xerrors.New(xerrors.Configuration, "platform.temperature.time_step must be > 0")
	}

	power := t.Branch("platform.power")
	if power == nil {
		return nil, xerrors.New(xerrors.Configuration, "platform.power is required")
	}
	sim.Power = PowerConfig{
		Path:     power.Path("path"),
		TimeStep: power.Float64("time_step"),
	}
	if sim.Power.Path == "" {
		return nil, xerrors.New(xerrors.Configuration, "platform.power.path is required")
	}
	if sim.Power.TimeStep != sim.Temperature.TimeStep {
		return nil, xerrors.New(xerrors.Configuration,
			"platform.power.time_step (%v) must equal platform.temperature.time_step (%v)",
			sim.Power.TimeStep, sim.Temperature.TimeStep)
	}

	if sim.OutputTimeSpan <= 0 {
		return nil, xerrors.New(xerrors.Configuration, "output.time_span must be > 0")
	}

	return sim, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
