package thermal

import "csb/streamer/internal/profile"

// Simulator advances a diagonal RC circuit's node temperatures one thermal
// time step at a time, given a row of input power. It holds its
// per-node temperature state across calls, exactly as the original's
// Simulator::next does.
type Simulator struct {
	circuit  *Circuit
	ambience float64
	timeStep float64
	state    []float64
}

// NewSimulator creates a simulator over circuit, with every node initialized
// to ambience.
func NewSimulator(circuit *Circuit, ambience, timeStep float64) *Simulator {
	state := make([]float64, circuit.Len())
	for i := range state {
		state[i] = ambience
	}
	return &Simulator{circuit: circuit, ambience: ambience, timeStep: timeStep, state: state}
}

// Next advances the simulator by power.Steps rows, writing one row of
// temperature per row of power. power and temperature must share the same
// shape (power.CloneZero() is the idiomatic way to produce temperature).
func (s *Simulator) Next(power, temperature *profile.Profile) {
	for r := 0; r < power.Steps; r++ {
		in := power.Row(r)
		out := temperature.Row(r)
		for i := range s.state {
			c := s.circuit.Capacitance[i]
			g := s.circuit.Conductance[i]
			dT := (in[i] - g*(s.state[i]-s.ambience)) / c
			s.state[i] += s.timeStep * dT
			out[i] = s.state[i]
		}
	}
}
