// Package traffic produces the monotonically increasing stream of job
// arrival times the System consumes: Fractal fits a multifractal wavelet
// cascade to an empirical interarrival dataset (the required policy),
// Poisson supplements it with a plain exponential-interarrival process for
// workloads with no wavelet-fitted dataset available.
package traffic

// Traffic is a lazily refilled, conceptually infinite stream of absolute
// arrival times.
type Traffic interface {
	// Next consumes and returns the next arrival time.
	Next() (float64, error)
	// Peek inspects the next arrival time without consuming it.
	Peek() (float64, error)
}
