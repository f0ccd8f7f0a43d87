package main

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"csb/streamer/internal/config"
	"csb/streamer/internal/metrics"
	"csb/streamer/internal/platform"
	"csb/streamer/internal/randsrc"
	"csb/streamer/internal/schedule"
	"csb/streamer/internal/store"
	"csb/streamer/internal/system"
	"csb/streamer/internal/thermal"
	"csb/streamer/internal/traffic"
	"csb/streamer/internal/workload"
)

// options holds the bound CLI flags.
type options struct {
	configPath  string
	length      float64
	outputPath  string
	verbose     bool
	metricsAddr string
}

func (o *options) run(_ *cobra.Command, _ []string) error {
	logger := newLogger(o.verbose)

	logger.Info("loading configuration", "path", o.configPath)
	sim, err := config.LoadSimulation(o.configPath)
	if err != nil {
		return err
	}

	// output.path is an optional destination database; when absent (and
	// --output is not given either) the run proceeds without a sink.
	outputPath := sim.OutputPath
	if o.outputPath != "" {
		outputPath = o.outputPath
	}

	source := randsrc.New(sim.Seed)

	logger.Info("building thermal platform", "stack", sim.Temperature.Path)
	circuit, err := thermal.ExtractStack(sim.Temperature.Path)
	if err != nil {
		return err
	}
	elements, err := platform.ElementsFromCircuit(circuit)
	if err != nil {
		return err
	}
	models, err := store.NewLeakageReader(sim.Power.Path).Read()
	if err != nil {
		return err
	}
	plat, err := platform.NewThermal(elements, circuit, sim.Temperature.Ambience, sim.Temperature.TimeStep, models)
	if err != nil {
		return err
	}

	logger.Info("loading workload catalog", "patterns", len(sim.Patterns))
	patterns := make([]*workload.Pattern, 0, len(sim.Patterns))
	for _, pc := range sim.Patterns {
		elems, err := store.NewElementReader(pc.Path).Read()
		if err != nil {
			return err
		}
		pattern, err := workload.NewPattern(pc.Name, pc.TimeStep, elems)
		if err != nil {
			return err
		}
		patterns = append(patterns, pattern)
	}
	wl, err := workload.NewRandom(patterns, source.Child("workload"))
	if err != nil {
		return err
	}

	logger.Info("loading traffic dataset", "path", sim.TrafficPath)
	interarrivals, err := store.NewArrivalReader(sim.TrafficPath).Read()
	if err != nil {
		return err
	}
	tr, err := traffic.NewFractal(interarrivals, source.Child("traffic"))
	if err != nil {
		return err
	}

	sched := schedule.New(plat.Elements())
	sys := system.New(plat, sched, tr, wl)

	logger.Info("running preflight checks")
	if err := system.Preflight(sys, 3); err != nil {
		return err
	}

	var sink *store.ParquetSink
	var gobSink *store.GobSink
	if outputPath != "" {
		sink, err = store.NewParquetSink(outputPath)
		if err != nil {
			return err
		}
		defer sink.Close()
		gobSink = store.NewGobSink(outputPath + "/snapshot.gob")
		defer gobSink.Close()
	}

	var collector *metrics.Collector
	if o.verbose {
		registry := prometheus.NewRegistry()
		collector = metrics.New(registry)
		go func() {
			if err := metrics.Serve(o.metricsAddr, registry); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", o.metricsAddr)
	}

	logger.Info("starting run", "length", o.length, "output", outputPath)
	for {
		event, power, temperature, err := sys.Next()
		if err != nil {
			return err
		}
		if event.Time > o.length {
			break
		}

		if collector != nil {
			collector.Observe(event.Kind)
			collector.SetQueueDepth(sys.QueueDepth())
		}

		if sink != nil {
			if err := sink.WriteEvent(event); err != nil {
				return err
			}
			if err := sink.WriteProfiles(power, temperature); err != nil {
				return err
			}
			gobSink.Record(event)
		}
	}

	h := sys.History()
	logger.Info("run complete", "arrived", h.Arrived, "started", h.Started, "finished", h.Finished)
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
