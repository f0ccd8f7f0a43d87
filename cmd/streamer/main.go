// Package main is the streamer CLI entry point: a thin cobra command that
// wires configuration, dataset loading and the System driver together and
// streams power/temperature profiles to an output sink.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s.\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "streamer",
		Short:         "Synthesize time-ordered power/temperature profiles for a simulated multiprocessor platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.run,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "simulation configuration file (required)")
	cmd.Flags().Float64Var(&opts.length, "length", 10.0, "simulated duration to run, in seconds")
	cmd.Flags().StringVar(&opts.outputPath, "output", "", "output directory, overriding output.path in the config")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "enable verbose structured logging and serve Prometheus metrics")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", ":8080", "address to serve /metrics on when --verbose is set")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
