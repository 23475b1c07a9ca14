package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/inference-sim/cpusched/sim"
	"github.com/inference-sim/cpusched/sim/report"
	"github.com/inference-sim/cpusched/sim/trace"
	"github.com/inference-sim/cpusched/sim/workload"
)

var (
	// CLI flags for the run command
	inputPath  string  // Process description file (text or YAML)
	configPath string  // Optional YAML scheduler config
	quanta     []int64 // Round-Robin quanta; replaces the configured policies when set
	withFCFS   bool    // Also run FCFS when --quantum is given
	format     string  // Output format
	traceOn    bool    // Print every scheduling decision
	traceFile  string  // CSV file for the decision trace
	logLevel   string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusched",
	Short: "Discrete-event simulator for single-CPU scheduling policies",
}

// runOptions is the resolved configuration of one invocation of `run`.
type runOptions struct {
	Input      string
	Policies   []sim.PolicyConfig
	TraceLevel trace.Level
	Format     report.Format
	TraceFile  string
}

// resolveRunOptions merges the config file and flags. Flags win.
func resolveRunOptions(cmd *cobra.Command) (runOptions, error) {
	opts := runOptions{
		Input:      inputPath,
		Policies:   sim.DefaultPolicies(),
		TraceLevel: trace.LevelNone,
		Format:     report.Format(format),
		TraceFile:  traceFile,
	}
	if opts.Input == "" {
		return opts, fmt.Errorf("--input is required")
	}
	if !report.ValidFormats[opts.Format] {
		return opts, fmt.Errorf("unknown output format %q", format)
	}

	if configPath != "" {
		cfg, err := sim.LoadSchedulerConfig(configPath)
		if err != nil {
			return opts, err
		}
		opts.Policies = cfg.Policies
		if cfg.Trace != "" {
			opts.TraceLevel = trace.Level(cfg.Trace)
		}
	}

	if withFCFS && !cmd.Flags().Changed("quantum") {
		return opts, fmt.Errorf("--fcfs only applies together with --quantum")
	}
	if cmd.Flags().Changed("quantum") {
		opts.Policies = nil
		if withFCFS {
			opts.Policies = append(opts.Policies, sim.FCFS())
		}
		for _, q := range quanta {
			opts.Policies = append(opts.Policies, sim.RoundRobin(q))
		}
	}
	if traceOn || opts.TraceFile != "" {
		opts.TraceLevel = trace.LevelEvents
	}
	return opts, nil
}

// runSimulation loads the process table, runs every policy, and writes the report.
func runSimulation(opts runOptions, out io.Writer) error {
	specs, err := workload.LoadFile(opts.Input)
	if err != nil {
		return err
	}

	results, err := sim.RunPolicies(specs, opts.Policies, opts.TraceLevel)
	if err != nil {
		return err
	}

	if opts.TraceFile != "" {
		w := trace.NewCSVWriter(opts.TraceFile)
		if err := w.Init(); err != nil {
			return err
		}
		for _, res := range results {
			w.WriteTrace(res.Trace)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("closing trace file: %w", err)
		}
		logrus.Infof("Wrote decision trace to %s", w.Path())
	}

	// Console trace lines only when asked for; a trace file alone keeps the report short.
	if !traceOn {
		for _, res := range results {
			res.Trace = nil
		}
	}
	return report.Write(out, opts.Format, results)
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run FCFS and Round-Robin scheduling over a process file",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts, err := resolveRunOptions(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		logrus.Infof("Starting simulation of %s with %d policies", opts.Input, len(opts.Policies))

		if err := runSimulation(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command. It exits through atexit so pending
// trace files are flushed.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "Process description file (text or .yaml)")
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML scheduler config (policies, trace level)")
	runCmd.Flags().Int64SliceVar(&quanta, "quantum", nil, "Round-Robin quantum; repeat or comma-separate for several runs")
	runCmd.Flags().BoolVar(&withFCFS, "fcfs", false, "Also run FCFS when --quantum is given")
	runCmd.Flags().StringVar(&format, "format", string(report.FormatText), "Output format (text, table, yaml)")
	runCmd.Flags().BoolVar(&traceOn, "trace", false, "Print every scheduling decision")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write the decision trace to this CSV file")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
