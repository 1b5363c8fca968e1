// Package cmd provides the command-line interface of the resource
// estimator.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/qre/datarecording"
	"github.com/sarchlab/qre/job"
	"github.com/sarchlab/qre/monitoring"
)

// Environment variables that provide defaults for flags that are not set
// on the command line. They may also be set in a .env file.
const (
	EnvVerbosity   = "QRE_VERBOSITY"
	EnvRecordDB    = "QRE_RECORD_DB"
	EnvMonitorPort = "QRE_MONITOR_PORT"
	EnvOpenBrowser = "QRE_OPEN_BROWSER"
	EnvParallelism = "QRE_PARALLELISM"
)

type options struct {
	envFile     string
	verbosity   int
	record      string
	monitor     bool
	monitorPort int
	openBrowser bool
	parallelism int
	format      string
	output      string

	log      logr.Logger
	recorder datarecording.DataRecorder
}

// NewRootCmd creates the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "qre",
		Short: "qre estimates the physical resources of fault-tolerant quantum algorithms.",
		Long: `qre estimates the physical qubits and the runtime that a ` +
			`fault-tolerant quantum algorithm needs, given its logical ` +
			`counts, a physical qubit model, a QEC scheme, and T factory ` +
			`distillation units.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return opts.teardown()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.envFile, "env-file", ".env",
		"File with environment variables. Missing files are ignored.")
	f.IntVarP(&opts.verbosity, "verbosity", "v", 0,
		"Log verbosity. 0 logs jobs, 1 logs search steps.")
	f.StringVar(&opts.record, "record", "",
		"Record factories and estimates into this SQLite file (without extension).")
	f.BoolVar(&opts.monitor, "monitor", false,
		"Serve a progress page while jobs run.")
	f.IntVar(&opts.monitorPort, "monitor-port", 0,
		"Port of the progress page. 0 picks a free port.")
	f.BoolVar(&opts.openBrowser, "open-browser", false,
		"Open the progress page in a browser.")
	f.IntVarP(&opts.parallelism, "parallelism", "j", 0,
		"Number of items that run at the same time. 0 uses all CPUs.")
	f.StringVarP(&opts.format, "format", "f", "yaml",
		"Output format: yaml, json, or text.")
	f.StringVarP(&opts.output, "output", "o", "",
		"Write results to this file instead of stdout.")

	root.AddCommand(
		newEstimateCmd(opts),
		newFrontierCmd(opts),
		newFactoriesCmd(opts),
	)

	return root
}

// Execute runs the command line and exits with 1 on failure. Recorders are
// flushed before exiting.
func Execute() {
	root := NewRootCmd()

	if err := root.Execute(); err != nil {
		writeFailure(root.ErrOrStderr(), err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func (o *options) setup(cmd *cobra.Command) error {
	err := godotenv.Load(o.envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", o.envFile, err)
	}

	if err := o.applyEnv(cmd); err != nil {
		return err
	}

	switch o.format {
	case "yaml", "json", "text":
	default:
		return fmt.Errorf("unknown output format %q", o.format)
	}

	stdr.SetVerbosity(o.verbosity)
	o.log = stdr.New(log.New(cmd.ErrOrStderr(), "qre ", log.LstdFlags))

	if o.record != "" {
		o.recorder, err = datarecording.New(o.record)
		if err != nil {
			return err
		}
	}

	return nil
}

func (o *options) teardown() error {
	if o.recorder == nil {
		return nil
	}

	return o.recorder.Close()
}

func (o *options) applyEnv(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if v, ok := os.LookupEnv(EnvVerbosity); ok && !flags.Changed("verbosity") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}

		o.verbosity = n
	}

	if v, ok := os.LookupEnv(EnvRecordDB); ok && !flags.Changed("record") {
		o.record = v
	}

	if v, ok := os.LookupEnv(EnvMonitorPort); ok && !flags.Changed("monitor-port") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMonitorPort, err)
		}

		o.monitorPort = n
		o.monitor = true
	}

	if v, ok := os.LookupEnv(EnvOpenBrowser); ok && !flags.Changed("open-browser") {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvOpenBrowser, err)
		}

		o.openBrowser = b
	}

	if v, ok := os.LookupEnv(EnvParallelism); ok && !flags.Changed("parallelism") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParallelism, err)
		}

		o.parallelism = n
	}

	return nil
}

func (o *options) runner() (*job.Runner, error) {
	b := job.MakeRunnerBuilder().WithLogger(o.log)

	if o.parallelism > 0 {
		b = b.WithParallelism(o.parallelism)
	}

	if o.recorder != nil {
		b = b.WithRecorder(o.recorder)
	}

	if o.monitor || o.openBrowser {
		m := monitoring.NewMonitor().
			WithPortNumber(o.monitorPort).
			WithBrowser(o.openBrowser)

		url, err := m.StartServer()
		if err != nil {
			return nil, err
		}

		o.log.Info("monitoring", "url", url)

		b = b.WithMonitor(m)
	}

	return b.Build(), nil
}
