package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	"github.com/ovunctuzel/road-rage/internal/render"
	"github.com/ovunctuzel/road-rage/internal/stats"
)

// Everything the tool writes besides the console report goes here.
const outDir = "results"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, outDir))
}

// execute runs the command and returns the process exit status.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer, dir string) int {
	cmd := rootCmd(stdin, stdout, stderr, dir)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "roadstats: %v\n", err)
		if errors.Is(err, stats.ErrUsage) {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func rootCmd(stdin io.Reader, stdout, stderr io.Writer, dir string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadstats FILE...",
		Short: "Summarize road-rage simulation stats logs",
		Long: "roadstats reads simulation stats logs, one experiment per file (\"-\" for stdin),\n" +
			"and reports lag, speed, throughput and active-agent statistics per experiment.\n\n" +
			"The report goes to stdout. summary.csv, active_agents.csv and one PNG plot per\n" +
			"metric are written to ./" + outDir + "/, replacing files from earlier runs.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &stats.UsageError{Msg: "at least one input file is required"}
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, stdin, stdout, stderr, dir)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &stats.UsageError{Msg: err.Error()}
	})
	return cmd
}

func newLogger(w io.Writer) logging.LeveledLogger {
	// built by hand so PION_LOG_* variables are not consulted
	f := &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: logging.LogLevelWarn,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
	return f.NewLogger("roadstats")
}

func run(paths []string, stdin io.Reader, stdout, stderr io.Writer, dir string) (err error) {
	data, err := stats.ParseFiles(paths, stdin)
	if err != nil {
		return err
	}

	summary, err := stats.NewSummaryCSVWriter(filepath.Join(dir, "summary.csv"))
	if err != nil {
		return err
	}
	series, err := stats.NewTimeSeriesCSVWriter(filepath.Join(dir, stats.MetricActiveAgents.Name+".csv"))
	if err != nil {
		_ = summary.Close()
		return err
	}
	plots, err := render.NewPNGSink(render.DefaultOptions(dir))
	if err != nil {
		_ = summary.Close()
		_ = series.Close()
		return err
	}

	sink := stats.MultiSink(stats.NewTextSink(stdout), summary, series, plots)
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return stats.NewReporter(sink, newLogger(stderr)).Run(data)
}
