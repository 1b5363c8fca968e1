package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/qre/job"
)

type writer struct {
	w      io.Writer
	format string
}

func writeOutput(
	cmd *cobra.Command,
	opts *options,
	write func(w writer) error,
) error {
	out := cmd.OutOrStdout()

	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()

		out = f
	}

	return write(writer{w: out, format: opts.format})
}

func (w writer) results(results []*job.Result, batch bool) error {
	switch w.format {
	case "json":
		return job.WriteJSON(w.w, results, batch)
	case "text":
		return job.WriteText(w.w, results)
	default:
		return job.WriteYAML(w.w, results, batch)
	}
}

func (w writer) factories(factories []*job.TFactory) error {
	switch w.format {
	case "json":
		enc := json.NewEncoder(w.w)
		enc.SetIndent("", "  ")

		return enc.Encode(factories)
	case "text":
		tw := tabwriter.NewWriter(w.w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Rounds\tUnits\tQubits\tRuntime\tT states\tError rate")

		for _, f := range factories {
			fmt.Fprintf(tw, "%d\t%v\t%s\t%s\t%d\t%s\n",
				f.NumRounds,
				f.UnitNamePerRound,
				job.FormatThousands(f.PhysicalQubits),
				job.FormatDuration(f.Runtime),
				f.NumTStates,
				job.FormatRate(f.LogicalErrorRate))
		}

		return tw.Flush()
	default:
		enc := yaml.NewEncoder(w.w)
		if err := enc.Encode(factories); err != nil {
			return err
		}

		return enc.Close()
	}
}

// writeFailure writes the failure bundle of a job as YAML. Other errors,
// such as usage errors, are printed as they are.
func writeFailure(w io.Writer, err error) {
	var f *job.Failure
	if !errors.As(err, &f) {
		fmt.Fprintln(w, "Error:", err)
		return
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()

	if encErr := enc.Encode(map[string]any{
		"status": "failed",
		"error":  f,
	}); encErr != nil {
		fmt.Fprintln(w, "Error:", err)
	}
}
