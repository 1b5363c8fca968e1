package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/qre/job"
)

func newEstimateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "estimate JOB_FILE",
		Short: "Estimate the physical resources of a job.",
		Long: `Estimate reads a job in YAML or JSON and writes one result per ` +
			`item. The estimate type of each item decides whether a single ` +
			`estimate or a frontier is computed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, args[0], nil)
		},
	}
}

func newFrontierCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "frontier JOB_FILE",
		Short: "Compute the qubit and runtime frontier of a job.",
		Long: `Frontier is like estimate but computes the Pareto frontier of ` +
			`physical qubits and runtime for every item.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd, opts, args[0], func(p *job.Params) {
				p.EstimateType = job.Frontier
			})
		},
	}
}

func runJob(
	cmd *cobra.Command,
	opts *options,
	path string,
	adjust func(p *job.Params),
) error {
	j, err := job.LoadFile(path)
	if err != nil {
		return err
	}

	if adjust != nil {
		adjust(&j.Params)
		for i := range j.Items {
			adjust(&j.Items[i])
		}
	}

	runner, err := opts.runner()
	if err != nil {
		return err
	}

	results, err := runner.Run(cmd.Context(), j)
	if err != nil {
		return err
	}

	return writeOutput(cmd, opts, func(w writer) error {
		return w.results(results, j.IsBatch())
	})
}
