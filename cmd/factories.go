package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/qre/job"
)

func newFactoriesCmd(opts *options) *cobra.Command {
	var errorRate float64

	cmd := &cobra.Command{
		Use:   "factories JOB_FILE",
		Short: "List the nondominated T factories for a target error rate.",
		Long: `Factories searches T factories with the qubit, QEC scheme, and ` +
			`distillation units of the job and lists those that are not ` +
			`dominated in runtime and qubits per T state. Logical counts ` +
			`and items of the job are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := job.LoadFile(args[0])
			if err != nil {
				return err
			}

			runner, err := opts.runner()
			if err != nil {
				return err
			}

			factories, err := runner.FindFactories(j.Params, errorRate)
			if err != nil {
				return err
			}

			return writeOutput(cmd, opts, func(w writer) error {
				return w.factories(factories)
			})
		},
	}

	cmd.Flags().Float64Var(&errorRate, "error-rate", 1e-9,
		"Required output error rate of each T state.")

	return cmd
}
