package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [values...]",
		Short: "Evaluate values and print their dependency trees",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = defaultOutputs
			}

			for _, name := range args {
				v, err := c.lookup(name)
				if err != nil {
					return err
				}

				// a failed value still has the edges of its last run
				_, _ = format(v)

				if err := v.Dump(cmd.OutOrStdout()); err != nil {
					return zerr.Wrap(err, "failed to dump")
				}
			}

			return nil
		},
	}
}
