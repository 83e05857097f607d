package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/AnatoleLucet/lazy"
)

// ErrUnknownValue is returned when a command names a value the model does not have.
var ErrUnknownValue = zerr.New("unknown value")

var defaultOutputs = []string{"energy", "forces", "max_force"}

// values returns the model's derived values by name.
func (c *CLI) values() map[string]lazy.Node {
	return map[string]lazy.Node{
		"k":          c.model.K,
		"lengths":    c.model.Lengths,
		"extensions": c.model.Extensions,
		"energy":     c.model.Energy,
		"forces":     c.model.Forces,
		"max_force":  c.model.MaxForce,
	}
}

func (c *CLI) lookup(name string) (lazy.Node, error) {
	v, ok := c.values()[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrUnknownValue, "cannot evaluate"), "name", name)
	}
	return v, nil
}

// format fetches v and renders it, or returns the failure it holds.
func format(v lazy.Node) (string, error) {
	switch v := v.(type) {
	case *lazy.Value[float64]:
		x, err := v.Get()
		return fmt.Sprintf("%g", x), err
	case *lazy.Value[[]float64]:
		x, err := v.Get()
		return fmt.Sprintf("%g", x), err
	default:
		return "", zerr.With(zerr.New("unsupported value type"), "type", v.Type().String())
	}
}

func (c *CLI) newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [values...]",
		Short: "Print derived values of the model",
		Long:  "Print derived values of the model. Defaults to energy, forces and max_force.",
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

				s, err := format(v)
				if err != nil {
					return zerr.With(zerr.Wrap(err, "evaluation failed"), "value", name)
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, s)
			}

			return nil
		},
	}
}
