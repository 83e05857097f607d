// Package commands implements the CLI commands evaluating the spring chain model.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"

	"github.com/AnatoleLucet/lazy"
	"github.com/AnatoleLucet/lazy/internal/springs"
	"github.com/AnatoleLucet/lazy/props"
)

// CLI represents the command line interface for lazy.
type CLI struct {
	graph *lazy.Graph
	props *props.Manager
	model *springs.Model

	level   *slog.LevelVar
	rootCmd *cobra.Command
}

// New creates a CLI with a fresh graph holding the spring chain model.
// Every prop of the model is exposed as a persistent flag.
func New() *CLI {
	g := lazy.NewGraph()
	m := props.NewManager(g)

	c := &CLI{
		graph: g,
		props: m,
		model: springs.Build(m),
		level: new(slog.LevelVar),
	}

	rootCmd := &cobra.Command{
		Use:               "lazy",
		Short:             "Evaluate a spring chain through an incremental value cache",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML file of prop values")
	rootCmd.PersistentFlags().Bool("debug", false, "Log recomputations to stderr")
	m.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(c.newEvalCmd())
	rootCmd.AddCommand(c.newDumpCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects both command output and logs. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

// Close releases the model and its props.
func (c *CLI) Close() {
	c.model.Close()
	c.props.Close()
}

// setup runs before every command: flags are already applied, so the
// config file only fills props that were not set on the command line.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return err
	}
	if debug {
		c.level.Set(slog.LevelDebug)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.level})
	c.graph.SetLogger(slog.New(handler))

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	if configPath != "" {
		if err := c.load(configPath); err != nil {
			return err
		}
	}

	return c.props.Validate()
}

func (c *CLI) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open config"), "path", path)
	}
	defer func() { _ = f.Close() }()

	if err := c.props.Load(f); err != nil {
		return zerr.With(err, "path", path)
	}

	return nil
}
