package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/lazy"
	"github.com/AnatoleLucet/lazy/cmd/lazy/commands"
	"github.com/AnatoleLucet/lazy/internal/springs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cli := commands.New()
	t.Cleanup(cli.Close)

	var out bytes.Buffer
	cli.SetOutput(&out)
	cli.SetArgs(args)

	err := cli.Execute(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "props.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEval(t *testing.T) {
	t.Run("should print the default outputs", func(t *testing.T) {
		out, err := execute(t, "eval", "--positions", "[0, 2, 4]", "--stiffness", "2")
		require.NoError(t, err)

		assert.Equal(t, "energy: 2\nforces: [2 0 -2]\nmax_force: 2\n", out)
	})

	t.Run("should print the named values", func(t *testing.T) {
		out, err := execute(t, "eval", "lengths", "extensions", "-x", "[0, 3]")
		require.NoError(t, err)

		assert.Equal(t, "lengths: [3]\nextensions: [2]\n", out)
	})

	t.Run("should load props from the config file", func(t *testing.T) {
		path := writeConfig(t, "positions: [0, 2, 4]\nstiffness: 2\nrestlength: 1\n")

		out, err := execute(t, "eval", "energy", "--config", path)
		require.NoError(t, err)

		assert.Equal(t, "energy: 2\n", out)
	})

	t.Run("should prefer flags over the config file", func(t *testing.T) {
		path := writeConfig(t, "positions: [0, 2, 4]\nstiffness: 2\n")

		out, err := execute(t, "eval", "energy", "-c", path, "--stiffness", "4")
		require.NoError(t, err)

		assert.Equal(t, "energy: 4\n", out)
	})

	t.Run("should return the computation failure", func(t *testing.T) {
		_, err := execute(t, "eval", "--stiffness=-1")

		assert.True(t, errors.Is(err, springs.ErrNegativeStiffness))
		assert.True(t, errors.Is(err, lazy.ErrComputation))
	})

	t.Run("should reject an unknown value", func(t *testing.T) {
		_, err := execute(t, "eval", "momentum")
		assert.True(t, errors.Is(err, commands.ErrUnknownValue))
	})

	t.Run("should fail on a missing config file", func(t *testing.T) {
		_, err := execute(t, "eval", "-c", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}

func TestDump(t *testing.T) {
	out, err := execute(t, "dump", "max_force", "--positions", "[0, 2, 4]")
	require.NoError(t, err)

	assert.Contains(t, out, "max_force <float64> clean by forces\n")
	assert.Contains(t, out, "  positions <[]float64> clean\n")
	assert.Contains(t, out, "  k <float64> clean\n")
	assert.Contains(t, out, "    stiffness <float64> clean\n")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Equal(t, commands.Version+"\n", out)
}
