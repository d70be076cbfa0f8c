package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/siqr/internal/config"
)

// clearEnv unsets every SIQR_ variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range config.Keys {
		name := config.EnvPrefix + "_" + strings.ToUpper(key)
		if old, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { os.Setenv(name, old) })
		}
	}
}

// smallRunArgs is a fast, valid parameter set.
var smallRunArgs = []string{
	"--population-size=300",
	"--initial-infected=10",
	"--num-days=20",
	"--num-contacts=8",
	"--prob-infection=0.03",
	"--seed=77",
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
