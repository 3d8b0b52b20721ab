package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	err := cmd.Execute()
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "ExeViewer version")
	assert.Contains(t, output, "Go version:")
}

func TestRootRequiresExactlyOneArgument(t *testing.T) {
	for _, args := range [][]string{{}, {"a", "b"}} {
		err := rootCmd.Args(rootCmd, args)
		assert.Error(t, err, "args %v", args)
	}
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"/bin/ls"}))
}

func TestRunMissingExecutable(t *testing.T) {
	t.Setenv("EXEVIEWER_CONFIG", "/nonexistent/config.yaml")
	t.Setenv("PATH", t.TempDir())

	err := run("no-such-binary-anywhere")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
