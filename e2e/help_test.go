//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Run directly, not through the PTY, since it exits immediately
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	require.Contains(t, output, "--profile")
	require.Contains(t, output, "--profiles-dir")
	require.Contains(t, output, "list")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err)
	require.Contains(t, string(out), "modgrip")
}
