//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.startWithProfile()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should render the list")
	require.True(t, tf.SeePlain("AlphaMod"), "Should show the profile's mods")

	tf.Select()
	require.True(t, tf.SeePlain("[x]"), "Toggled mod should be checked")
	require.True(t, tf.SeePlain("1 selected"), "Status should count the selection")
}

func TestModRangeSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.startWithProfile()
	require.NoError(t, err, "Failed to start app")
	require.True(t, tf.Ready(), "Should render the list")
	require.True(t, tf.SeePlain("GammaMod"), "Should show every mod")

	// Toggle the first mod to make it the pivot, then extend to the last one
	tf.Select()
	require.True(t, tf.SeePlain("1 selected"))
	tf.Down()
	tf.Down()
	tf.Press(KeyRange)

	require.True(t, tf.SeePlain("3 selected"), "Range should cover pivot through cursor")

	// Esc clears everything; only output drawn after the key press counts
	mark := len(tf.Snapshot())
	tf.Escape()
	require.True(t, tf.WaitFor(func(s string) bool {
		if len(s) < mark {
			return false
		}
		redrawn := ansiRe.ReplaceAllString(s[mark:], "")
		return strings.Count(redrawn, "[ ]") >= 3 && !strings.Contains(redrawn, "[x]")
	}, 2*time.Second), "Escape should clear the selection")
}
