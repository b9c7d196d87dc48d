package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "download"}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "")
	addDownloadFlags(cmd)
	return cmd
}

func TestDownloadFlagsOnlyChanged(t *testing.T) {
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--timeout", "5s", "--tui", "-o", "/tmp/pins"}))

	flags := downloadFlags(cmd)

	assert.Equal(t, 5*time.Second, flags["timeout"])
	assert.Equal(t, true, flags["tui"])
	assert.Equal(t, "/tmp/pins", flags["output"])
	assert.NotContains(t, flags, "notify")
	assert.NotContains(t, flags, "folder-name")
	assert.NotContains(t, flags, "log-level")
}

func TestGlobalFlags(t *testing.T) {
	cmd := newTestCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "debug", "--no-color"}))

	flags := globalFlags(cmd)

	assert.Equal(t, "debug", flags["log-level"])
	assert.Equal(t, true, flags["no-color"])
	assert.NotContains(t, flags, "log-file")
}
