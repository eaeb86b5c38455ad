package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rssilink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	prev := configFile
	configFile = path
	t.Cleanup(func() { configFile = prev })
}

func TestValidateCommand(t *testing.T) {
	useConfig(t, "logging:\n  level: error\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"validate"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "VALID: channel 46 (2446 MHz), data pipe E1F0F0F0F0, 2 Mbps, power 3, driver stub\n", out.String())
}

func TestSimulate_EndToEnd(t *testing.T) {
	useConfig(t, `
source:
  kind: sequence
  values: [-40, -42, -41]
trigger:
  kind: interval
  interval: 40ms
transmitter:
  sample_count: 3
  sample_interval: 5ms
  summary_gap: 1ms
  cooldown: 5ms
  trigger_poll: 5ms
receiver:
  window: 100ms
  poll_interval: 1ms
logging:
  level: error
`)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(600*time.Millisecond, cancel)

	var out bytes.Buffer
	require.NoError(t, runSimulate(ctx, strings.NewReader(""), &out))

	text := out.String()
	assert.Contains(t, text, "Mean RSSI:")
	assert.Contains(t, text, "dBm")
}

func TestStopped(t *testing.T) {
	assert.NoError(t, stopped(nil))
	assert.NoError(t, stopped(context.Canceled))
	assert.ErrorIs(t, stopped(context.DeadlineExceeded), context.DeadlineExceeded)
}
