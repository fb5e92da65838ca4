package serviceutil

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFatal(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	var codes []int
	previousExit := exit
	exit = func(code int) { codes = append(codes, code) }
	t.Cleanup(func() { exit = previousExit })

	Fatal("failed to setup telemetry", errors.New("no endpoint"))
	require.Contains(t, logs.String(), "err=\"no endpoint\"")

	require.NotPanics(t, func() { Fatal("failed to shutdown telemetry", nil) })
	require.Equal(t, []int{1, 1}, codes)
}

func TestSignalContext(t *testing.T) {
	ctx, stop := SignalContext()
	require.NoError(t, ctx.Err())
	stop()
	require.Error(t, ctx.Err())
}
