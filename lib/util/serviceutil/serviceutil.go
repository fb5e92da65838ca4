package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// replaced in tests
var exit = os.Exit

// SignalContext returns a context that is cancelled on the first SIGINT or
// SIGTERM, a second signal kills the process as usual once stop was called.
func SignalContext() (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// Fatal logs message together with err (which may be nil) and exits with
// status 1.
func Fatal(message string, err error) {
	slog.Error(message, "err", err)
	exit(1)
}
