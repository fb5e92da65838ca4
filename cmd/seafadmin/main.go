package main

import (
	"context"
	"os"
	"seafadmin/cmd/seafadmin/commands"
	"seafadmin/lib/telemetry"
	"seafadmin/lib/util/serviceutil"
)

func main() {
	ctx, stop := serviceutil.SignalContext()
	defer stop()

	tel, err := telemetry.SetupFromEnv(ctx, "seafadmin")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	code := commands.ExecuteContext(ctx)

	err = tel.Shutdown(context.Background())
	if err != nil {
		serviceutil.Fatal("failed to shutdown telemetry", err)
	}
	os.Exit(code)
}
