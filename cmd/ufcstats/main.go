package main

import (
	"context"
	"log/slog"
	"time"
	"ufcstats/cmd/ufcstats/commands"
	"ufcstats/lib/osutil"
	"ufcstats/lib/telemetry"
)

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := telemetry.Shutdown(ctx); err != nil {
		slog.Warn("failed to flush telemetry", "err", err)
	}
}

func main() {
	ctx := osutil.SignalContext(context.Background())
	err := telemetry.SetupFromEnv(ctx, "ufcstats")
	if err != nil {
		osutil.Fatal("failed to setup telemetry", err)
	}
	// commands exit through osutil.Fatal on error, which skips deferred calls.
	osutil.OnExit(shutdownTelemetry)
	defer osutil.RunExitHooks()

	commands.ExecuteContext(ctx)
}
