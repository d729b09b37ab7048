package telemetry

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"ufcstats/lib/configutil"
)

var (
	testSetupLock sync.Mutex
	testSetupDone = map[string]bool{}
)

// SetupForTesting initializes slog at debug level and telemetry from the
// environment once per service name. The returned func flushes the
// providers, it is a no-op for every call but the first.
func SetupForTesting(serviceName string) func() {
	testSetupLock.Lock()
	defer testSetupLock.Unlock()
	if testSetupDone[serviceName] {
		return func() {}
	}
	testSetupDone[serviceName] = true

	InitSlog(true)
	err := SetupFromEnv(context.Background(), serviceName)
	if err != nil {
		panic(err)
	}

	return func() {
		err := Shutdown(context.Background())
		if err != nil {
			panic(err)
		}
	}
}

// SetupFromEnv looks for telemetry.json5 from the working directory upwards
// and exports traces and metrics to the endpoints it names. Without the file
// the otel no-op providers stay installed.
func SetupFromEnv(ctx context.Context, serviceName string) error {
	c, err := configutil.ReadRecursively[config]("telemetry.json5")
	if os.IsNotExist(err) {
		slog.DebugContext(ctx, "telemetry.json5 not found, traces and metrics will not be exported")
		return nil
	}
	if err != nil {
		return err
	}
	return Setup(ctx, serviceName, c)
}
