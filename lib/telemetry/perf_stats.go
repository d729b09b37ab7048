package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const perfStatsInterval = 30 * time.Second

type perfGauges struct {
	cpu         metric.Float64Gauge
	allocatedMB metric.Int64Gauge
	liveObjects metric.Int64Gauge
	goroutines  metric.Int64Gauge
}

func newPerfGauges() perfGauges {
	meter := otel.Meter("ufcstats.lib.telemetry")
	var g perfGauges
	g.cpu, _ = meter.Float64Gauge("cpu_usage", metric.WithUnit("%"))
	g.allocatedMB, _ = meter.Int64Gauge("allocated_mb", metric.WithUnit("MBy"))
	g.liveObjects, _ = meter.Int64Gauge("live_objects")
	g.goroutines, _ = meter.Int64Gauge("goroutine_count")
	return g
}

func (g perfGauges) record(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	usage, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err == nil && len(usage) > 0 {
		g.cpu.Record(ctx, usage[0])
	} else if ctx.Err() == nil {
		slog.WarnContext(ctx, "failed to read cpu usage", "err", err)
	}

	g.allocatedMB.Record(ctx, int64(memStats.Alloc/1_000_000))
	g.liveObjects.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
	g.goroutines.Record(ctx, int64(runtime.NumGoroutine()))
}

// InstrumentPerfStats records process cpu, memory and goroutine gauges every
// 30 seconds in the background until ctx is done.
func InstrumentPerfStats(ctx context.Context) {
	gauges := newPerfGauges()
	go func() {
		ticker := time.NewTicker(perfStatsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gauges.record(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}
