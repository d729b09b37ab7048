package osutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	exitMu    sync.Mutex
	exitHooks []func()
	exit      = os.Exit
)

// OnExit registers fn to run before the process exits through Fatal or a
// second interrupt. Hooks run in reverse order of registration, once.
func OnExit(fn func()) {
	exitMu.Lock()
	defer exitMu.Unlock()
	exitHooks = append(exitHooks, fn)
}

// RunExitHooks runs and clears the registered exit hooks.
func RunExitHooks() {
	exitMu.Lock()
	hooks := exitHooks
	exitHooks = nil
	exitMu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// SignalContext returns a context that is cancelled on SIGINT or SIGTERM.
// A second signal exits immediately.
func SignalContext(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		slog.Warn("interrupted, stopping after the current request", "signal", sig.String())
		cancel()
		<-sigs
		RunExitHooks()
		exit(130)
	}()

	return ctx
}

// Fatal logs err under message, runs the exit hooks and exits with status 1.
func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	RunExitHooks()
	exit(1)
}
