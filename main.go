package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/shimmeringbee/remote/config"
	"github.com/shimmeringbee/remote/events"
	"github.com/shimmeringbee/remote/state"
	"log"
	"os"
	"path/filepath"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	l := logwrap.New(golog.Wrap(log.New(os.Stderr, "", log.LstdFlags)))

	l.LogInfo(ctx, "Shimmering Bee: Remote - Starting...")

	settings, err := parseSettings(ctx, l, args)
	if err != nil {
		return 2
	}

	if err := ensureDirectories(settings.Directories); err != nil {
		l.LogError(ctx, "Failed to initialise directories.", logwrap.Err(err))
		return 1
	}

	l.LogInfo(ctx, "Directory enumeration complete.", logwrap.Datum("directories", settings.Directories))

	l, logClose, err := configureLogging(filepath.Join(settings.Directories.Config, "logging"), settings.Directories.Log, l)
	defer logClose.Close()

	if err != nil {
		l.LogError(ctx, "Failed to configure logging.", logwrap.Err(err))
		return 1
	}

	bus := events.NewBus()
	stopEventLog := logEvents(ctx, l, bus)
	defer stopEventLog()

	if settings.Demo {
		return demonstrate(ctx, l, bus)
	}

	deviceCfgs, err := loadDeviceConfigurations(filepath.Join(settings.Directories.Config, "devices"))
	if err != nil {
		l.LogError(ctx, "Failed to load device configurations.", logwrap.Err(err))
		return 1
	}

	l.LogInfo(ctx, "Loaded device configurations.", logwrap.Datum("configCount", len(deviceCfgs)))

	registry := state.NewDeviceRegistry()
	if err := startDevices(ctx, deviceCfgs, registry, l, bus); err != nil {
		l.LogError(ctx, "Failed to start devices.", logwrap.Err(err))
		return 1
	}

	scripts, err := selectScripts(settings)
	if err != nil {
		l.LogError(ctx, "Failed to load scripts.", logwrap.Err(err))
		return 1
	}

	if len(scripts) == 0 {
		l.LogInfo(ctx, "No scripts found, running the demonstration.")
		return demonstrate(ctx, l, bus)
	}

	failed := 0

	for _, result := range runScripts(ctx, scripts, registry, l, bus) {
		if result.Err != nil {
			failed++
		}
	}

	l.LogInfo(ctx, "All scripts run.", logwrap.Datum("scripts", len(scripts)), logwrap.Datum("failed", failed))

	if failed > 0 {
		return 1
	}

	return 0
}

func demonstrate(ctx context.Context, l logwrap.Logger, p events.Publisher) int {
	if err := runDemonstration(ctx, l, p); err != nil {
		l.LogError(ctx, "Demonstration failed.", logwrap.Err(err))
		return 1
	}

	l.LogInfo(ctx, "Demonstration complete.")
	return 0
}

func selectScripts(settings Settings) ([]config.ScriptConfig, error) {
	if settings.Script != "" {
		s, err := loadScriptFile(settings.Script)
		if err != nil {
			return nil, err
		}

		return []config.ScriptConfig{s}, nil
	}

	return loadScripts(filepath.Join(settings.Directories.Config, "scripts"))
}

// logEvents logs every event published on the bus at debug level until the
// returned function is called.
func logEvents(ctx context.Context, l logwrap.Logger, s events.Subscriber) func() {
	ch := make(chan events.Event, 100)
	done := make(chan struct{})
	s.Subscribe(ch)

	go func() {
		defer close(done)

		for e := range ch {
			l.LogDebug(ctx, "Event published.", logwrap.Datum("type", fmt.Sprintf("%T", e)), logwrap.Datum("event", e))
		}
	}()

	return func() {
		s.Unsubscribe(ch)
		close(ch)
		<-done
	}
}
