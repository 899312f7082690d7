// Command evreactord watches Linux input devices and fires shell commands
// when configured predicates over their state become true. It is the CLI
// wiring around the evreactor package: device discovery and hotplug
// (internal/evdevio), command execution (internal/runner), and structured
// logging (internal/obslog), assembled the way the reference evev.c CLI
// wires its own equivalents.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/evreactor/evreactor"
	"github.com/evreactor/evreactor/internal/codetable"
	"github.com/evreactor/evreactor/internal/evdevio"
	"github.com/evreactor/evreactor/internal/obslog"
	"github.com/evreactor/evreactor/internal/runner"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if err.Error() != "flag: help requested" {
			fmt.Fprintln(os.Stderr, "evreactord:", err)
		}
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "evreactord:", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	logger := obslog.New(os.Stderr, evreactor.LevelInfo)
	evreactor.SetLogger(logger)

	var ctx *evreactor.Context
	if !cfg.monitor {
		bindings, err := loadBindings(cfg)
		if err != nil {
			return err
		}
		ctx, err = evreactor.NewContext(bindings, evreactor.WithCommandRunner(runner.Shell{}))
		if err != nil {
			return fmt.Errorf("building context: %w", err)
		}
	}

	poller, err := evdevio.NewPoller()
	if err != nil {
		return err
	}
	defer poller.Close()

	hotplug, err := evdevio.NewHotplugWatcher(defaultDeviceDir)
	if err != nil {
		return err
	}
	defer hotplug.Close()
	if err := poller.Add(hotplug.FD()); err != nil {
		return fmt.Errorf("watching %s: %w", defaultDeviceDir, err)
	}

	devices := map[int]*evdevio.Device{}

	existing, _ := filepath.Glob(filepath.Join(defaultDeviceDir, "event*"))
	for _, path := range existing {
		if d := openAndRegister(poller, ctx, cfg, path); d != nil {
			devices[d.FD] = d
		}
	}

	var waitMS int
	if cfg.monitor {
		waitMS = -1
	} else {
		waitMS = int(ctx.Timeout(nowMS()))
	}

	for {
		ready, err := poller.Wait(waitMS)
		if err != nil {
			return err
		}

		if len(ready) == 0 {
			if !cfg.monitor {
				waitMS = int(ctx.Timeout(nowMS()))
			}
			continue
		}

		for _, fd := range ready {
			switch {
			case fd == hotplug.FD():
				handleHotplug(hotplug, poller, ctx, cfg, devices)
			default:
				if d, ok := devices[fd]; ok {
					handleDevice(d, ctx, cfg, logger)
				}
			}
		}

		if !cfg.monitor {
			waitMS = int(ctx.Timeout(nowMS()))
		}
	}
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}

func handleHotplug(hotplug *evdevio.HotplugWatcher, poller *evdevio.Poller, ctx *evreactor.Context, cfg *config, devices map[int]*evdevio.Device) {
	events, err := hotplug.Drain()
	if err != nil {
		return
	}
	for _, ev := range events {
		if d := openAndRegister(poller, ctx, cfg, ev.Path); d != nil {
			devices[d.FD] = d
		}
	}
}

// openAndRegister opens path, applies the device-name pattern filter, seeds
// the context with the device's current state for every typecode a binding
// observes, and registers it with poller. Returns nil if the device
// couldn't be opened or didn't match.
func openAndRegister(poller *evdevio.Poller, ctx *evreactor.Context, cfg *config, path string) *evdevio.Device {
	d, err := evdevio.Open(path)
	if err != nil {
		if !cfg.quiet {
			fmt.Fprintln(os.Stderr, "evreactord:", err)
		}
		return nil
	}

	match := d.MatchesAny(cfg.patterns)
	if cfg.info {
		fmt.Fprintf(os.Stderr, "%s: phys=%q name=%q match=%v\n", path, d.Phys, d.Name, match)
	}
	if !match {
		d.Close()
		return nil
	}

	if !cfg.monitor && ctx != nil {
		seedInitialState(d, ctx)
	}

	if err := poller.Add(d.FD); err != nil {
		d.Close()
		return nil
	}
	return d
}

func seedInitialState(d *evdevio.Device, ctx *evreactor.Context) {
	for _, st := range ctx.States() {
		value, ok := evdevio.ReadInitialValue(d.FD, int(st.Typecode.Type()), int(st.Typecode.Code()))
		if !ok {
			continue
		}
		ctx.SeedState(st.Typecode, value)
	}
}

// handleDevice drains every pending event on d and either prints it
// (monitor mode), logs and/or feeds it to ctx. Returns true if at least one
// non-repeat event was delivered to ctx.
func handleDevice(d *evdevio.Device, ctx *evreactor.Context, cfg *config, logger *obslog.Logger) bool {
	events, err := d.ReadEvents()
	if err != nil {
		return false
	}

	delivered := false
	for _, ev := range events {
		if evdevio.IsKeyRepeat(ev) {
			continue
		}

		if cfg.monitor {
			printMonitorEvent(ev)
			continue
		}

		if cfg.logging {
			logger.Log(evreactor.LevelInfo, "event",
				evreactor.Field{Key: "type", Value: codetable.TypeName(ev.Type)},
				evreactor.Field{Key: "code", Value: ev.Code},
				evreactor.Field{Key: "value", Value: ev.Value},
			)
		}

		tc := evreactor.NewTypecode(ev.Type, ev.Code)
		now := ev.Sec*1000 + ev.Usec/1000
		ctx.InputEvent(tc, ev.Value, now)
		delivered = true
	}
	return delivered
}

func printMonitorEvent(ev evdevio.RawEvent) {
	typeName := codetable.TypeName(ev.Type)
	codeName := codetable.CodeName(ev.Type, ev.Code)
	if codeName == "" {
		codeName = fmt.Sprintf("%d", ev.Code)
	}
	fmt.Printf("%s %s %d\n", typeName, codeName, ev.Value)
}
