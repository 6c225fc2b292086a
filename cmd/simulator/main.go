// The simulator runs the full control stack on a workstation: keyboard
// gestures synthesize encoder line transitions, the real decoder and menu
// navigator run against them, and frames render to the terminal. Settings
// persist to a local file so restarts behave like the device.
package main

import (
	"bufio"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dikkadev/prettyslog"
	"golang.org/x/sync/errgroup"

	"pulsegen-go/bus"
	"pulsegen-go/errcode"
	"pulsegen-go/input"
	"pulsegen-go/services/control"
	"pulsegen-go/services/display"
	"pulsegen-go/services/heartbeat"
	"pulsegen-go/services/settings"
	"pulsegen-go/x/timex"
)

// fileStore persists the settings record in a regular file.
type fileStore struct {
	path string
}

func (f fileStore) ReadAt(p []byte, off int) error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return &errcode.E{C: errcode.StoreFailed, Op: "sim.read", Err: err}
	}
	if off < 0 || off+len(p) > len(raw) {
		return errcode.ShortRecord
	}
	copy(p, raw[off:])
	return nil
}

func (f fileStore) WriteAt(p []byte, off int) error {
	raw, _ := os.ReadFile(f.path)
	if need := off + len(p); len(raw) < need {
		grown := make([]byte, need)
		copy(grown, raw)
		raw = grown
	}
	copy(raw[off:], p)
	if err := os.WriteFile(f.path, raw, 0o644); err != nil {
		return &errcode.E{C: errcode.StoreFailed, Op: "sim.write", Err: err}
	}
	return nil
}

func main() {
	cfgPath := flag.String("config", "", "path to YAML config")
	verbose := flag.Bool("v", false, "log bus traffic")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(prettyslog.NewPrettyslogHandler("SIM",
		prettyslog.WithLevel(level),
	))
	slog.SetDefault(log)

	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		log.Error("config load failed, using defaults", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && ctx.Err() == nil {
		log.Error("simulator failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	b := bus.NewBus(16)

	set := settings.New(fileStore{path: cfg.StorePath})
	if code := set.Load(); code != errcode.OK {
		log.Warn("settings load failed, writing defaults", "code", string(code))
		if err := set.Save(); err != nil {
			return err
		}
	}
	if err := set.Start(ctx, b.NewConnection("settings")); err != nil {
		return err
	}

	lines := NewSimLines()
	ctrl := control.New(lines.Clk, lines.Dat, lines.Sw, set, timex.Wall{}, control.Config{
		ViewportRows: cfg.ViewportRows,
		Decoder: input.Config{
			DebounceMs:  cfg.DebounceMs,
			LongClickMs: cfg.LongClickMs,
		},
	})
	if err := ctrl.Start(ctx, b.NewConnection("control")); err != nil {
		return err
	}

	surf := display.NewTermSurface(os.Stdout, cfg.ViewportRows)
	if err := display.New(surf).Start(ctx, b.NewConnection("display")); err != nil {
		return err
	}

	hbInterval := time.Duration(cfg.HeartbeatSeconds) * time.Second
	if err := heartbeat.New(hbInterval).Start(ctx, b.NewConnection("heartbeat")); err != nil {
		return err
	}

	// Bus traffic log, debug level.
	mon := b.NewConnection("monitor").Subscribe(bus.T("#"))
	go func() {
		for m := range mon.Channel() {
			log.Debug("bus", "topic", m.Topic.String(), "retained", m.Retained)
		}
	}()

	g, gCtx := errgroup.WithContext(ctx)

	// Control loop, one decoder poll per millisecond like the firmware.
	g.Go(func() error {
		tick := time.NewTicker(time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			case <-tick.C:
				ctrl.Tick()
			}
		}
	})

	// Keyboard gestures.
	g.Go(func() error {
		debounce := time.Duration(cfg.DebounceMs) * time.Millisecond
		if debounce <= 0 {
			debounce = input.DefaultDebounceMs * time.Millisecond
		}
		threshold := time.Duration(cfg.LongClickMs) * time.Millisecond
		if threshold <= 0 {
			threshold = input.DefaultLongClickMs * time.Millisecond
		}

		log.Info("keys: a=left d=right e+Enter=click h+Enter=long click q=quit")
		rd := bufio.NewReader(os.Stdin)
		for {
			if gCtx.Err() != nil {
				return gCtx.Err()
			}
			ch, err := rd.ReadByte()
			if err != nil {
				return err
			}
			switch ch {
			case 'a':
				lines.Detent(false)
			case 'd':
				lines.Detent(true)
			case 'e':
				lines.Click(debounce)
			case 'h':
				lines.LongClick(debounce, threshold)
			case 'q':
				return context.Canceled
			}
		}
	})

	return g.Wait()
}
