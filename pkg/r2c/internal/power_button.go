package internal

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/switchroot-kiosk/r2c/pkg/r2c/internal/logging"
)

const defaultLongPress = 2 * time.Second

// PowerButtonConfig describes the evdev power key to watch.
type PowerButtonConfig struct {
	DevicePath string
	ButtonCode evdev.EvCode // KEY_POWER when zero
	LongPress  time.Duration

	// OnLongPress runs on the reader goroutine once the key has been held
	// for LongPress. Short presses are ignored.
	OnLongPress func()
}

type keyEventSource interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// PowerButton reads key events from an input device until closed.
type PowerButton struct {
	cfg    PowerButtonConfig
	src    keyEventSource
	logger *slog.Logger

	mu    sync.Mutex
	timer *time.Timer

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// StartPowerButton opens the device and starts reading it.
func StartPowerButton(cfg PowerButtonConfig) (*PowerButton, error) {
	dev, err := evdev.Open(cfg.DevicePath)
	if err != nil {
		return nil, fmt.Errorf("open power button device %s: %w", cfg.DevicePath, err)
	}

	logger := logging.GetInternalLogger()
	if name, err := dev.Name(); err == nil {
		logger.Debug("Watching power button", "device", cfg.DevicePath, "name", name)
	}

	return startPowerButton(dev, cfg, logger), nil
}

func startPowerButton(src keyEventSource, cfg PowerButtonConfig, logger *slog.Logger) *PowerButton {
	if cfg.ButtonCode == 0 {
		cfg.ButtonCode = evdev.KEY_POWER
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = defaultLongPress
	}

	pb := &PowerButton{cfg: cfg, src: src, logger: logger}
	pb.wg.Add(1)
	go pb.run()
	return pb
}

func (pb *PowerButton) run() {
	defer pb.wg.Done()

	for {
		ev, err := pb.src.ReadOne()
		if err != nil {
			pb.logger.Debug("Power button reader stopped", "error", err)
			pb.disarm()
			return
		}
		if ev.Type != evdev.EV_KEY || ev.Code != pb.cfg.ButtonCode {
			continue
		}

		switch ev.Value {
		case 1:
			pb.arm()
		case 0:
			if pb.disarm() {
				pb.logger.Debug("Power button short press ignored")
			}
		}
	}
}

func (pb *PowerButton) arm() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.timer != nil {
		return
	}
	pb.timer = time.AfterFunc(pb.cfg.LongPress, func() {
		pb.mu.Lock()
		pb.timer = nil
		pb.mu.Unlock()

		pb.logger.Info("Power button long press")
		if pb.cfg.OnLongPress != nil {
			pb.cfg.OnLongPress()
		}
	})
}

// disarm cancels a pending long press and reports whether one was pending.
func (pb *PowerButton) disarm() bool {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if pb.timer == nil {
		return false
	}
	stopped := pb.timer.Stop()
	pb.timer = nil
	return stopped
}

// Close stops the reader and waits for it to exit.
func (pb *PowerButton) Close() error {
	var err error
	pb.closeOnce.Do(func() {
		err = pb.src.Close()
		pb.wg.Wait()
	})
	return err
}
