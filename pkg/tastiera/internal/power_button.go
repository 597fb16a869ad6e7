package internal

import (
	"os/exec"
	"sync"
	"time"

	evdev "github.com/holoplot/go-evdev"
)

// PowerButtonConfig wires the hardware power button on handheld targets.
// A short press runs SuspendScript, holding past ShortPressMax runs
// ShutdownCommand. An empty DevicePath disables handling entirely.
type PowerButtonConfig struct {
	DevicePath      string
	ButtonCode      uint16
	ShortPressMax   time.Duration
	CoolDownTime    time.Duration
	SuspendScript   string
	ShutdownCommand string
}

func DefaultPowerButtonConfig() PowerButtonConfig {
	return PowerButtonConfig{
		DevicePath:      "/dev/input/event1",
		ButtonCode:      uint16(evdev.KEY_POWER),
		ShortPressMax:   2 * time.Second,
		CoolDownTime:    1 * time.Second,
		SuspendScript:   "/usr/sbin/suspend.sh",
		ShutdownCommand: "poweroff",
	}
}

// PowerButtonHandler blocks reading the evdev device until it closes or
// errors. Runs on its own goroutine; the WaitGroup lets shutdown wait
// for it.
func PowerButtonHandler(wg *sync.WaitGroup, cfg PowerButtonConfig) {
	defer wg.Done()
	logger := GetInternalLogger()

	dev, err := evdev.Open(cfg.DevicePath)
	if err != nil {
		logger.Error("Failed to open power button device",
			"path", cfg.DevicePath, "error", err)
		return
	}
	defer dev.Close()

	name, _ := dev.Name()
	logger.Debug("Monitoring power button", "path", cfg.DevicePath, "device", name)

	var pressedAt time.Time
	var lastAction time.Time

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			logger.Error("Power button device read failed", "error", err)
			return
		}
		if ev.Type != evdev.EV_KEY || uint16(ev.Code) != cfg.ButtonCode {
			continue
		}

		switch ev.Value {
		case 1: // press
			pressedAt = time.Now()
		case 0: // release
			if pressedAt.IsZero() {
				continue
			}
			held := time.Since(pressedAt)
			pressedAt = time.Time{}

			if time.Since(lastAction) < cfg.CoolDownTime {
				logger.Debug("Power button press ignored during cooldown")
				continue
			}
			lastAction = time.Now()

			if held <= cfg.ShortPressMax {
				logger.Info("Power button short press, suspending", "held", held)
				runPowerCommand(cfg.SuspendScript)
			} else {
				logger.Info("Power button long press, shutting down", "held", held)
				runPowerCommand(cfg.ShutdownCommand)
			}
		}
	}
}

func runPowerCommand(command string) {
	if command == "" {
		return
	}
	cmd := exec.Command("sh", "-c", command)
	if err := cmd.Run(); err != nil {
		GetInternalLogger().Error("Power command failed", "command", command, "error", err)
	}
}
