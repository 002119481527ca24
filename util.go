// utility functions
package main

import (
	"context"
	"sync"

	"dscheirer.com/segclock/i2c"
	"dscheirer.com/segclock/sevenseg"
	"github.com/jonboulle/clockwork"
)

type commChannels struct {
	quit  chan struct{}
	panel chan panelMsg
	leds  chan ledEffect
	once  *sync.Once
}

// runtimeConfig is the hardware context, built once in main and handed to
// every worker
type runtimeConfig struct {
	comms         commChannels
	clock         clockwork.Clock
	settings      configSettings
	logger        flogger
	segOut        segmentOutputs
	segments      *sevenseg.Driver
	led           led
	rgb           rgbLed
	irq           *buttonIRQ
	buttons       irqSource
	bus           i2c.Bus
	rtc           rtcReader
	panel         panel
	pub           publisher
	status        *statusTracker
	configService configService
}

func initCommChannels() commChannels {
	return commChannels{
		quit:  make(chan struct{}),
		panel: make(chan panelMsg, 16),
		leds:  make(chan ledEffect, 4),
		once:  &sync.Once{},
	}
}

// stop tells every worker to quit, safe to call more than once
func (c commChannels) stop() {
	c.once.Do(func() {
		close(c.quit)
	})
}

// quitContext is cancelled when the quit channel closes
func quitContext(quit chan struct{}) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-quit:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func initRuntime(settings configSettings, clock clockwork.Clock) runtimeConfig {
	return runtimeConfig{
		settings: settings,
		clock:    clock,
		comms:    initCommChannels(),
		logger:   &threadLogger{name: "Main"},
		irq:      &buttonIRQ{},
		status:   &statusTracker{},
	}
}
