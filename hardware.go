package main

import (
	"log"

	"dscheirer.com/segclock/ds3231"
	"dscheirer.com/segclock/i2c"
	"dscheirer.com/segclock/sevenseg"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// initHardware binds every pin and device once.  Simulated mode swaps the
// GPIO pieces for logging fakes, the bus for an in-memory DS3231 following
// clock, and the LCD for the terminal (when the log is not on the console).
func initHardware(settings configSettings, clock clockwork.Clock, termOK bool) (runtimeConfig, error) {
	rt := initRuntime(settings, clock)
	simulated := settings.GetBool(sSimulated)

	if simulated {
		rt.segOut = &logSegments{}
		rt.led = &logLed{}
		rt.rgb = &logRGB{}
	} else {
		rt.segOut = &rpioSegments{}
		rt.led = &rpioLed{}
		rt.rgb = &periphRGB{}
	}
	if err := rt.segOut.open(); err != nil {
		return rt, errors.Wrap(err, "segment outputs")
	}
	rt.segments = sevenseg.New(rt.segOut, clock, settings.GetDuration(sSettleDelay))
	if err := rt.rgb.init(); err != nil {
		return rt, errors.Wrap(err, "rgb led")
	}

	bus, err := i2c.Open(settings.GetString(sI2CBus), simulated)
	if err != nil {
		return rt, err
	}
	addr := uint16(settings.GetByte(sRTCAddress))
	if sim, ok := bus.(*i2c.SimBus); ok {
		ds3231.NewSim(clock.Now, settings.GetFloat(sSimTemperature)).Attach(sim, addr)
		sim.DebugDump(settings.GetBool(sDebug))
	}
	rt.bus = bus
	dev := ds3231.New(bus)
	dev.Address = addr
	rt.rtc = dev

	switch {
	case !simulated:
		rt.panel = &lcdPanel{}
		rt.buttons = newButtonSource(settings)
	case termOK:
		tp := &termPanel{}
		rt.panel = tp
		rt.buttons = tp
	default:
		rt.panel = &logPanel{}
		rt.buttons = &noButtons{}
	}
	if err := rt.panel.OpenPanel(settings); err != nil {
		return rt, errors.Wrap(err, "panel")
	}

	if broker := settings.GetString(sMQTTBroker); broker != "" {
		pub, err := newMQTTPublisher(broker, settings.GetString(sMQTTTopic))
		if err != nil {
			// telemetry is optional, keep going without it
			log.Printf("Error: mqtt: %s", err.Error())
			rt.pub = &noPublisher{}
		} else {
			rt.pub = pub
		}
	} else {
		rt.pub = &noPublisher{}
	}

	rt.configService = &httpConfigService{}
	return rt, nil
}

func closeHardware(rt runtimeConfig) {
	if rt.pub != nil {
		rt.pub.close()
	}
	if rt.panel != nil {
		rt.panel.ClosePanel()
	}
	if rt.segments != nil {
		rt.segments.Clear()
	}
	if rt.segOut != nil {
		rt.segOut.close()
	}
	if rt.bus != nil {
		rt.bus.Close()
	}
}
