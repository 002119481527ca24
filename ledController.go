package main

import (
	"time"
)

const (
	modeOff = iota
	modeOn
	modeBlink // lit for the first half of every second
)

const (
	// lowest resolution of a blink
	dLEDSleep  = 100 * time.Millisecond
	dBlinkHalf = 500 * time.Millisecond
)

type ledEffect struct {
	pin        int
	mode       int
	applied    bool      // rt setting, the pin has been driven for this mode
	lit        bool      // rt setting, what the pin shows now
	lastUpdate time.Time // rt setting, last time we changed the state
}

func ledOn(pin int) ledEffect {
	return ledEffect{pin: pin, mode: modeOn}
}

func ledOff(pin int) ledEffect {
	return ledEffect{pin: pin, mode: modeOff}
}

func ledBlink(pin int) ledEffect {
	return ledEffect{pin: pin, mode: modeBlink}
}

func diffLEDEffect(effect1 ledEffect, effect2 ledEffect) bool {
	return effect1.mode != effect2.mode || effect1.pin != effect2.pin
}

func startLEDController(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runLEDController(rt)
	}()
}

// runLEDController owns the status LED.  The main loop asks for a mode with
// a message and this worker does the blinking.
func runLEDController(rt runtimeConfig) {
	rt.logger = &threadLogger{name: "LEDs"}
	defer rt.logger.Println("Exiting runLEDController")

	comms := rt.comms
	leds := make(map[int]ledEffect)

	rt.led.init()

	for {
		// read all incoming messages at once
		keepReading := true
		for keepReading {
			select {
			case <-comms.quit:
				rt.logger.Println("Got a quit signal")
				return
			case msg := <-comms.leds:
				if val, ok := leds[msg.pin]; !ok || diffLEDEffect(val, msg) {
					rt.logger.Printf("Received led message: %v", msg)
					leds[msg.pin] = ledEffect{pin: msg.pin, mode: msg.mode}
				}
			default:
				keepReading = false
			}
		}

		now := rt.clock.Now()
		for i, v := range leds {
			switch {
			case !v.applied:
				v.lit = v.mode != modeOff
				v.applied = true
			case v.mode == modeBlink && now.Sub(v.lastUpdate) >= dBlinkHalf:
				v.lit = !v.lit
			default:
				continue
			}
			rt.led.set(v.pin, v.lit)
			v.lastUpdate = now
			leds[i] = v
		}

		select {
		case <-comms.quit:
			rt.logger.Println("Got a quit signal")
			return
		case <-rt.clock.After(dLEDSleep):
		}
	}
}
