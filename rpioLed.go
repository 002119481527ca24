package main

import (
	"log"

	"github.com/stianeikeland/go-rpio"
)

// rpioLed drives LEDs hung straight off a GPIO pin
type rpioLed struct {
}

func (rpi *rpioLed) init() {
	// memory map is shared with the segment lines, opening twice is harmless
	if err := rpio.Open(); err != nil {
		log.Fatalf(err.Error())
	}
}

func (rpi *rpioLed) set(pinNum int, on bool) {
	pin := rpio.Pin(pinNum)
	pin.Output()
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}

func (rpi *rpioLed) on(pin int) {
	rpi.set(pin, true)
}

func (rpi *rpioLed) off(pin int) {
	rpi.set(pin, false)
}
