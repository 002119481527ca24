package main

import (
	"fmt"
	"sync"
)

type logLed struct {
	mu         sync.Mutex
	leds       []bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init() {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds = make([]bool, 32)
	ll.audit = make([]string, 0)
	ll.logger = &threadLogger{name: "LEDs"}
}

func (ll *logLed) set(pinNum int, on bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds[pinNum] = on
	msg := fmt.Sprintf("Set LED %v to %v", pinNum, on)
	if !ll.disableLog {
		ll.logger.Println(msg)
	}
	ll.audit = append(ll.audit, msg)
}

func (ll *logLed) on(pinNum int) {
	ll.set(pinNum, true)
}

func (ll *logLed) off(pinNum int) {
	ll.set(pinNum, false)
}

func (ll *logLed) isOn(pinNum int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[pinNum]
}

func (ll *logLed) auditCount() int {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return len(ll.audit)
}
