package main

import (
	"context"
	"fmt"
	"time"

	"dscheirer.com/segclock/ds3231"
	"dscheirer.com/segclock/sevenseg"
)

// let the PWM outputs settle before the next pass
const dPWMSettle = 300 * time.Microsecond

const (
	statusIRQOn  = "  Interrupt!  "
	statusIRQOff = " Another IRQ! "
	timeFormat   = "03:04:05 PM"
)

// loopState is everything the main loop carries from one pass to the next
type loopState struct {
	counter    int
	colors     *colorCycle
	ledOn      bool
	rtcFailing bool
	interrupts uint32
	lines      map[int]string // last text sent for each panel row
	published  string         // time of the last published reading
}

func newLoopState() *loopState {
	return &loopState{
		colors: newColorCycle(),
		lines:  make(map[int]string),
	}
}

// sendLED queues an effect for the LED controller unless we are shutting down
func sendLED(rt runtimeConfig, e ledEffect) {
	select {
	case <-rt.comms.quit:
	case rt.comms.leds <- e:
	}
}

// showLine sends text for row when it differs from what is there
func (st *loopState) showLine(rt runtimeConfig, row int, text string, mode alignMode) {
	if cur, ok := st.lines[row]; ok && cur == text {
		return
	}
	if sendPanel(rt, panelText(row, text, mode)) {
		st.lines[row] = text
	}
}

func startMainLoop(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runMainLoop(rt)
	}()
}

func runMainLoop(rt runtimeConfig) {
	rt.logger = &threadLogger{name: "Main"}
	defer rt.logger.Println("Exiting runMainLoop")

	ctx, cancel := quitContext(rt.comms.quit)
	defer cancel()

	st := newLoopState()
	rt.segments.Clear()
	sendPanel(rt, panelClear())
	st.showLine(rt, rowSignature, rt.settings.GetString(sSignature), alignCenter)

	duration := rt.settings.GetDuration(sDisplayDuration)
	for {
		if err := mainLoopPass(ctx, rt, st, duration); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			rt.logger.Println("Got a quit signal")
			return
		case <-rt.clock.After(dPWMSettle):
		}
	}
}

// mainLoopPass runs one pass.  Only cancellation is returned, everything
// else is logged and the loop keeps going.
func mainLoopPass(ctx context.Context, rt runtimeConfig, st *loopState, duration time.Duration) error {
	rd := reading{Counter: st.counter}

	if err := rt.segments.DisplayNumber(ctx, st.counter, duration); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rt.logger.Printf("Error: %s", err.Error())
	}
	st.counter = (st.counter + 1) % (sevenseg.MaxNumber + 1)

	r, g, b := st.colors.next()
	rd.Color = [3]int{r, g, b}
	if err := setColor(rt.rgb, r, g, b); err != nil {
		rt.logger.Printf("Error: %s", err.Error())
	}

	pollRTC(rt, st, &rd)

	irq := handleIRQ(rt, st)
	driveStatusLED(rt, st, rd.RTCError != "", irq)
	rd.LED = st.ledOn
	rd.Interrupts = st.interrupts

	rt.status.update(rd)
	if irq || rd.Time != st.published {
		st.published = rd.Time
		payload, err := rd.payload()
		if err == nil {
			err = rt.pub.publish(payload)
		}
		if err != nil {
			rt.logger.Printf("Error: publish: %s", err.Error())
		}
	}
	return nil
}

func pollRTC(rt runtimeConfig, st *loopState, rd *reading) {
	celsius, err := rt.rtc.Temperature()
	if err != nil {
		rt.logger.Printf("Error: %s", err.Error())
		rd.RTCError = err.Error()
		st.showLine(rt, rowTemperature, "RTC error", alignCenter)
	} else {
		rd.Celsius = celsius
		rd.Fahrenheit = ds3231.CelsiusToFahrenheit(celsius)
		st.showLine(rt, rowTemperature, fmt.Sprintf("%4.2f F", rd.Fahrenheit), alignCenter)
	}

	epoch, err := rt.rtc.Epoch()
	if err != nil {
		if rd.RTCError == "" {
			rt.logger.Printf("Error: %s", err.Error())
			rd.RTCError = err.Error()
		}
		st.showLine(rt, rowTime, "RTC error", alignCenter)
		return
	}
	rd.Time = epoch.Local().Format(timeFormat)
	st.showLine(rt, rowTime, rd.Time, alignCenter)
}

// handleIRQ takes the edges seen since the last pass.  An odd count toggles
// the status LED, an even one leaves it where it was.
func handleIRQ(rt runtimeConfig, st *loopState) bool {
	n := rt.irq.take()
	if n == 0 {
		return false
	}
	st.interrupts += n
	if n%2 == 1 {
		st.ledOn = !st.ledOn
	}
	rt.logger.Printf("%d interrupt(s), status LED %v", n, st.ledOn)

	if st.ledOn {
		st.showLine(rt, rowStatus, statusIRQOn, alignCenter)
	} else {
		st.showLine(rt, rowStatus, statusIRQOff, alignCenter)
	}
	return true
}

// driveStatusLED blinks the status LED while the RTC is failing.  Otherwise
// the LED follows the interrupt toggle.
func driveStatusLED(rt runtimeConfig, st *loopState, failing bool, irq bool) {
	switch {
	case failing && !st.rtcFailing:
		sendLED(rt, ledBlink(pinStatusLED))
	case failing:
	case st.rtcFailing || irq:
		if st.ledOn {
			sendLED(rt, ledOn(pinStatusLED))
		} else {
			sendLED(rt, ledOff(pinStatusLED))
		}
	}
	st.rtcFailing = failing
}
