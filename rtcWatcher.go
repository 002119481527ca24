package main

import "time"

// how often the RTC is compared with the host clock
const dRTCCheckSleep = 10 * time.Minute

func startRTCWatcher(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runRTCWatcher(rt)
	}()
}

// runRTCWatcher compares the RTC with the host clock (kept right by NTP on
// the Pi) and, with rtcSync on, writes the host time back when they drift
// apart.
func runRTCWatcher(rt runtimeConfig) {
	rt.logger = &threadLogger{name: "RTCWatcher"}
	defer rt.logger.Println("Exiting runRTCWatcher")

	maxDrift := rt.settings.GetDuration(sRTCMaxDrift)
	resync := rt.settings.GetBool(sRTCSync)

	for {
		checkRTCDrift(rt, maxDrift, resync)
		select {
		case <-rt.comms.quit:
			rt.logger.Println("Got a quit signal")
			return
		case <-rt.clock.After(dRTCCheckSleep):
		}
	}
}

// checkRTCDrift returns how far the RTC is off the host clock
func checkRTCDrift(rt runtimeConfig, maxDrift time.Duration, resync bool) time.Duration {
	epoch, err := rt.rtc.Epoch()
	if err != nil {
		rt.logger.Printf("Error: %s", err.Error())
		return 0
	}
	now := rt.clock.Now()
	diff := now.Sub(epoch)
	if diff <= maxDrift && diff >= -maxDrift {
		return diff
	}

	rt.logger.Printf("RTC is off by %v", diff)
	if resync {
		if err := rt.rtc.SetTime(now); err != nil {
			rt.logger.Printf("Error: %s", err.Error())
		} else {
			rt.logger.Printf("RTC set to %s", now.UTC())
		}
	}
	return diff
}
