package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

// segclock -config={config file} [-sim] [-settime]
func main() {
	configFile := flag.String("config", "", "JSON or YAML settings file")
	sim := flag.Bool("sim", false, "simulate the hardware")
	setTime := flag.Bool("settime", false, "write the host time to the RTC and exit")
	flag.Parse()

	settings := initSettings(*configFile)
	if *sim {
		settings.settings[sSimulated] = true
	}
	simulated := settings.GetBool(sSimulated)

	// the terminal belongs to the simulated LCD when there is a log file
	lj, err := setupLogging(settings, !simulated)
	if err != nil {
		log.Printf("Error: %s, logging to stderr", err.Error())
	}
	if lj != nil {
		defer lj.Close()
	}

	log.Println("\n>>> Settings <<<")
	settings.Dump()
	log.Println(">>> Settings <<<")

	rt, err := initHardware(settings, clockwork.NewRealClock(), simulated && lj != nil)
	if err != nil {
		closeHardware(rt)
		log.Fatalf("Error: %s", err.Error())
	}
	defer closeHardware(rt)

	if *setTime {
		now := rt.clock.Now()
		if err := rt.rtc.SetTime(now); err != nil {
			log.Printf("Error: %s", err.Error())
			return
		}
		log.Printf("RTC set to %s", now.UTC())
		return
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			log.Printf("Got %v, shutting down", s)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	if err := rt.buttons.start(rt, rt.irq.fire); err != nil {
		log.Printf("Error: %s", err.Error())
	}
	defer rt.buttons.stop()

	startLEDController(rt)
	startPanel(rt)
	startMainLoop(rt)
	startRTCWatcher(rt)
	if settings.GetString(sHTTPAddr) != "" {
		startConfigService(rt)
	}

	wg.Wait()
	log.Println("All workers done")
}
