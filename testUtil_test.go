package main

import (
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"dscheirer.com/segclock/sevenseg"
	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

func logCaller(pc uintptr, file string, line int, ok bool) {
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn == nil {
		fnName = "?()"
	} else {
		dotName := filepath.Ext(fn.Name())
		fnName = strings.TrimLeft(dotName, ".") + "()"
	}

	log.Printf("Starting %s (%s:%d)", fnName, filepath.Base(file), line)
}

func testSettings() configSettings {
	s := defaultSettings()
	s.settings[sSimulated] = true
	s.settings[sLogFile] = ""
	s.settings[sDisplayDuration] = time.Duration(0)
	s.settings[sSettleDelay] = time.Duration(0)
	s.settings[sLCDCols] = 16
	s.settings[sLCDRows] = 4
	s.settings[sHTTPAddr] = ":8080"
	s.settings[sHTTPSecret] = "test"
	s.settings[sSignature] = "signed"
	return s
}

// fakeRTC reads the test clock
type fakeRTC struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	celsius float32
	err     error
	offset  time.Duration
	setTo   time.Time
}

func (f *fakeRTC) Epoch() (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return time.Time{}, f.err
	}
	return f.clock.Now().Add(f.offset), nil
}

func (f *fakeRTC) SetTime(t time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.setTo = t
	f.offset = t.Sub(f.clock.Now())
	return nil
}

func (f *fakeRTC) Temperature() (float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.celsius, nil
}

func (f *fakeRTC) drift(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offset = d
}

func (f *fakeRTC) lastSet() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setTo
}

func (f *fakeRTC) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func testRuntime() (runtimeConfig, clockwork.FakeClock, commChannels) {
	// log the start of the test
	logCaller(runtime.Caller(1))

	clock := clockwork.NewFakeClock()
	settings := testSettings()
	rt := initRuntime(settings, clock)

	rt.segOut = &logSegments{disableLog: true}
	rt.segOut.open()
	rt.segments = sevenseg.New(rt.segOut, clock, settings.GetDuration(sSettleDelay))
	rt.led = &logLed{}
	rt.rgb = &logRGB{}
	rt.rgb.init()
	rt.rtc = &fakeRTC{clock: clock, celsius: 25.75}
	p := &logPanel{disableLog: true}
	p.OpenPanel(settings)
	rt.panel = p
	rt.pub = &logPublisher{}
	rt.buttons = &noButtons{}
	rt.configService = &testConfigService{}

	return rt, clock, rt.comms
}

// testBlockDuration waits for a worker to sleep, then moves the clock on by
// advance in steps of at most blockDuration.  It returns once the worker is
// asleep again.
func testBlockDuration(clock clockwork.FakeClock, blockDuration time.Duration, advance time.Duration) {
	for advance > 0 {
		step := advance
		if step > blockDuration {
			step = blockDuration
		}
		clock.BlockUntil(1)
		clock.Advance(step)
		advance -= step
	}
	clock.BlockUntil(1)
}

// testQuit stops every worker and waits for them, waking any that sleep on
// the fake clock
func testQuit(rt runtimeConfig) {
	rt.comms.stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	fc, _ := rt.clock.(clockwork.FakeClock)
	for {
		select {
		case <-done:
			return
		default:
			if fc != nil {
				fc.Advance(time.Second)
			}
			time.Sleep(time.Millisecond)
		}
	}
}

// testStopNoAdvance stops every worker and fails unless they all return
// while the fake clock stands still
func testStopNoAdvance(t *testing.T, rt runtimeConfig) {
	t.Helper()
	rt.comms.stop()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("workers still running after stop")
	}
}

func ledRead(t *testing.T, c chan ledEffect) ledEffect {
	select {
	case e := <-c:
		return e
	default:
		assert.Assert(t, false, "Nothing to read from led channel")
	}
	return ledEffect{}
}

func ledNoRead(t *testing.T, c chan ledEffect) {
	select {
	case e := <-c:
		assert.Assert(t, false, "Got an unexpected value from led channel: %v", e)
	default:
	}
}
