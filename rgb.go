package main

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

type rgbChannel int

const (
	rgbRed rgbChannel = iota
	rgbGreen
	rgbBlue
	numRGBChannels
)

func (c rgbChannel) String() string {
	switch c {
	case rgbRed:
		return "red"
	case rgbGreen:
		return "green"
	case rgbBlue:
		return "blue"
	}
	return fmt.Sprintf("channel(%d)", int(c))
}

// 9us period
const rgbFrequency = 111111 * physic.Hertz

// dutyCycle scales a 0-100 intensity to the PWM duty range
func dutyCycle(intensity float32) gpio.Duty {
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 100 {
		intensity = 100
	}
	return gpio.Duty(float32(gpio.DutyMax) * intensity / 100)
}

// periphRGB drives the three colour pins with PWM
type periphRGB struct {
	pins [numRGBChannels]gpio.PinOut
}

func (p *periphRGB) init() error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}
	for ch, num := range [numRGBChannels]int{pinRed, pinGreen, pinBlue} {
		pin := gpioreg.ByName(fmt.Sprintf("GPIO%d", num))
		if pin == nil {
			return fmt.Errorf("no pin GPIO%d for %v", num, rgbChannel(ch))
		}
		p.pins[ch] = pin
	}
	return nil
}

func (p *periphRGB) setBrightness(ch rgbChannel, intensity float32) error {
	if ch < 0 || ch >= numRGBChannels {
		return fmt.Errorf("bad rgb channel %d", int(ch))
	}
	return errors.Wrapf(p.pins[ch].PWM(dutyCycle(intensity), rgbFrequency), "pwm %v", ch)
}

// logRGB remembers the last intensity of each channel
type logRGB struct {
	mu     sync.Mutex
	values [numRGBChannels]float32
	audit  []string
}

func (l *logRGB) init() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.audit = []string{}
	return nil
}

func (l *logRGB) setBrightness(ch rgbChannel, intensity float32) error {
	if ch < 0 || ch >= numRGBChannels {
		return fmt.Errorf("bad rgb channel %d", int(ch))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[ch] = intensity
	l.audit = append(l.audit, fmt.Sprintf("%v=%v", ch, intensity))
	return nil
}

func (l *logRGB) color() [numRGBChannels]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.values
}

// colorCycle walks red 0-90, green 5-95 and blue 0-95, blue fastest
type colorCycle struct {
	r, g, b int
}

func newColorCycle() *colorCycle {
	return &colorCycle{g: 5}
}

// next returns the current colour and steps to the following one
func (c *colorCycle) next() (r, g, b int) {
	r, g, b = c.r, c.g, c.b
	c.b += 5
	if c.b > 95 {
		c.b = 0
		c.g += 10
	}
	if c.g > 95 {
		c.g = 5
		c.r += 10
	}
	if c.r > 90 {
		c.r = 0
	}
	return r, g, b
}

func setColor(l rgbLed, r, g, b int) error {
	for ch, v := range [numRGBChannels]int{r, g, b} {
		if err := l.setBrightness(rgbChannel(ch), float32(v)); err != nil {
			return err
		}
	}
	return nil
}
