package ds3231

import (
	"testing"
	"time"

	"dscheirer.com/segclock/i2c"
	"github.com/pkg/errors"
	"gotest.tools/assert"
)

func setup(t time.Time, raw uint16) (*i2c.SimBus, *Device) {
	bus := i2c.NewSimBus()
	bus.Seed(Address, Registers(t, raw))
	return bus, New(bus)
}

func TestRawToCelsius(t *testing.T) {
	cases := []struct {
		raw  uint16
		want float32
	}{
		{0x1900, 25.0},
		{0x1940, 25.25},
		{0x1980, 25.5},
		{0x19C0, 25.75},
		{0x0000, 0},
		// the low six bits are not part of the reading
		{0x193F, 25.0},
	}
	for _, c := range cases {
		assert.Equal(t, RawToCelsius(c.raw), c.want, "raw 0x%04x", c.raw)
	}
}

func TestRawToCelsiusBelowFreezing(t *testing.T) {
	// -1.0C on the chip is 0xFF00, the upper byte is not sign extended
	assert.Equal(t, RawToCelsius(0xFF00), float32(255))
}

func TestCelsiusToRaw(t *testing.T) {
	assert.Equal(t, CelsiusToRaw(25.75), uint16(0x19C0))
	assert.Equal(t, CelsiusToRaw(21.3), uint16(0x1540))
}

func TestCelsiusToFahrenheit(t *testing.T) {
	assert.Equal(t, CelsiusToFahrenheit(100), float32(212))
	assert.Equal(t, CelsiusToFahrenheit(25), float32(77))
}

func TestTemperature(t *testing.T) {
	_, dev := setup(time.Now(), 0x1940)
	raw, err := dev.RawTemperature()
	assert.NilError(t, err)
	assert.Equal(t, raw, uint16(0x1940))

	c, err := dev.Temperature()
	assert.NilError(t, err)
	assert.Equal(t, c, float32(25.25))
}

func TestEpoch(t *testing.T) {
	when := time.Date(2018, 12, 15, 10, 54, 7, 0, time.UTC)
	_, dev := setup(when, 0)

	got, err := dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(when), "got %v", got)
}

func TestSetTime(t *testing.T) {
	_, dev := setup(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	when := time.Date(2021, 7, 4, 23, 59, 30, 0, time.UTC)

	assert.NilError(t, dev.SetTime(when))
	got, err := dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(when), "got %v", got)
}

func TestReadFailures(t *testing.T) {
	bus, dev := setup(time.Now(), 0x1900)
	bus.Fail(errors.New("nack"))

	_, err := dev.Temperature()
	assert.Equal(t, errors.Cause(err), ErrReadFailed)
	assert.ErrorContains(t, err, "nack")

	_, err = dev.Epoch()
	assert.Equal(t, errors.Cause(err), ErrReadFailed)
}

func TestSetTimeYearRange(t *testing.T) {
	_, dev := setup(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 0)

	err := dev.SetTime(time.Date(1984, 4, 4, 3, 0, 7, 0, time.UTC))
	assert.Equal(t, errors.Cause(err), ErrYearRange)
	err = dev.SetTime(time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, errors.Cause(err), ErrYearRange)
}

func TestRegistersCentury(t *testing.T) {
	for _, when := range []time.Time{
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2150, 6, 30, 12, 30, 45, 0, time.UTC),
	} {
		got := timeFromRegisters(Registers(when, 0))
		assert.Assert(t, got.Equal(when), "got %v for %v", got, when)
	}

	// before the chip's first year
	got := timeFromRegisters(Registers(time.Date(1984, 4, 4, 3, 0, 7, 0, time.UTC), 0))
	assert.Equal(t, got.Year(), 2000)
}

func TestTimeFromRegisters12Hour(t *testing.T) {
	regs := Registers(time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC), 0)
	// 11 PM in 12 hour mode
	regs[regTime+2] = 0x40 | 0x20 | 0x11
	assert.Equal(t, timeFromRegisters(regs).Hour(), 23)
	// 12 AM
	regs[regTime+2] = 0x40 | 0x12
	assert.Equal(t, timeFromRegisters(regs).Hour(), 0)
}

func TestSimFollowsClock(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	sim := NewSim(func() time.Time { return now }, 25.75)
	bus := i2c.NewSimBus()
	sim.Attach(bus, Address)
	dev := New(bus)

	got, err := dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(base), "got %v", got)

	now = base.Add(90 * time.Second)
	got, err = dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(now), "got %v", got)

	c, err := dev.Temperature()
	assert.NilError(t, err)
	assert.Equal(t, c, float32(25.75))
}

func TestSimKeepsTimeWrites(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	sim := NewSim(func() time.Time { return now }, 20)
	bus := i2c.NewSimBus()
	sim.Attach(bus, Address)
	dev := New(bus)

	when := time.Date(2031, 11, 2, 3, 0, 7, 0, time.UTC)
	assert.NilError(t, dev.SetTime(when))
	got, err := dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(when), "got %v", got)
	assert.Assert(t, sim.Now().Equal(when))

	// and it keeps running from there
	now = now.Add(time.Minute)
	got, err = dev.Epoch()
	assert.NilError(t, err)
	assert.Assert(t, got.Equal(when.Add(time.Minute)), "got %v", got)
}
