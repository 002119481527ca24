// Package ds3231 reads the time and the temperature sensor of a DS3231
// real-time clock module.
package ds3231

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"
)

// Address is the fixed I2C address of the DS3231
const Address = 0x68

// registers we use directly, the time registers are handled by the driver
const (
	regTime    = 0x00
	regTempMSB = 0x11
	regTempLSB = 0x12
	// NumRegisters is the size of the register file
	NumRegisters = 0x13
)

// ErrReadFailed is returned when the bus fails during a read
var ErrReadFailed = errors.New("ds3231 read failed")

// ErrYearRange is returned when setting a time the clock cannot take
var ErrYearRange = errors.New("ds3231 set time needs a year in 2000-2099")

// years the chip counts, two BCD digits and a century bit.  The driver never
// writes the century bit, so a time can only be set within the first century.
const (
	minYear    = 2000
	maxYear    = 2199
	maxSetYear = 2099
)

// Device is a DS3231 on an I2C bus.  It is safe for use from more than one
// goroutine.
type Device struct {
	mu      sync.Mutex
	bus     drivers.I2C
	rtc     ds3231.Device
	Address uint16
}

// New returns a device on bus at the default address
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		rtc:     ds3231.New(bus),
		Address: Address,
	}
}

// Epoch reads the current time from the clock
func (d *Device) Epoch() (time.Time, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rtc.Address = d.Address
	t, err := d.rtc.ReadTime()
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrReadFailed, "time: %v", err)
	}
	return t, nil
}

// SetTime writes t to the clock
func (d *Device) SetTime(t time.Time) error {
	if y := t.UTC().Year(); y < minYear || y > maxSetYear {
		return errors.Wrapf(ErrYearRange, "set time %d", y)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rtc.Address = d.Address
	if err := d.rtc.SetTime(t.UTC()); err != nil {
		return errors.Wrap(err, "ds3231 set time")
	}
	return nil
}

// RawTemperature reads the temperature MSB and LSB registers as one value,
// MSB in the high byte
func (d *Device) RawTemperature() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [2]byte
	if err := d.bus.Tx(d.Address, []byte{regTempMSB}, buf[:]); err != nil {
		return 0, errors.Wrapf(ErrReadFailed, "temperature: %v", err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// Temperature reads the temperature sensor in degrees Celsius
func (d *Device) Temperature() (float32, error) {
	raw, err := d.RawTemperature()
	if err != nil {
		return 0, err
	}
	return RawToCelsius(raw), nil
}

// RawToCelsius converts the raw temperature registers to degrees Celsius.  The
// MSB is the whole degrees and bits 7 and 6 of the LSB are quarter degrees.
//
// The MSB is read as unsigned, so readings below freezing (two's complement on
// the chip) come out as large positive values.
func RawToCelsius(raw uint16) float32 {
	whole := float32(raw >> 8)
	quarters := float32((raw >> 6) & 0x3)
	return whole + quarters*0.25
}

// CelsiusToFahrenheit converts a temperature for display
func CelsiusToFahrenheit(c float32) float32 {
	return c*9/5 + 32
}
