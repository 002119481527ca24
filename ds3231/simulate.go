package ds3231

import (
	"sync"
	"time"

	"dscheirer.com/segclock/i2c"
)

// Registers returns the register file of a chip holding t (24 hour mode) and
// the raw temperature rawTemp.  Years outside 2000-2199 are clamped, the chip
// has no way to hold them.
func Registers(t time.Time, rawTemp uint16) []byte {
	t = t.UTC()
	year := t.Year()
	if year < minYear {
		year = minYear
	}
	if year > maxYear {
		year = maxYear
	}
	var century byte
	if year >= minYear+100 {
		century = 0x80
	}

	regs := make([]byte, NumRegisters)
	regs[regTime+0] = decToBcd(t.Second())
	regs[regTime+1] = decToBcd(t.Minute())
	regs[regTime+2] = decToBcd(t.Hour())
	regs[regTime+3] = decToBcd(int(t.Weekday()) + 1)
	regs[regTime+4] = decToBcd(t.Day())
	regs[regTime+5] = decToBcd(int(t.Month())) | century
	regs[regTime+6] = decToBcd(year % 100)
	regs[regTempMSB] = byte(rawTemp >> 8)
	regs[regTempLSB] = byte(rawTemp)
	return regs
}

// timeFromRegisters decodes the seven time registers
func timeFromRegisters(regs []byte) time.Time {
	hour := bcdToDec(regs[regTime+2] & 0x3f)
	if regs[regTime+2]&0x40 != 0 {
		// 12 hour mode, bit 5 is PM
		hour = bcdToDec(regs[regTime+2]&0x1f) % 12
		if regs[regTime+2]&0x20 != 0 {
			hour += 12
		}
	}
	year := minYear + bcdToDec(regs[regTime+6])
	if regs[regTime+5]&0x80 != 0 {
		year += 100
	}
	return time.Date(year,
		time.Month(bcdToDec(regs[regTime+5]&0x1f)),
		bcdToDec(regs[regTime+4]&0x3f),
		hour,
		bcdToDec(regs[regTime+1]&0x7f),
		bcdToDec(regs[regTime+0]&0x7f),
		0, time.UTC)
}

// CelsiusToRaw is the inverse of RawToCelsius, rounded down to the quarter
// degree
func CelsiusToRaw(c float32) uint16 {
	whole := uint16(c)
	quarters := uint16((c - float32(whole)) * 4)
	return whole<<8 | (quarters&0x3)<<6
}

func decToBcd(dec int) uint8 {
	return uint8(dec + 6*(dec/10))
}

func bcdToDec(bcd uint8) int {
	return int(bcd>>4)*10 + int(bcd&0x0f)
}

// Sim is a chip on a simulated bus.  It keeps time as an offset from now, so
// it runs with the host clock and a time write moves it.
type Sim struct {
	mu     sync.Mutex
	now    func() time.Time
	offset time.Duration
	raw    uint16
}

// NewSim returns a chip reading celsius, running from now
func NewSim(now func() time.Time, celsius float32) *Sim {
	return &Sim{now: now, raw: CelsiusToRaw(celsius)}
}

// Attach places the chip on bus at addr
func (s *Sim) Attach(bus *i2c.SimBus, addr uint16) {
	bus.Seed(addr, s.registers())
	bus.OnRead(addr, func(regs []byte) {
		copy(regs, s.registers())
	})
	bus.OnWrite(addr, s.written)
}

// Now is the time the chip holds
func (s *Sim) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Add(s.offset)
}

func (s *Sim) registers() []byte {
	return Registers(s.Now(), s.raw)
}

// written picks up a write to any of the time registers
func (s *Sim) written(reg int, regs []byte) {
	if reg > regTime+6 {
		return
	}
	t := timeFromRegisters(regs)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = t.Sub(s.now())
}
