// Package i2c opens the I2C bus the clock module hangs off, either through
// periph.io or as an in-memory simulation for development off the Pi.
package i2c

import (
	"fmt"
	"log"
	"sync"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Bus runs write-then-read transactions against devices on the bus
type Bus interface {
	Tx(addr uint16, w, r []byte) error
	Close() error
}

// Open a connection to the bus called name ("" for the first one found)
func Open(name string, simulated bool) (Bus, error) {
	if simulated {
		return NewSimBus(), nil
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %q", name)
	}
	return &periphBus{bus: b}, nil
}

type periphBus struct {
	bus i2c.BusCloser
}

func (p *periphBus) Tx(addr uint16, w, r []byte) error {
	return p.bus.Tx(addr, w, r)
}

func (p *periphBus) Close() error {
	return p.bus.Close()
}

// SimBus is a bus of register-file devices.  A write sets the register
// pointer from its first byte and stores the rest, a read returns registers
// from the pointer on.
type SimBus struct {
	mu      sync.Mutex
	regs    map[uint16][]byte
	refresh map[uint16]func(regs []byte)
	written map[uint16]func(reg int, regs []byte)
	fail    error
	dump    bool
}

// NewSimBus returns an empty simulated bus
func NewSimBus() *SimBus {
	return &SimBus{
		regs:    make(map[uint16][]byte),
		refresh: make(map[uint16]func(regs []byte)),
		written: make(map[uint16]func(reg int, regs []byte)),
	}
}

// Seed places a device with the given registers at addr
func (s *SimBus) Seed(addr uint16, regs []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[addr] = append([]byte(nil), regs...)
}

// OnRead calls f with the registers of addr before every read from it
func (s *SimBus) OnRead(addr uint16, f func(regs []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[addr] = f
}

// OnWrite calls f with the first register written and the whole register
// file after every write to addr
func (s *SimBus) OnWrite(addr uint16, f func(reg int, regs []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[addr] = f
}

// Fail makes every transaction return err, nil puts the bus back
func (s *SimBus) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// DebugDump logs every write
func (s *SimBus) DebugDump(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dump = on
}

func logWrite(addr uint16, buf []byte) {
	line := fmt.Sprintf("Write 0x%02x : ", addr)
	for i := 0; i < len(buf); i++ {
		line += fmt.Sprintf("%02x ", buf[i])
	}
	log.Println(line)
}

// Tx runs one transaction
func (s *SimBus) Tx(addr uint16, w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}
	regs, ok := s.regs[addr]
	if !ok {
		return fmt.Errorf("no device at 0x%02x", addr)
	}
	if len(w) == 0 {
		return fmt.Errorf("no register pointer for 0x%02x", addr)
	}
	if s.dump {
		logWrite(addr, w)
	}

	reg := int(w[0])
	if reg+len(w)-1 > len(regs) || reg+len(r) > len(regs) {
		return fmt.Errorf("register 0x%02x out of range for 0x%02x", reg, addr)
	}
	copy(regs[reg:], w[1:])
	if f := s.written[addr]; f != nil && len(w) > 1 {
		f(reg, regs)
	}

	if len(r) > 0 {
		if f := s.refresh[addr]; f != nil {
			f(regs)
		}
		copy(r, regs[reg:])
	}
	return nil
}

// Close is a no-op for the simulation
func (s *SimBus) Close() error {
	return nil
}
