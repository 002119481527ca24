// Package lcd drives an HD44780 compatible character LCD in 4-bit mode over
// GPIO pins (using periph.io).  RW is assumed tied to ground, so the busy flag
// is never read and every command waits out its worst case execution time.
package lcd

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// instruction set
const (
	cmdClear      = 0b00000001
	cmdEntryMode  = 0b00000100
	cmdDisplay    = 0b00001000
	cmdFunction   = 0b00100000
	cmdSetDDRAM   = 0b10000000
	entryIncr     = 0b00000010
	displayOn     = 0b00000100
	functionLines = 0b00001000
)

// execution times, from the data sheet with some slack
const (
	tExec  = 50 * time.Microsecond
	tClear = 2 * time.Millisecond
	tPower = 50 * time.Millisecond
)

// DD RAM address of the first column of each row
var rowOffsets = [4]uint8{0x00, 0x40, 0x14, 0x54}

// HD44780 is a character LCD with its data lines D4-D7 connected
type HD44780 struct {
	RS, E gpio.PinOut    // register select, enable signal
	DB    [4]gpio.PinOut // data bits 4 - 7
	Cols  int
	Rows  int

	sleep func(time.Duration)
}

func (h *HD44780) wait(d time.Duration) {
	if h.sleep == nil {
		time.Sleep(d)
		return
	}
	h.sleep(d)
}

// Init runs the 4-bit initialisation sequence, then turns the display on
// with no cursor and clears it.
func (h *HD44780) Init() error {
	if h.Rows < 1 || h.Rows > len(rowOffsets) {
		return fmt.Errorf("unsupported row count %d", h.Rows)
	}
	h.wait(tPower)
	if err := h.RS.Out(gpio.Low); err != nil {
		return err
	}
	// three 8-bit function sets, then switch to 4-bit
	for _, nibble := range []uint8{0x3, 0x3, 0x3, 0x2} {
		if err := h.writeNibble(nibble); err != nil {
			return err
		}
		h.wait(5 * time.Millisecond)
	}

	var function uint8 = cmdFunction
	if h.Rows > 1 {
		function |= functionLines
	}
	for _, c := range []uint8{function, cmdDisplay | displayOn, cmdEntryMode | entryIncr} {
		if err := h.Command(c); err != nil {
			return err
		}
	}
	return h.Clear()
}

// Command sends an instruction
func (h *HD44780) Command(c uint8) error {
	if err := h.RS.Out(gpio.Low); err != nil {
		return err
	}
	return h.writeByte(c)
}

// WriteData writes a character at the cursor
func (h *HD44780) WriteData(b uint8) error {
	if err := h.RS.Out(gpio.High); err != nil {
		return err
	}
	return h.writeByte(b)
}

// Clear clears the display and returns the cursor to the home position
func (h *HD44780) Clear() error {
	if err := h.Command(cmdClear); err != nil {
		return err
	}
	h.wait(tClear)
	return nil
}

// SetCursor moves the cursor to col, row
func (h *HD44780) SetCursor(col, row int) error {
	if row < 0 || row >= h.Rows || col < 0 || col >= h.Cols {
		return fmt.Errorf("cursor %d,%d outside %dx%d", col, row, h.Cols, h.Rows)
	}
	return h.Command(cmdSetDDRAM | (rowOffsets[row] + uint8(col)))
}

// Display writes s from the cursor on
func (h *HD44780) Display(s string) error {
	for i := 0; i < len(s); i++ {
		if err := h.WriteData(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteLine replaces the whole of row with s, cut or padded with spaces to
// the display width
func (h *HD44780) WriteLine(row int, s string) error {
	if len(s) > h.Cols {
		s = s[:h.Cols]
	}
	s += strings.Repeat(" ", h.Cols-len(s))
	if err := h.SetCursor(0, row); err != nil {
		return err
	}
	return h.Display(s)
}

func (h *HD44780) writeByte(b uint8) error {
	if err := h.writeNibble(b >> 4); err != nil {
		return err
	}
	if err := h.writeNibble(b & 0xf); err != nil {
		return err
	}
	h.wait(tExec)
	return nil
}

// writeNibble puts n on D4-D7 and pulses E, the LCD latches on the falling
// edge
func (h *HD44780) writeNibble(n uint8) error {
	for i := range h.DB {
		if err := h.DB[i].Out(n&(1<<uint(i)) != 0); err != nil {
			return err
		}
	}
	if err := h.E.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(500 * time.Nanosecond) // PWEH > 450ns
	return h.E.Out(gpio.Low)
}
