// Package sevenseg drives a multiplexed, three digit, common anode 7-segment
// display wired directly to GPIO lines (one line per segment, one per anode).
package sevenseg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Position selects which digit's anode is enabled.
type Position int

// digit positions, right to left
const (
	Ones Position = iota
	Tens
	Hundreds
)

// NumDigits is the number of anodes on the display
const NumDigits = 3

// segment line indexes, clockwise from the top, then the middle and the
// decimal point
const (
	SegA = iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	SegDP
	NumSegments
)

// MaxNumber is the largest value DisplayNumber accepts
const MaxNumber = 999

// ErrOutOfRange is returned for a digit, number or position that the display
// can't show.
var ErrOutOfRange = errors.New("value out of displayable range")

// patterns holds the lit segments for each hex digit, bit 7 is segment a and
// bit 0 is the decimal point.  A 1 means the segment is lit.
var patterns = [16]byte{
	//abcdefgp
	0b11111100, // 0
	0b01100000, // 1
	0b11011010, // 2
	0b11110010, // 3
	0b01100110, // 4
	0b10110110, // 5
	0b10111110, // 6
	0b11100000, // 7
	0b11111110, // 8
	0b11110110, // 9
	0b11101110, // A
	0b00111110, // b
	0b10011100, // C
	0b01111010, // d
	0b10011110, // E
	0b10001110, // F
}

// Outputs is the set of GPIO lines the display is wired to.  Levels are the
// physical levels on the pins.
type Outputs interface {
	SetSegment(seg int, high bool)
	SetAnode(pos Position, high bool)
}

func (p Position) String() string {
	switch p {
	case Ones:
		return "ones"
	case Tens:
		return "tens"
	case Hundreds:
		return "hundreds"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Pattern returns the segment mask for a digit value 0-15
func Pattern(value int) (byte, error) {
	if value < 0 || value >= len(patterns) {
		return 0, fmt.Errorf("digit %d: %w", value, ErrOutOfRange)
	}
	return patterns[value], nil
}

// Decode maps a segment mask back to its digit value, the decimal point is
// ignored.
func Decode(mask byte) (int, bool) {
	for i, p := range patterns {
		if p == mask&^1 {
			return i, true
		}
	}
	return -1, false
}

// Digits breaks a number 0-999 into its hundreds, tens and ones
func Digits(value int) (hundreds, tens, ones int, err error) {
	if value < 0 || value > MaxNumber {
		return 0, 0, 0, fmt.Errorf("number %d: %w", value, ErrOutOfRange)
	}
	hundreds = value / 100
	tens = (value % 100) / 10
	ones = value % 10
	return hundreds, tens, ones, nil
}

// Driver multiplexes the digits of a display.  It is not safe for use from
// more than one goroutine.
type Driver struct {
	out    Outputs
	clock  clockwork.Clock
	settle time.Duration
}

// New returns a driver for out.  Each digit is held lit for settle before the
// next one is selected.
func New(out Outputs, clock clockwork.Clock, settle time.Duration) *Driver {
	return &Driver{out: out, clock: clock, settle: settle}
}

// Clear turns every segment off and disables all of the anodes
func (d *Driver) Clear() {
	// common anode, high is off
	for seg := 0; seg < NumSegments; seg++ {
		d.out.SetSegment(seg, true)
	}
	d.selectAnode(-1)
}

// selectAnode enables pos and disables the others, every line is written on
// each call so no other digit ghosts.  A pos outside the display disables all.
func (d *Driver) selectAnode(pos Position) {
	for p := Ones; p <= Hundreds; p++ {
		d.out.SetAnode(p, p == pos)
	}
}

// DisplayDigit lights value on the digit at pos, then holds it for the
// settle delay.
func (d *Driver) DisplayDigit(ctx context.Context, pos Position, value int) error {
	if pos < Ones || pos > Hundreds {
		return fmt.Errorf("position %d: %w", int(pos), ErrOutOfRange)
	}
	mask, err := Pattern(value)
	if err != nil {
		return err
	}

	// common anode, so a low segment line is lit
	for seg := 0; seg < NumSegments; seg++ {
		lit := mask&(0x80>>uint(seg)) != 0
		d.out.SetSegment(seg, !lit)
	}
	d.selectAnode(pos)

	return d.hold(ctx)
}

func (d *Driver) hold(ctx context.Context) error {
	if d.settle <= 0 {
		return ctx.Err()
	}
	select {
	case <-d.clock.After(d.settle):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DisplayNumber shows value for at least duration by cycling through the
// hundreds, tens and ones digits.  At least one full cycle is always shown.
func (d *Driver) DisplayNumber(ctx context.Context, value int, duration time.Duration) error {
	hundreds, tens, ones, err := Digits(value)
	if err != nil {
		return err
	}

	frame := [NumDigits]struct {
		pos   Position
		value int
	}{
		{Hundreds, hundreds},
		{Tens, tens},
		{Ones, ones},
	}

	start := d.clock.Now()
	for {
		for _, f := range frame {
			if err := d.DisplayDigit(ctx, f.pos, f.value); err != nil {
				return err
			}
		}
		if d.clock.Now().Sub(start) >= duration {
			return nil
		}
	}
}
