package main

import (
	"dscheirer.com/segclock/sevenseg"
	"github.com/stianeikeland/go-rpio"
)

// rpioSegments drives the 7-seg lines straight from the GPIO registers
type rpioSegments struct {
	segments [sevenseg.NumSegments]rpio.Pin
	anodes   [sevenseg.NumDigits]rpio.Pin
}

func (rs *rpioSegments) open() error {
	if err := rpio.Open(); err != nil {
		return err
	}

	for i, p := range pinSegments {
		rs.segments[i] = rpio.Pin(p)
		rs.segments[i].Output()
	}
	rs.anodes[sevenseg.Ones] = rpio.Pin(pinAnodeOnes)
	rs.anodes[sevenseg.Tens] = rpio.Pin(pinAnodeTens)
	rs.anodes[sevenseg.Hundreds] = rpio.Pin(pinAnodeHundreds)
	for _, a := range rs.anodes {
		a.Output()
	}
	return nil
}

func (rs *rpioSegments) close() {
	// leave it dark
	for _, s := range rs.segments {
		s.High()
	}
	for _, a := range rs.anodes {
		a.Low()
	}
	rpio.Close()
}

func level(high bool) rpio.State {
	if high {
		return rpio.High
	}
	return rpio.Low
}

func (rs *rpioSegments) SetSegment(seg int, high bool) {
	rs.segments[seg].Write(level(high))
}

func (rs *rpioSegments) SetAnode(pos sevenseg.Position, high bool) {
	rs.anodes[pos].Write(level(high))
}
