package main

import (
	"log"
	"strings"
	"sync"

	"dscheirer.com/segclock/sevenseg"
)

// logSegments stands in for the 7-seg lines.  It decodes each multiplexed
// digit back to a character and logs the number whenever it changes.
type logSegments struct {
	mu         sync.Mutex
	segments   [sevenseg.NumSegments]bool
	anodes     [sevenseg.NumDigits]bool
	latched    [sevenseg.NumDigits]string
	curDisplay string
	disableLog bool
	audit      []string
}

func (ls *logSegments) open() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.curDisplay = ""
	ls.audit = []string{}
	return nil
}

func (ls *logSegments) close() {}

func (ls *logSegments) SetSegment(seg int, high bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.segments[seg] = high
}

func (ls *logSegments) SetAnode(pos sevenseg.Position, high bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.anodes[pos] = high
	if !high {
		return
	}

	// active low segment lines back to a pattern
	var mask byte
	for seg, h := range ls.segments {
		if !h {
			mask |= 0x80 >> uint(seg)
		}
	}
	ch := "?"
	if v, ok := sevenseg.Decode(mask); ok {
		ch = strings.ToUpper(string("0123456789abcdef"[v]))
	} else if mask == 0 {
		ch = " "
	}
	ls.latched[pos] = ch

	// the ones digit ends a frame
	if pos != sevenseg.Ones {
		return
	}
	frame := ls.latched[sevenseg.Hundreds] + ls.latched[sevenseg.Tens] + ls.latched[sevenseg.Ones]
	if frame != ls.curDisplay {
		if !ls.disableLog {
			log.Printf("7seg: %s", frame)
		}
		ls.audit = append(ls.audit, frame)
	}
	ls.curDisplay = frame
}

// display returns the last complete frame
func (ls *logSegments) display() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.curDisplay
}

// activeAnodes counts the enabled digits
func (ls *logSegments) activeAnodes() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	n := 0
	for _, on := range ls.anodes {
		if on {
			n++
		}
	}
	return n
}
