package main

import "sync/atomic"

// buttonIRQ counts rising edges.  The edge callback only counts, the main
// loop takes the count and does the work.
type buttonIRQ struct {
	edges atomic.Uint32
}

func (b *buttonIRQ) fire() {
	b.edges.Add(1)
}

// take returns the edges seen since the last take
func (b *buttonIRQ) take() uint32 {
	return b.edges.Swap(0)
}

// noButtons is used when there is no button to watch
type noButtons struct{}

func (n *noButtons) start(rt runtimeConfig, fire func()) error {
	rt.logger.Println("No button source")
	return nil
}

func (n *noButtons) stop() {}
