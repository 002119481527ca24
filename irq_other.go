//go:build !linux

package main

// the character device GPIO interface is linux only
func newButtonSource(settings configSettings) irqSource {
	return &noButtons{}
}
