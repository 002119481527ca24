package main

import (
	"encoding/json"
	"sync"
)

// reading is one pass of the main loop, published and served as JSON
type reading struct {
	Counter    int     `json:"counter"`
	Celsius    float32 `json:"celsius"`
	Fahrenheit float32 `json:"fahrenheit"`
	Time       string  `json:"time"`
	LED        bool    `json:"led"`
	Interrupts uint32  `json:"interrupts"`
	Color      [3]int  `json:"rgb"`
	RTCError   string  `json:"rtcError,omitempty"`
}

func (r reading) payload() ([]byte, error) {
	return json.Marshal(r)
}

// statusTracker holds the latest reading for the status API
type statusTracker struct {
	mu   sync.Mutex
	last reading
}

func (s *statusTracker) update(r reading) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = r
}

func (s *statusTracker) snapshot() reading {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
