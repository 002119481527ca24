package main

import (
	"encoding/json"
	"testing"

	"gotest.tools/assert"
)

func TestReadingPayload(t *testing.T) {
	r := reading{Counter: 7, Celsius: 25.75, Fahrenheit: 78.35, Time: "01:02:03 AM", LED: true, Interrupts: 3, Color: [3]int{10, 15, 20}}
	data, err := r.payload()
	assert.NilError(t, err)

	var fields map[string]interface{}
	assert.NilError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, fields["counter"], float64(7))
	assert.Equal(t, fields["time"], "01:02:03 AM")
	assert.Equal(t, fields["led"], true)
	assert.DeepEqual(t, fields["rgb"], []interface{}{float64(10), float64(15), float64(20)})
	// only there when the clock failed
	_, ok := fields["rtcError"]
	assert.Equal(t, ok, false)
}

func TestStatusTracker(t *testing.T) {
	var s statusTracker
	assert.Equal(t, s.snapshot(), reading{})
	s.update(reading{Counter: 1})
	s.update(reading{Counter: 2})
	assert.Equal(t, s.snapshot().Counter, 2)
}

func TestPublishers(t *testing.T) {
	var n noPublisher
	assert.NilError(t, n.publish([]byte("x")))

	var l logPublisher
	buf := []byte("one")
	assert.NilError(t, l.publish(buf))
	buf[0] = 'x'
	assert.DeepEqual(t, l.published(), [][]byte{[]byte("one")})
}
