package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/assert"
)

func writeConfig(t *testing.T, name, data string) string {
	dir, err := ioutil.TempDir("", "segclock")
	assert.NilError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, name)
	assert.NilError(t, ioutil.WriteFile(path, []byte(data), 0644))
	return path
}

func TestSettingsDefaults(t *testing.T) {
	s := initSettings("")
	assert.Equal(t, s.GetDuration(sDisplayDuration), 200*time.Millisecond)
	assert.Equal(t, s.GetDuration(sSettleDelay), 100*time.Microsecond)
	assert.Equal(t, s.GetByte(sRTCAddress), byte(0x68))
	assert.Equal(t, s.GetInt(sButtonLine), pinButton)
	assert.Equal(t, s.GetString(sMQTTTopic), "segclock/readings")
	assert.Equal(t, s.GetFloat(sSimTemperature), float32(25.25))
}

func TestSettingsMissingFile(t *testing.T) {
	s := initSettings("/no/such/file.json")
	assert.Equal(t, s.GetInt(sLCDCols), 20)
}

func TestSettingsJSON(t *testing.T) {
	path := writeConfig(t, "segclock.json", `{
		"simulated": true,
		"i2cBus": "2",
		"rtcAddress": "0x57",
		"displayDuration": "1s",
		"lcdCols": 16,
		"mqttBroker": "tcp://localhost:1883",
		"unknown": 5
	}`)
	s := initSettings(path)
	assert.Equal(t, s.GetBool(sSimulated), true)
	assert.Equal(t, s.GetString(sI2CBus), "2")
	assert.Equal(t, s.GetByte(sRTCAddress), byte(0x57))
	assert.Equal(t, s.GetDuration(sDisplayDuration), time.Second)
	assert.Equal(t, s.GetInt(sLCDCols), 16)
	assert.Equal(t, s.GetString(sMQTTBroker), "tcp://localhost:1883")
	// untouched
	assert.Equal(t, s.GetInt(sLCDRows), 4)
}

func TestSettingsYAML(t *testing.T) {
	path := writeConfig(t, "segclock.yaml", `
simulated: false
settleDelay: 250us
lcdRows: 2
httpAddr: ":8080"
signature: hello
`)
	s := initSettings(path)
	assert.Equal(t, s.GetBool(sSimulated), false)
	assert.Equal(t, s.GetDuration(sSettleDelay), 250*time.Microsecond)
	assert.Equal(t, s.GetInt(sLCDRows), 2)
	assert.Equal(t, s.GetString(sHTTPAddr), ":8080")
	assert.Equal(t, s.GetString(sSignature), "hello")
}

func TestSettingsBadValue(t *testing.T) {
	s := defaultSettings()
	assert.ErrorContains(t, s.settingsFromJSON([]byte(`{"lcdCols": "wide"}`)), "lcdCols")
	assert.ErrorContains(t, s.settingsFromYAML([]byte("displayDuration: forever\n")), "displayDuration")
	assert.ErrorContains(t, s.setValue(sRTCAddress, "0x100"), "rtcAddress")
}

func TestSettingsWrongType(t *testing.T) {
	s := defaultSettings()
	assert.Equal(t, s.GetInt(sI2CBus), 0)
	assert.Equal(t, s.GetBool(sLCDCols), false)
	assert.Equal(t, s.GetDuration(sSignature), time.Duration(-1))
	assert.Equal(t, s.GetFloat(sSignature), float32(0))
}
