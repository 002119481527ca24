package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

// setting names
const (
	sSimulated       = "simulated"
	sDebug           = "debugDump"
	sLogFile         = "logFile"
	sI2CBus          = "i2cBus"
	sRTCAddress      = "rtcAddress"
	sSimTemperature  = "simTemperature"
	sDisplayDuration = "displayDuration"
	sSettleDelay     = "settleDelay"
	sLCDCols         = "lcdCols"
	sLCDRows         = "lcdRows"
	sButtonChip      = "buttonChip"
	sButtonLine      = "buttonLine"
	sMQTTBroker      = "mqttBroker"
	sMQTTTopic       = "mqttTopic"
	sHTTPAddr        = "httpAddr"
	sHTTPSecret      = "httpSecret"
	sSignature       = "signature"
	sRTCSync         = "rtcSync"
	sRTCMaxDrift     = "rtcMaxDrift"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sDebug] = false
	s[sLogFile] = "/var/log/segclock.log"
	s[sI2CBus] = "1"
	s[sRTCAddress] = byte(0x68)
	s[sSimTemperature] = "25.25"
	s[sDisplayDuration] = 200 * time.Millisecond
	s[sSettleDelay] = 100 * time.Microsecond
	s[sLCDCols] = 20
	s[sLCDRows] = 4
	s[sButtonChip] = "gpiochip0"
	s[sButtonLine] = pinButton
	s[sMQTTBroker] = ""
	s[sMQTTTopic] = "segclock/readings"
	s[sHTTPAddr] = ""
	s[sHTTPSecret] = ""
	s[sSignature] = " by owel.codes "
	s[sRTCSync] = false
	s[sRTCMaxDrift] = 5 * time.Minute

	on := true
	if runtime.GOARCH == "arm" || runtime.GOARCH == "arm64" {
		on = false
	}
	s[sSimulated] = on

	return configSettings{settings: s}
}

// setValue converts raw to the type of the default for key
func (s *configSettings) setValue(key string, raw string) error {
	var err error
	switch initVal := s.settings[key].(type) {
	case byte:
		var v uint64
		v, err = strconv.ParseUint(raw, 0, 8)
		if err == nil {
			s.settings[key] = byte(v)
		}
	case int:
		var v int64
		v, err = strconv.ParseInt(raw, 0, 64)
		if err == nil {
			s.settings[key] = int(v)
		}
	case bool:
		var v bool
		v, err = strconv.ParseBool(strings.ToLower(raw))
		if err == nil {
			s.settings[key] = v
		}
	case time.Duration:
		var v time.Duration
		v, err = time.ParseDuration(raw)
		if err == nil {
			s.settings[key] = v
		}
	case string:
		s.settings[key] = raw
	default:
		err = fmt.Errorf("Bad type: %T", initVal)
	}
	if err != nil {
		return fmt.Errorf("setting %s: %v", key, err)
	}
	return nil
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	for k := range s.settings {
		val, dataType, _, err := jsonparser.Get(data, k)
		if dataType == jsonparser.NotExist {
			// ignore missing fields
			continue
		}
		if err != nil {
			return err
		}
		if err := s.setValue(k, string(val)); err != nil {
			return err
		}
	}
	return nil
}

func (s *configSettings) settingsFromYAML(data []byte) error {
	var values map[string]interface{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return err
	}
	for k := range s.settings {
		v, ok := values[k]
		if !ok {
			continue
		}
		if err := s.setValue(k, fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}

func initSettings(configFile string) configSettings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()
	if configFile == "" {
		return s
	}

	// try to open the config file
	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		log.Printf("Could not load conf file '%s', using defaults", configFile)
		return s
	}

	log.Printf("Reading configuration from '%s'", configFile)

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".yaml", ".yml":
		err = s.settingsFromYAML(data)
	default:
		err = s.settingsFromJSON(data)
	}
	if err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetFloat(key string) float32 {
	f, err := strconv.ParseFloat(s.GetString(key), 32)
	if err != nil {
		return 0
	}
	return float32(f)
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		if k == sHTTPSecret && v != "" {
			v = "****"
		}
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
