package main

import (
	"time"

	"dscheirer.com/segclock/sevenseg"
)

// segmentOutputs are the anode and segment lines of the 7-seg display
type segmentOutputs interface {
	sevenseg.Outputs
	open() error
	close()
}

type led interface {
	init()
	set(pin int, on bool)
	on(pin int)
	off(pin int)
}

type rgbLed interface {
	init() error
	setBrightness(ch rgbChannel, intensity float32) error
}

// irqSource calls fire on each rising edge of the button
type irqSource interface {
	start(rt runtimeConfig, fire func()) error
	stop()
}

type rtcReader interface {
	Epoch() (time.Time, error)
	SetTime(t time.Time) error
	Temperature() (float32, error)
}

type panel interface {
	OpenPanel(settings configSettings) error
	DisplayStringAt(row int, s string, mode alignMode) error
	ClearPanel() error
	ClosePanel()
}

type publisher interface {
	publish(payload []byte) error
	close()
}

type configService interface {
	launch(handler *apiHandler, addr string)
	stop()
}
