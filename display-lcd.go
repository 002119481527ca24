package main

import (
	"fmt"

	"dscheirer.com/segclock/lcd"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// lcdPanel is the HD44780 hung off GPIO
type lcdPanel struct {
	dev *lcd.HD44780
}

func outPin(num int) (gpio.PinOut, error) {
	p := gpioreg.ByName(fmt.Sprintf("GPIO%d", num))
	if p == nil {
		return nil, fmt.Errorf("no pin GPIO%d", num)
	}
	return p, nil
}

func (lp *lcdPanel) OpenPanel(settings configSettings) error {
	if _, err := host.Init(); err != nil {
		return errors.Wrap(err, "periph host init")
	}

	dev := &lcd.HD44780{
		Cols: settings.GetInt(sLCDCols),
		Rows: settings.GetInt(sLCDRows),
	}
	var err error
	if dev.RS, err = outPin(pinLCDRS); err != nil {
		return err
	}
	if dev.E, err = outPin(pinLCDE); err != nil {
		return err
	}
	for i, num := range pinLCDData {
		if dev.DB[i], err = outPin(num); err != nil {
			return err
		}
	}
	if err := dev.Init(); err != nil {
		return errors.Wrap(err, "lcd init")
	}
	lp.dev = dev
	return nil
}

func (lp *lcdPanel) DisplayStringAt(row int, s string, mode alignMode) error {
	return lp.dev.WriteLine(row, formatLine(s, lp.dev.Cols, mode))
}

func (lp *lcdPanel) ClearPanel() error {
	return lp.dev.Clear()
}

func (lp *lcdPanel) ClosePanel() {
	if lp.dev != nil {
		lp.dev.Clear()
	}
}
