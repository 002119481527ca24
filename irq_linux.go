//go:build linux

package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/warthog618/go-gpiocdev"
)

const dButtonDebounce = 10 * time.Millisecond

// gpiocdevButton watches the button line for rising edges
type gpiocdevButton struct {
	chip string
	line int
	req  *gpiocdev.Line
}

func (g *gpiocdevButton) start(rt runtimeConfig, fire func()) error {
	l, err := gpiocdev.RequestLine(g.chip, g.line,
		gpiocdev.WithPullDown,
		gpiocdev.WithRisingEdge,
		gpiocdev.WithDebounce(dButtonDebounce),
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if evt.Type == gpiocdev.LineEventRisingEdge {
				fire()
			}
		}))
	if err != nil {
		return errors.Wrapf(err, "request %s line %d", g.chip, g.line)
	}
	g.req = l
	rt.logger.Printf("Watching %s line %d", g.chip, g.line)
	return nil
}

func (g *gpiocdevButton) stop() {
	if g.req != nil {
		g.req.Close()
		g.req = nil
	}
}

func newButtonSource(settings configSettings) irqSource {
	return &gpiocdevButton{
		chip: settings.GetString(sButtonChip),
		line: settings.GetInt(sButtonLine),
	}
}
