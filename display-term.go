package main

import (
	"fmt"
	"sync"

	"github.com/nsf/termbox-go"
)

// termPanel draws the character display in the terminal when simulating.
// It also stands in for the button: space fires the interrupt and ctrl-c
// shuts everything down.
type termPanel struct {
	mu    sync.Mutex
	cols  int
	rows  int
	quit  chan struct{}
	done  chan struct{}
	ready bool
}

const termHelp = "space: interrupt  ctrl-c: quit"

func (tp *termPanel) OpenPanel(settings configSettings) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if err := termbox.Init(); err != nil {
		return err
	}
	tp.ready = true
	tp.cols = settings.GetInt(sLCDCols)
	tp.rows = settings.GetInt(sLCDRows)
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	tp.frame()
	return termbox.Flush()
}

// frame draws the border of the display and the key help under it
func (tp *termPanel) frame() {
	for x := 0; x < tp.cols+2; x++ {
		termbox.SetCell(x, 0, '-', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(x, tp.rows+1, '-', termbox.ColorDefault, termbox.ColorDefault)
	}
	for y := 1; y <= tp.rows; y++ {
		termbox.SetCell(0, y, '|', termbox.ColorDefault, termbox.ColorDefault)
		termbox.SetCell(tp.cols+1, y, '|', termbox.ColorDefault, termbox.ColorDefault)
	}
	for i, c := range termHelp {
		termbox.SetCell(i, tp.rows+3, c, termbox.ColorDefault, termbox.ColorDefault)
	}
}

func (tp *termPanel) DisplayStringAt(row int, s string, mode alignMode) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if row < 0 || row >= tp.rows {
		return fmt.Errorf("row %d outside %d rows", row, tp.rows)
	}
	for i, c := range formatLine(s, tp.cols, mode) {
		termbox.SetCell(i+1, row+1, c, termbox.ColorGreen, termbox.ColorBlack)
	}
	return termbox.Flush()
}

func (tp *termPanel) ClearPanel() error {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	for y := 1; y <= tp.rows; y++ {
		for x := 1; x <= tp.cols; x++ {
			termbox.SetCell(x, y, ' ', termbox.ColorGreen, termbox.ColorBlack)
		}
	}
	return termbox.Flush()
}

func (tp *termPanel) ClosePanel() {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	if tp.ready {
		termbox.Close()
		tp.ready = false
	}
}

// start polls the keyboard until stop
func (tp *termPanel) start(rt runtimeConfig, fire func()) error {
	tp.quit = make(chan struct{})
	tp.done = make(chan struct{})
	logger := &threadLogger{name: "Keys"}

	go func() {
		defer close(tp.done)
		for {
			ev := termbox.PollEvent()
			switch ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyCtrlC {
					logger.Println("ctrl-c, shutting down")
					rt.comms.stop()
					continue
				}
				if ev.Key == termbox.KeySpace || ev.Ch == ' ' {
					fire()
				}
			case termbox.EventInterrupt:
				select {
				case <-tp.quit:
					return
				default:
				}
			case termbox.EventError:
				logger.Printf("Error: %s", ev.Err)
				return
			}
		}
	}()
	return nil
}

func (tp *termPanel) stop() {
	if tp.quit == nil {
		return
	}
	close(tp.quit)
	termbox.Interrupt()
	<-tp.done
	tp.quit = nil
}
