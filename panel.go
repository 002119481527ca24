package main

import (
	"fmt"
	"strings"
)

type alignMode int

const (
	alignLeft alignMode = iota
	alignCenter
)

// what goes on each line of the character display
const (
	rowSignature = iota
	rowTemperature
	rowTime
	rowStatus
)

type panelMsg struct {
	row   int
	text  string
	mode  alignMode
	clear bool
}

func panelText(row int, text string, mode alignMode) panelMsg {
	return panelMsg{row: row, text: text, mode: mode}
}

func panelClear() panelMsg {
	return panelMsg{clear: true}
}

// formatLine fits s to exactly cols characters
func formatLine(s string, cols int, mode alignMode) string {
	if cols <= 0 {
		return ""
	}
	if len(s) >= cols {
		return s[:cols]
	}
	pad := cols - len(s)
	left := 0
	if mode == alignCenter {
		left = pad / 2
	}
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// sendPanel queues msg for the panel worker unless we are shutting down
func sendPanel(rt runtimeConfig, msg panelMsg) bool {
	select {
	case <-rt.comms.quit:
		return false
	case rt.comms.panel <- msg:
		return true
	}
}

func renderPanel(p panel, msg panelMsg) error {
	if msg.clear {
		return p.ClearPanel()
	}
	return p.DisplayStringAt(msg.row, msg.text, msg.mode)
}

func startPanel(rt runtimeConfig) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		runPanel(rt)
	}()
}

// runPanel owns the character display, nobody else writes to it
func runPanel(rt runtimeConfig) {
	rt.logger = &threadLogger{name: "Panel"}
	defer rt.logger.Println("Exiting runPanel")

	for {
		select {
		case <-rt.comms.quit:
			rt.logger.Println("Got a quit signal")
			drainPanel(rt)
			return
		case msg := <-rt.comms.panel:
			if err := renderPanel(rt.panel, msg); err != nil {
				rt.logger.Printf("Error: %s", err.Error())
			}
		}
	}
}

// drainPanel renders whatever was queued before the quit
func drainPanel(rt runtimeConfig) {
	for {
		select {
		case msg := <-rt.comms.panel:
			if err := renderPanel(rt.panel, msg); err != nil {
				rt.logger.Printf("Error: %s", err.Error())
			}
		default:
			return
		}
	}
}

// logPanel keeps the lines in memory and logs every change
type logPanel struct {
	lines      []string
	cols       int
	audit      []string
	disableLog bool
	logger     flogger
}

func (lp *logPanel) OpenPanel(settings configSettings) error {
	lp.cols = settings.GetInt(sLCDCols)
	lp.lines = make([]string, settings.GetInt(sLCDRows))
	lp.audit = []string{}
	lp.logger = &threadLogger{name: "LCD"}
	return lp.ClearPanel()
}

func (lp *logPanel) DisplayStringAt(row int, s string, mode alignMode) error {
	if row < 0 || row >= len(lp.lines) {
		return fmt.Errorf("row %d outside %d rows", row, len(lp.lines))
	}
	line := formatLine(s, lp.cols, mode)
	if line == lp.lines[row] {
		return nil
	}
	lp.lines[row] = line
	entry := fmt.Sprintf("%d:[%s]", row, line)
	if !lp.disableLog {
		lp.logger.Println(entry)
	}
	lp.audit = append(lp.audit, entry)
	return nil
}

func (lp *logPanel) ClearPanel() error {
	blank := strings.Repeat(" ", lp.cols)
	for i := range lp.lines {
		lp.lines[i] = blank
	}
	return nil
}

func (lp *logPanel) ClosePanel() {}
