package main

import (
	"testing"

	"gotest.tools/assert"
)

func TestFormatLine(t *testing.T) {
	assert.Equal(t, formatLine("Hi", 6, alignLeft), "Hi    ")
	assert.Equal(t, formatLine("Hi", 6, alignCenter), "  Hi  ")
	assert.Equal(t, formatLine("Hi", 5, alignCenter), " Hi  ")
	assert.Equal(t, formatLine("Temperature", 4, alignCenter), "Temp")
	assert.Equal(t, formatLine("x", 0, alignLeft), "")
}

func TestLogPanelRows(t *testing.T) {
	p := &logPanel{disableLog: true}
	assert.NilError(t, p.OpenPanel(testSettings()))

	assert.NilError(t, p.DisplayStringAt(1, "abc", alignLeft))
	assert.Equal(t, p.lines[1], "abc             ")
	// same text twice is one change
	assert.NilError(t, p.DisplayStringAt(1, "abc", alignLeft))
	assert.Equal(t, len(p.audit), 1)

	assert.ErrorContains(t, p.DisplayStringAt(4, "abc", alignLeft), "outside")

	assert.NilError(t, p.ClearPanel())
	assert.Equal(t, p.lines[1], "                ")
}

func TestRunPanel(t *testing.T) {
	rt, _, comms := testRuntime()
	p := rt.panel.(*logPanel)

	startPanel(rt)
	comms.panel <- panelText(rowSignature, "signed", alignCenter)
	comms.panel <- panelText(rowStatus, "ok", alignLeft)
	comms.panel <- panelText(9, "bad row", alignLeft)
	comms.panel <- panelClear()
	comms.panel <- panelText(rowTime, "12:00:00 PM", alignLeft)
	testQuit(rt)

	// a bad row is logged and skipped
	assert.Equal(t, len(p.audit), 3)
	assert.Equal(t, p.lines[rowSignature], "                ")
	assert.Equal(t, p.lines[rowTime], "12:00:00 PM     ")
}

func TestSendPanelAfterQuit(t *testing.T) {
	rt, _, comms := testRuntime()
	rt.comms.panel = make(chan panelMsg)
	comms.stop()
	assert.Equal(t, sendPanel(rt, panelClear()), false)
}
