package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// threadLogger tags every line with the worker that wrote it
type threadLogger struct {
	name string
}

func (t *threadLogger) Printf(format string, v ...interface{}) {
	log.Printf("%s: %s", t.name, fmt.Sprintf(format, v...))
}

func (t *threadLogger) Println(v ...interface{}) {
	log.Printf("%s: %s", t.name, fmt.Sprintln(v...))
}

// setupLogging sends the log to a rotating file, and to stderr as well when
// console is set.  With no log file configured the log stays on stderr and
// the returned logger is nil.
func setupLogging(settings configSettings, console bool) (*lumberjack.Logger, error) {
	fileName := settings.GetString(sLogFile)
	if fileName == "" {
		return nil, nil
	}

	// make sure we can write there before handing it to lumberjack
	f, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file %s: %v", fileName, err)
	}
	f.Close()

	lj := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	var w io.Writer = lj
	if console {
		w = io.MultiWriter(lj, os.Stderr)
	}
	log.SetOutput(w)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return lj, nil
}
