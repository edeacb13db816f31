package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

var debugMode atomic.Bool

// SetupLogging configures logging.
// If filename is empty, logging is disabled (except log.Fatal/panic).
// If filename is set, logs go to that file and Bubble Tea logs are enabled too.
func SetupLogging(filename string) (cleanup func(), err error) {
	if filename == "" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(io.Discard)
		debugMode.Store(false)
		return func() {}, nil
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	tf, err := tea.LogToFile(filename, "debug")
	if err != nil {
		f.Close()
		return nil, err
	}
	debugMode.Store(true)

	cleanup = func() {
		debugMode.Store(false)
		tf.Close()
		f.Close()
	}
	return cleanup, nil
}

// SetupStderr sends logs to stderr. Used by the headless commands, which
// have no alternate screen to protect.
func SetupStderr(debug bool) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags)
	debugMode.Store(debug)
}

// IsDebugMode reports whether a debug log destination is active.
func IsDebugMode() bool { return debugMode.Load() }

func Debug(msg string) {
	if !IsDebugMode() {
		return
	}
	output("DEBUG", msg)
}

func Debugf(format string, args ...any) {
	if !IsDebugMode() {
		return
	}
	output("DEBUG", fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	output("INFO", fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	output("WARN", fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	output("ERROR", fmt.Sprintf(format, args...))
}

func output(level, msg string) {
	// calldepth 3 points Lshortfile at the caller of the level helper
	log.Output(3, level+" "+msg)
}
