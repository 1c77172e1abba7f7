package logging

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that GlobalConfig doesn't need to be passed to
// literally every function in the project.
var (
	Mode Flag = Nil
	// Log is the structured logger used by library code. Its level tracks
	// Mode: only warnings for Nil, info for Performance, and everything for
	// Debug.
	Log = newLogger()
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)
	return log
}

// SetMode sets Mode and adjusts the level of Log to match it.
func SetMode(flag Flag) {
	Mode = flag
	switch flag {
	case Performance:
		Log.SetLevel(logrus.InfoLevel)
	case Debug:
		Log.SetLevel(logrus.DebugLevel)
	default:
		Log.SetLevel(logrus.WarnLevel)
	}
}

// ParseFlag converts a verbosity name ("nil", "performance", or "debug") into
// a Flag.
func ParseFlag(s string) (Flag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nil", "none": return Nil, nil
	case "performance": return Performance, nil
	case "debug": return Debug, nil
	}
	return Nil, fmt.Errorf("The verbosity '%s' isn't recognized. It must " +
		"be one of 'nil', 'performance', or 'debug'.", s)
}

func (flag Flag) String() string {
	switch flag {
	case Nil: return "nil"
	case Performance: return "performance"
	case Debug: return "debug"
	}
	return fmt.Sprintf("Flag(%d)", int(flag))
}

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc >> 20, ms.Sys >> 20, ms.TotalAlloc >> 20,
	)
}
