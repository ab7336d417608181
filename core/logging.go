package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "pivot",
		})
		l.SetLevel(log.InfoLevel)
		singleton = &logger{l}
	})
	return singleton
}

// SetLevel parses a level name (debug, info, warn, error) and applies it.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	getLogger().SetLevel(lvl)
	return nil
}

func SetOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

// With returns a child logger carrying the given key/value pairs.
func With(keyvals ...interface{}) *log.Logger {
	return getLogger().With(keyvals...)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}
