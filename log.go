package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// logger wraps zerolog for console output.
type logger struct {
	z zerolog.Logger
}

// newLogger creates a console logger writing to w.
func newLogger(w io.Writer) *logger {
	noColor := os.Getenv("NO_COLOR") != ""
	if f, ok := w.(*os.File); ok {
		if fi, err := f.Stat(); err == nil && (fi.Mode()&os.ModeCharDevice) == 0 {
			noColor = true
		}
	} else {
		noColor = true
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}
	zl := zerolog.New(out).With().Timestamp().Logger()
	return &logger{z: zl}
}

func (l *logger) warn(msg string) { l.z.Warn().Msg(msg) }
func (l *logger) err(msg string)  { l.z.Error().Msg(msg) }
