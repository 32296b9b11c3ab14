package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

const timeFormat = "2006-01-02 15:04:05"

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timeFormat,
	}
	l.Level = logrus.InfoLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l
}
