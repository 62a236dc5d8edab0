package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to stderr. Unknown levels fall back to info;
// format is "text" or "json".
func New(level, format string, disableTimestamp bool) *logrus.Logger {
	return NewWithOutput(os.Stderr, level, format, disableTimestamp)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(out io.Writer, level, format string, disableTimestamp bool) *logrus.Logger {
	log := logrus.New()
	log.Out = out

	switch strings.ToLower(format) {
	case "json":
		log.Formatter = &logrus.JSONFormatter{DisableTimestamp: disableTimestamp}
	default:
		log.Formatter = &logrus.TextFormatter{DisableTimestamp: disableTimestamp}
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.Level = lvl

	return log
}
