package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func NewLogger(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	formatter := log.TextFormatter
	switch format {
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "activity-tracker",
	}), nil
}
