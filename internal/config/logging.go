package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is used when LOG_LEVEL is unset.
const DefaultLogLevel = "info"

// NewLogger creates a timestamped logger writing to w at the level named by
// LOG_LEVEL (debug, info, warn, error).
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	name := GetEnv("LOG_LEVEL", "")
	if name == "" {
		name = DefaultLogLevel
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidValue, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	}), nil
}
