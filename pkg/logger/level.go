package logger

import (
	"log/slog"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrInvalidLevel = errors.New("invalid log level")

// Level is a slog level restricted to the four that compilerlint emits.
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

func (l Level) String() string { return slog.Level(l).String() }

// ToSlogLevel returns l as a slog.Level.
func (l Level) ToSlogLevel() slog.Level { return slog.Level(l) }

// ParseLevel accepts the slog level names plus "trace" as an alias of debug.
// An empty string selects the default, LevelWarn.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)

	switch strings.ToLower(s) {
	case "":
		return LevelWarn, nil
	case "trace":
		return LevelDebug, nil
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return LevelWarn, errors.Wrapf(ErrInvalidLevel, "%q", s)
	}

	return Level(lvl), nil
}

// LevelFromFlags maps --debug and --trace to a level. --trace wins.
func LevelFromFlags(debug, trace bool) Level {
	switch {
	case trace:
		return LevelDebug
	case debug:
		return LevelInfo
	default:
		return LevelWarn
	}
}
