package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	zl "github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Levels lists the accepted level names in increasing severity.
var Levels = []string{"debug", "info", "warn", "error"}

// Default returns the process logger. It carries timestamps: New adds them
// and so does zerolog's own global logger.
func Default() zl.Logger {
	return zlog.Logger
}

// New returns a timestamped logger writing to w. console switches to the
// human readable zerolog console writer used by the CLI.
func New(w io.Writer, console bool) zl.Logger {
	if w == nil {
		w = os.Stderr
	}
	if console {
		w = zl.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zl.New(w).With().Timestamp().Logger()
}

// SetDefault replaces the process logger returned by Default.
func SetDefault(l zl.Logger) {
	zlog.Logger = l
}

// SetGlobalLevelFromString sets the zerolog global level.
func SetGlobalLevelFromString(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		zl.SetGlobalLevel(zl.DebugLevel)
	case "info":
		zl.SetGlobalLevel(zl.InfoLevel)
	case "warn":
		zl.SetGlobalLevel(zl.WarnLevel)
	case "error":
		zl.SetGlobalLevel(zl.ErrorLevel)
	default:
		return fmt.Errorf("unknown log level: %s", s)
	}
	return nil
}

// ValidLevel reports whether s is accepted by SetGlobalLevelFromString.
func ValidLevel(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, level := range Levels {
		if level == s {
			return true
		}
	}
	return false
}

type loggerKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l zl.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored by WithContext, or Default.
func FromContext(ctx context.Context) zl.Logger {
	return FromContextOr(ctx, Default())
}

// FromContextOr returns the logger stored by WithContext, or fallback.
func FromContextOr(ctx context.Context, fallback zl.Logger) zl.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(zl.Logger); ok {
			return l
		}
	}
	return fallback
}
