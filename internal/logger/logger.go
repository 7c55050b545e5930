// Package logger provides the configured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New builds a logger for serviceName at the given level and installs it as
// the zerolog global, so packages can log through zerolog/log.
// An unknown level falls back to info. Pretty selects console output.
func New(serviceName, level string, pretty bool) zerolog.Logger {
	return NewWithWriter(os.Stdout, serviceName, level, pretty)
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(w io.Writer, serviceName, level string, pretty bool) zerolog.Logger {
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(w).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}
