/*
Package logx wraps zerolog behind a small set of application-wide logging helpers.

It initializes the global logger once at startup, choosing a human-readable console
writer in development and plain JSON in production, and exposes leveled helpers
(Info, Warn, Error, Fatal) that accept an optional key-value field list.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the process-wide zerolog instance.
// Development mode enables Debug level and colored console output;
// production mode emits Info-level JSON. Caller information is attached
// to every entry.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns the global zerolog.Logger. Components derive their own
// child loggers from it via With().
func Logger() *zerolog.Logger {
	return &log.Logger
}

// evenFields drops the field list entirely when it does not form key-value
// pairs, so a bad call site never panics inside zerolog.
func evenFields(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msgf("logx %s call received an odd number of fields, ignoring them", level)
		return nil
	}
	return fields
}

// Info logs msg at Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(evenFields("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn logs msg at Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(evenFields("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error logs err and msg at Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(evenFields("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal logs err and msg at Fatal level, then terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(evenFields("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
