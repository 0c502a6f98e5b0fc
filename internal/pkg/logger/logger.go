package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// ZeroLogger implements ports.Logger on top of zerolog, writing to stderr
// so emitted shell script on stdout stays clean.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger. Verbose lowers the level to debug; otherwise
// only warnings and errors surface.
func New(verbose bool) *ZeroLogger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return &ZeroLogger{
		log: zerolog.New(w).Level(level).With().Timestamp().Logger(),
	}
}

// Nop creates a logger that discards every entry.
func Nop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}
