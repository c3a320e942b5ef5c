package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/coreman2200/funtimes-blinkt/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points the global zerolog logger at a rotated file when c.File is
// set, otherwise at a console writer on stdout. The returned closer flushes
// the file.
func Setup(c config.Log) io.Closer {
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil || c.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if c.File != "" {
		lj := &lumberjack.Logger{
			Filename:   c.File,
			MaxBackups: 3,
			MaxAge:     28, //days
		}
		log.Logger = zerolog.New(lj).With().Timestamp().Logger()
		return lj
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	return nopCloser{}
}
