// Command blinkt-reset turns every LED off and sets its intensity to zero.
package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/config"
	"github.com/coreman2200/funtimes-blinkt/internal/logging"
	"github.com/coreman2200/funtimes-blinkt/led"
)

func main() {
	confFlag := flag.String("c", "blinkt.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*confFlag)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Str("path", *confFlag).Msg("config load failed")
	}
	logs := logging.Setup(conf.Log)
	defer logs.Close()

	// never fall back to the simulator
	conf.Driver.Fallback = false
	drv, err := led.Open(conf.Driver)
	if err != nil {
		log.Error().Err(err).Msg("open driver")
		os.Exit(1)
	}
	strip := blinkt.New(drv)
	strip.Reset()
	strip.Refresh()
	if err := strip.Close(); err != nil {
		log.Warn().Err(err).Msg("close driver")
	}
}
