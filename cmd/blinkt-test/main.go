package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-blinkt/anim"
	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/config"
	"github.com/coreman2200/funtimes-blinkt/internal/logging"
	"github.com/coreman2200/funtimes-blinkt/led"
)

func main() {
	var (
		confFlag = flag.String("c", "blinkt.yaml", "path to config file")
		driver   = flag.String("driver", "", "driver: gpio | spi | sim (overrides config)")
		rainbow  = flag.Duration("rainbow", 0, "run the rainbow forward then in reverse for this long before the demo")
		fps      = flag.Int("fps", anim.DFLT_FPS, "rainbow frame rate")
		debug    = flag.Bool("debug", false, "dump the buffer on every refresh")
	)
	flag.Parse()

	conf, err := config.Load(*confFlag)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Str("path", *confFlag).Msg("config load failed")
	}
	logs := logging.Setup(conf.Log)
	defer logs.Close()
	if *driver != "" {
		conf.Driver.Kind = *driver
	}

	drv, err := led.Open(conf.Driver)
	if err != nil {
		log.Error().Err(err).Msg("open driver")
		os.Exit(1)
	}
	strip := blinkt.New(drv, blinkt.WithDebug(*debug || conf.Debug))
	defer strip.Close()
	strip.Acquire()
	defer strip.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *rainbow > 0 {
		l := anim.NewLooper(strip, *fps)
		for _, rev := range []bool{false, true} {
			log.Info().Bool("reverse", rev).Msg("rainbow started")
			err := l.Run(ctx, anim.Rainbow{Speed: 0.5, Reverse: rev, Brightness: 0.5, Duration: *rainbow})
			log.Info().Msg("rainbow stopped")
			if err != nil {
				return
			}
		}
	}

	start := time.Now()
	if err := anim.DefaultDemo().Run(ctx, strip); err != nil {
		log.Warn().Err(err).Msg("demo interrupted")
		return
	}
	log.Info().Dur("took", time.Since(start)).Msg("demo complete")
}
