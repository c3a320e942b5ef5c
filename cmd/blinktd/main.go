package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/kardianos/service"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/config"
	"github.com/coreman2200/funtimes-blinkt/internal/logging"
	"github.com/coreman2200/funtimes-blinkt/led"
	"github.com/coreman2200/funtimes-blinkt/server"
)

type daemon struct {
	conf  *config.Config
	strip *blinkt.Strip
	srv   *http.Server
}

func (d *daemon) Start(s service.Service) error {
	drv, err := led.Open(d.conf.Driver)
	if err != nil {
		return err
	}
	d.strip = blinkt.New(drv,
		blinkt.WithLines(d.conf.Driver.DataLine, d.conf.Driver.ClockLine),
		blinkt.WithDebug(d.conf.Debug),
		blinkt.WithResetOnRelease(d.conf.ResetOnRelease),
	)
	// the daemon is a client too; its release on stop blanks the strip
	d.strip.Acquire()

	d.srv = &http.Server{
		Addr:         d.conf.Addr,
		Handler:      server.New(d.strip).Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", d.conf.Addr).Str("driver", d.conf.Driver.Kind).Msg("HTTP server starting")
		if err := d.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()
	return nil
}

func (d *daemon) Stop(s service.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	d.strip.Release()
	return d.strip.Close()
}

func main() {
	var (
		svcFlag  = flag.String("service", "", "Control the system service: install, uninstall, start, stop, restart.")
		confFlag = flag.String("c", "blinkt.yaml", "path to config file")
		addr     = flag.String("addr", "", "listen address (overrides config)")
		simOnly  = flag.Bool("sim-only", false, "force the console simulator")
	)
	flag.Parse()

	conf, err := config.Load(*confFlag)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Str("path", *confFlag).Msg("config load failed")
	}
	logs := logging.Setup(conf.Log)
	defer logs.Close()
	if err != nil {
		log.Warn().Str("path", *confFlag).Msg("no config file; using defaults")
	}
	if *addr != "" {
		conf.Addr = *addr
	}
	if *simOnly {
		conf.Driver.Kind = "sim"
	}

	d := &daemon{conf: conf}
	s, err := service.New(d, &service.Config{
		Name:        "blinktd",
		DisplayName: "Blinkt LED strip daemon",
		Description: "Drives an APA102 LED strip and serves remote control clients.",
		Arguments:   []string{"-c", *confFlag},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("service setup")
	}

	if *svcFlag != "" {
		if err := service.Control(s, *svcFlag); err != nil {
			log.Error().Err(err).Strs("valid", service.ControlAction[:]).Msg("service control")
			os.Exit(1)
		}
		return
	}

	if err := s.Run(); err != nil {
		log.Error().Err(err).Msg("service run")
	}
}
