package led

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/physic"

	"github.com/coreman2200/funtimes-blinkt/config"
)

// Open builds the driver named by cfg.Kind. When the hardware cannot be
// reached and cfg.Fallback is set, the console simulator is returned instead.
func Open(cfg config.Driver) (Driver, error) {
	var (
		drv Driver
		err error
	)
	switch cfg.Kind {
	case "sim":
		return NewSim(nil), nil
	case "gpio", "":
		drv, err = OpenGPIO(cfg.DataLine, cfg.ClockLine)
	case "spi":
		drv, err = OpenSPI(cfg.SPIDev, physic.Frequency(cfg.SPIHz)*physic.Hertz)
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Kind)
	}
	if err != nil {
		if !cfg.Fallback {
			return nil, err
		}
		log.Warn().Err(err).
			Str("driver", cfg.Kind).
			Int("data_line", cfg.DataLine).
			Int("clock_line", cfg.ClockLine).
			Msg("driver init failed; falling back to SIM")
		return NewSim(nil), nil
	}
	return drv, nil
}
