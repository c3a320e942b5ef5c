package led

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// DefaultSPIFreq is used when the configuration leaves the clock at zero.
const DefaultSPIFreq = 4 * physic.MegaHertz

// SPI sends the same encoded frames through a hardware SPI port instead of
// toggling the lines by hand. MOSI and SCLK take the place of data and clock.
type SPI struct {
	conn spi.Conn
	port io.Closer
}

func NewSPI(c spi.Conn) *SPI {
	return &SPI{conn: c}
}

// OpenSPI opens the named port ("" for the first one) in mode 0.
func OpenSPI(dev string, f physic.Frequency) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	if f <= 0 {
		f = DefaultSPIFreq
	}
	p, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", dev, err)
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("connect spi %q: %w", dev, err)
	}
	return &SPI{conn: c, port: p}, nil
}

func (s *SPI) Write(frame []byte) error {
	if err := s.conn.Tx(frame, nil); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

func (s *SPI) Close() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

func (s *SPI) String() string {
	return fmt.Sprintf("spi{%s}", s.conn)
}
