package led

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// BitBang clocks frames out over two GPIO lines. Each bit, most significant
// first, is put on the data line and latched by one rising edge on the
// clock line. Bit duration is whatever the GPIO writes cost; the strip does
// not care.
//
// BitBang is not safe for concurrent use.
type BitBang struct {
	data gpio.PinOut
	clk  gpio.PinOut
}

func NewBitBang(data, clk gpio.PinOut) *BitBang {
	return &BitBang{data: data, clk: clk}
}

// OpenGPIO initializes the host drivers and claims the data and clock lines
// by Broadcom number, driving both low.
func OpenGPIO(data, clock int) (*BitBang, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	d, err := outputPin(data)
	if err != nil {
		return nil, err
	}
	c, err := outputPin(clock)
	if err != nil {
		return nil, err
	}
	return NewBitBang(d, c), nil
}

func outputPin(n int) (gpio.PinIO, error) {
	name := fmt.Sprintf("GPIO%d", n)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio: no pin %s", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("gpio: %s as output: %w", name, err)
	}
	return p, nil
}

func (b *BitBang) Write(frame []byte) error {
	for _, v := range frame {
		if err := b.writeByte(v); err != nil {
			return err
		}
	}
	return nil
}

func (b *BitBang) writeByte(v byte) error {
	for i := 0; i < 8; i++ {
		if err := b.data.Out(gpio.Level(v&0x80 != 0)); err != nil {
			return fmt.Errorf("data line: %w", err)
		}
		if err := b.clk.Out(gpio.High); err != nil {
			return fmt.Errorf("clock line: %w", err)
		}
		v <<= 1
		if err := b.clk.Out(gpio.Low); err != nil {
			return fmt.Errorf("clock line: %w", err)
		}
	}
	return nil
}

// Close leaves both lines low and halts them.
func (b *BitBang) Close() error {
	return errors.Join(
		b.data.Out(gpio.Low),
		b.clk.Out(gpio.Low),
		b.data.Halt(),
		b.clk.Halt(),
	)
}

func (b *BitBang) String() string {
	return fmt.Sprintf("bitbang{%s, %s}", b.data, b.clk)
}
