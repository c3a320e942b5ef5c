package led

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/coreman2200/funtimes-blinkt/apa102"
	"github.com/coreman2200/funtimes-blinkt/model"
)

// Sim decodes frames and paints them on a display, by default the console.
// Used when no strip is attached.
type Sim struct {
	drawer display.Drawer
	img    *image.NRGBA
	Frames int
}

// NewSim draws on d, or on the terminal when d is nil.
func NewSim(d display.Drawer) *Sim {
	if d == nil {
		d = screen.New(model.NumLEDs)
	}
	return &Sim{
		drawer: d,
		img:    image.NewNRGBA(image.Rect(0, 0, model.NumLEDs, 1)),
	}
}

func (s *Sim) Write(frame []byte) error {
	leds, err := apa102.Decode(frame)
	if err != nil {
		return err
	}
	for i, l := range leds {
		s.img.SetNRGBA(i, 0, preview(l))
	}
	s.Frames++
	return s.drawer.Draw(s.drawer.Bounds(), s.img, image.Point{})
}

func (s *Sim) Close() error {
	return s.drawer.Halt()
}

// preview folds the 5-bit global brightness into the colour.
func preview(l model.Led) color.NRGBA {
	i := uint32(l.Intensity())
	m := uint32(model.IntensityMax)
	return color.NRGBA{
		R: uint8(uint32(l.Red()) * i / m),
		G: uint8(uint32(l.Green()) * i / m),
		B: uint8(uint32(l.Blue()) * i / m),
		A: 255,
	}
}
