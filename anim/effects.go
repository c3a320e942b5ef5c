package anim

import (
	"image/color"
	"math"
	"time"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/model"
)

// ColorWheel maps h in [0, 1) onto a fully saturated hue.
func ColorWheel(h float64) color.NRGBA {
	h *= 6
	switch {
	case h < 1.:
		return color.NRGBA{R: 255, G: byte(255 * h), A: 255}
	case h < 2.:
		return color.NRGBA{R: byte(255 * (2 - h)), G: 255, A: 255}
	case h < 3.:
		return color.NRGBA{G: 255, B: byte(255 * (h - 2)), A: 255}
	case h < 4.:
		return color.NRGBA{G: byte(255 * (4 - h)), B: 255, A: 255}
	case h < 5.:
		return color.NRGBA{R: byte(255 * (h - 4)), B: 255, A: 255}
	default:
		return color.NRGBA{R: 255, B: byte(255 * (6 - h)), A: 255}
	}
}

// Rainbow spreads one turn of the colour wheel across the strip and rotates
// it Speed turns per second, towards higher indices unless Reverse is set.
type Rainbow struct {
	Speed      float64
	Reverse    bool
	Brightness float64
	// Duration ends the animation when positive.
	Duration time.Duration
}

func (r Rainbow) Frame(s *blinkt.Strip, t time.Duration, _ int) bool {
	if r.Duration > 0 && t >= r.Duration {
		return false
	}
	phase := t.Seconds() * r.Speed
	if r.Reverse {
		phase = -phase
	}
	for i := 0; i < model.NumLEDs; i++ {
		h := float64(i)/model.NumLEDs - phase
		h -= math.Floor(h)
		c := ColorWheel(h)
		s.SetLED(i, int(c.R), int(c.G), int(c.B), model.Intensity(r.Brightness))
	}
	return true
}

// Ramp moves the intensity of every LED from From to To by Step per frame,
// leaving colours alone. The last frame is exactly To.
type Ramp struct {
	From, To, Step float64
}

func (r Ramp) Frame(s *blinkt.Strip, _ time.Duration, n int) bool {
	step := math.Abs(r.Step)
	if step == 0 {
		return false
	}
	span := math.Abs(r.To - r.From)
	steps := int(math.Ceil(span/step - 1e-9))
	if n > steps {
		return false
	}
	v := r.From + float64(n)*step*sign(r.To-r.From)
	if n == steps {
		v = r.To
	}
	s.SetIntensityAll(v)
	return true
}

// Grey fades all LEDs through grey levels From..To, one level per frame.
type Grey struct {
	From, To int
}

func (g Grey) Frame(s *blinkt.Strip, _ time.Duration, n int) bool {
	d := 1
	if g.To < g.From {
		d = -1
	}
	if n > (g.To-g.From)*d {
		return false
	}
	v := g.From + n*d
	s.SetAll(v, v, v, model.Unchanged)
	return true
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
