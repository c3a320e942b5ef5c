package anim

import (
	"context"
	"time"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
	"github.com/coreman2200/funtimes-blinkt/model"
)

// Demo is the strip self-test: a fixed rainbow, an intensity ramp down and
// back up, a grey ramp up and back down, then everything off.
type Demo struct {
	Hold      time.Duration // pause between stages
	RampEvery time.Duration
	GreyEvery time.Duration
}

func DefaultDemo() Demo {
	return Demo{
		Hold:      2 * time.Second,
		RampEvery: 25 * time.Millisecond,
		GreyEvery: 10 * time.Millisecond,
	}
}

var demoColors = [model.NumLEDs][3]int{
	{0xff, 0x00, 0x00}, // red
	{0xff, 0x7f, 0x00}, // orange
	{0xff, 0xff, 0x00}, // yellow
	{0x00, 0xff, 0x00}, // green
	{0x00, 0x00, 0xff}, // blue
	{0x20, 0x00, 0x40}, // indigo
	{0x80, 0x00, 0xff}, // violet
	{0x80, 0x80, 0x80}, // white
}

// Run plays the demo on s. The strip is always blanked on return.
func (d Demo) Run(ctx context.Context, s *blinkt.Strip) error {
	defer func() {
		s.Reset()
		s.Refresh()
	}()

	for i, c := range demoColors {
		s.SetLED(i, c[0], c[1], c[2], model.Unchanged)
	}
	s.SetIntensityAll(1.0)
	s.Refresh()

	stages := []struct {
		every time.Duration
		a     Animation
	}{
		{d.RampEvery, Ramp{From: 1, To: 0, Step: 0.01}},
		{d.RampEvery, Ramp{From: 0, To: 1, Step: 0.01}},
		{d.GreyEvery, Func(func(s *blinkt.Strip, _ time.Duration, n int) bool {
			if n == 0 {
				s.SetIntensityAll(1.0)
			}
			return Grey{From: 0, To: 255}.Frame(s, 0, n)
		})},
		{d.GreyEvery, Grey{From: 255, To: 0}},
	}
	for _, st := range stages {
		if err := hold(ctx, d.Hold); err != nil {
			return err
		}
		l := &Looper{Strip: s, Period: st.every}
		if err := l.Run(ctx, st.a); err != nil {
			return err
		}
	}
	return hold(ctx, d.Hold)
}

func hold(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
