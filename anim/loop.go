package anim

import (
	"context"
	"time"

	"github.com/coreman2200/funtimes-blinkt/blinkt"
)

const DFLT_FPS = 30

// Animation paints one frame into the strip buffer. t is the time since the
// loop started and n the frame number. Returning false ends the loop.
type Animation interface {
	Frame(s *blinkt.Strip, t time.Duration, n int) bool
}

// Func adapts a plain function to Animation.
type Func func(s *blinkt.Strip, t time.Duration, n int) bool

func (f Func) Frame(s *blinkt.Strip, t time.Duration, n int) bool { return f(s, t, n) }

// Looper drives an Animation at a fixed period, refreshing the strip after
// every frame.
type Looper struct {
	Strip  *blinkt.Strip
	Period time.Duration
}

func NewLooper(s *blinkt.Strip, fps int) *Looper {
	if fps <= 0 {
		fps = DFLT_FPS
	}
	return &Looper{Strip: s, Period: time.Second / time.Duration(fps)}
}

// Run blocks until the animation finishes or ctx is done. It returns
// ctx.Err() in the latter case.
func (l *Looper) Run(ctx context.Context, a Animation) error {
	period := l.Period
	if period <= 0 {
		period = time.Second / DFLT_FPS
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	start := time.Now()
	for n := 0; ; n++ {
		if !a.Frame(l.Strip, time.Since(start), n) {
			return nil
		}
		l.Strip.Refresh()

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
