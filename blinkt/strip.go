// Package blinkt owns one APA102 strip: the frame buffer, the output driver
// and the flags and client count that go with them.
//
// Every state change and every transmission runs under a single strip-wide
// lock. The strip shifts bits through all modules in one pass, so two
// transmissions must never interleave and a transmission must never see a
// half-applied update. Set operations only change the buffer; nothing
// reaches the LEDs until Refresh.
//
// None of the operations report errors. Out-of-range indices are ignored,
// colours and intensities are truncated or clamped, and driver failures
// during Refresh are logged and dropped.
package blinkt

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-blinkt/apa102"
	"github.com/coreman2200/funtimes-blinkt/config"
	"github.com/coreman2200/funtimes-blinkt/led"
	"github.com/coreman2200/funtimes-blinkt/model"
)

type Strip struct {
	mu             sync.Mutex
	buf            model.FrameBuffer
	drv            led.Driver
	debug          bool
	resetOnRelease bool
	refs           int
	dump           io.Writer

	// fixed at construction, read without the lock
	dataLine  int
	clockLine int
}

type Option func(*Strip)

// WithDebugOutput sets where buffer dumps go when debug is enabled.
func WithDebugOutput(w io.Writer) Option {
	return func(s *Strip) { s.dump = w }
}

// WithLines overrides the reported BCM data and clock line numbers.
func WithLines(data, clock int) Option {
	return func(s *Strip) {
		s.dataLine = data
		s.clockLine = clock
	}
}

func WithDebug(on bool) Option {
	return func(s *Strip) { s.debug = on }
}

func WithResetOnRelease(on bool) Option {
	return func(s *Strip) { s.resetOnRelease = on }
}

// New returns a strip in the reset state writing through drv.
func New(drv led.Driver, opts ...Option) *Strip {
	s := &Strip{
		drv:            drv,
		resetOnRelease: true,
		dump:           os.Stdout,
		dataLine:       config.DefaultDataLine,
		clockLine:      config.DefaultClockLine,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Strip) SetLED(i int, r, g, b int, lvl model.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetLED(i, r, g, b, lvl)
}

func (s *Strip) SetAll(r, g, b int, lvl model.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetAll(r, g, b, lvl)
}

func (s *Strip) SetIntensity(i int, x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetIntensity(i, x)
}

func (s *Strip) SetIntensityAll(x float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.SetIntensityAll(x)
}

// Reset blanks the buffer. It does not transmit.
func (s *Strip) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
}

// Refresh sends the whole buffer to the strip in one transmission.
func (s *Strip) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
}

func (s *Strip) refresh() {
	if s.debug {
		if err := apa102.Dump(s.dump, &s.buf); err != nil {
			log.Debug().Err(err).Msg("buffer dump")
		}
	}
	if s.drv == nil {
		return
	}
	if err := s.drv.Write(apa102.Encode(&s.buf)); err != nil {
		log.Warn().Err(err).Msg("refresh: driver write failed")
	}
}

// EnableDebug turns buffer dumps on Refresh on or off and returns the
// previous setting.
func (s *Strip) EnableDebug(on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.debug
	s.debug = on
	return prev
}

// EnableResetOnRelease controls whether the strip is blanked when the last
// client releases it. Returns the previous setting.
func (s *Strip) EnableResetOnRelease(on bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.resetOnRelease
	s.resetOnRelease = on
	return prev
}

func (s *Strip) DataLine() int  { return s.dataLine }
func (s *Strip) ClockLine() int { return s.clockLine }

// Acquire registers a client of the strip.
func (s *Strip) Acquire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
}

// Release drops a client. When the last one goes and reset-on-release is
// enabled, the strip is blanked on a best-effort basis.
func (s *Strip) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs == 0 {
		return
	}
	s.refs--
	if s.refs == 0 && s.resetOnRelease {
		s.blank()
	}
}

func (s *Strip) blank() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Msg("release: blanking strip failed")
		}
	}()
	s.buf.Reset()
	s.refresh()
}

// Delay blocks the caller for d. It holds no lock.
func (s *Strip) Delay(d time.Duration) {
	time.Sleep(d)
}

// Snapshot returns a copy of the current buffer.
func (s *Strip) Snapshot() model.FrameBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}

func (s *Strip) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs
}

func (s *Strip) Debug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debug
}

// Close shuts the driver down. The strip must not be used afterwards.
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drv == nil {
		return nil
	}
	err := s.drv.Close()
	s.drv = nil
	return err
}
