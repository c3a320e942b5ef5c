// Package apa102 serializes a frame buffer into the APA102 wire format: a
// 32-bit zero start frame, one 32-bit word per LED (brightness, blue, green,
// red) and a 32-bit all-ones end frame.
package apa102

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-blinkt/model"
)

// IntensityMask covers the three unused high bits of the brightness byte.
// The LEDs require them set regardless of the stored intensity.
const IntensityMask byte = ^model.IntensityMax

var (
	StartFrame = [4]byte{0x00, 0x00, 0x00, 0x00}
	EndFrame   = [4]byte{0xff, 0xff, 0xff, 0xff}
)

// FrameLen is the number of bytes Encode produces.
const FrameLen = len(StartFrame) + model.NumLEDs*model.BytesPerLed + len(EndFrame)

var (
	ErrFrameLength   = errors.New("apa102: bad frame length")
	ErrStartFrame    = errors.New("apa102: bad start frame")
	ErrEndFrame      = errors.New("apa102: bad end frame")
	ErrIntensityMask = errors.New("apa102: brightness byte missing high bits")
)

// Encode returns the full transmission for fb.
func Encode(fb *model.FrameBuffer) []byte {
	buf := make([]byte, 0, FrameLen)
	buf = append(buf, StartFrame[:]...)
	for _, l := range fb.Leds() {
		b := l.Bytes()
		buf = append(buf, b[0]|IntensityMask, b[1], b[2], b[3])
	}
	return append(buf, EndFrame[:]...)
}

// Decode parses a transmission produced by Encode back into LED records.
func Decode(frame []byte) ([]model.Led, error) {
	if len(frame) != FrameLen {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrFrameLength, len(frame), FrameLen)
	}
	if [4]byte(frame[:4]) != StartFrame {
		return nil, ErrStartFrame
	}
	if [4]byte(frame[FrameLen-4:]) != EndFrame {
		return nil, ErrEndFrame
	}
	leds := make([]model.Led, 0, model.NumLEDs)
	for i := 0; i < model.NumLEDs; i++ {
		w := frame[4+i*model.BytesPerLed:]
		if w[0]&IntensityMask != IntensityMask {
			return nil, fmt.Errorf("%w: led %d", ErrIntensityMask, i)
		}
		leds = append(leds, model.NewLed(int(w[3]), int(w[2]), int(w[1]), w[0]&model.IntensityMax))
	}
	return leds, nil
}
