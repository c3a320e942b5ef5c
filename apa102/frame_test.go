package apa102_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-blinkt/apa102"
	"github.com/coreman2200/funtimes-blinkt/model"
)

func TestEncodeLength(t *testing.T) {
	fb := &model.FrameBuffer{}
	frame := apa102.Encode(fb)
	assert.Len(t, frame, 4+4*model.NumLEDs+4)
	assert.Equal(t, 32+32*model.NumLEDs+32, len(frame)*8)
	assert.Equal(t, apa102.StartFrame[:], frame[:4])
	assert.Equal(t, apa102.EndFrame[:], frame[len(frame)-4:])
}

func TestEncodeForcesIntensityHighBits(t *testing.T) {
	fb := &model.FrameBuffer{}
	fb.SetIntensity(0, 0)
	fb.SetIntensity(1, 0.5)
	fb.SetIntensity(2, 1)

	frame := apa102.Encode(fb)
	for i := 0; i < model.NumLEDs; i++ {
		assert.Equal(t, byte(0xe0), frame[4+i*4]&0xe0, "led %d", i)
	}
	assert.Equal(t, byte(0xe0), frame[4])
	assert.Equal(t, byte(0xe0|15), frame[8])
	assert.Equal(t, byte(0xff), frame[12])

	// stored value is not altered by encoding
	l, _ := fb.Led(0)
	assert.Equal(t, uint8(0), l.Intensity())
}

func TestEncodeSetAllRed(t *testing.T) {
	fb := &model.FrameBuffer{}
	fb.SetAll(255, 0, 0, model.Intensity(1.0))

	frame := apa102.Encode(fb)
	for i := 0; i < model.NumLEDs; i++ {
		assert.Equal(t, []byte{0x1F | apa102.IntensityMask, 0x00, 0x00, 0xFF}, frame[4+i*4:8+i*4], "led %d", i)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	fb := &model.FrameBuffer{}
	for i := 0; i < model.NumLEDs; i++ {
		fb.SetLED(i, i*30, 255-i, i, model.Intensity(float64(i)/7))
	}
	leds, err := apa102.Decode(apa102.Encode(fb))
	require.NoError(t, err)
	assert.Equal(t, fb.Leds(), leds)
}

func TestDecodeErrors(t *testing.T) {
	good := apa102.Encode(&model.FrameBuffer{})

	_, err := apa102.Decode(good[:10])
	assert.ErrorIs(t, err, apa102.ErrFrameLength)

	bad := append([]byte{}, good...)
	bad[0] = 1
	_, err = apa102.Decode(bad)
	assert.ErrorIs(t, err, apa102.ErrStartFrame)

	bad = append([]byte{}, good...)
	bad[len(bad)-1] = 0
	_, err = apa102.Decode(bad)
	assert.ErrorIs(t, err, apa102.ErrEndFrame)

	bad = append([]byte{}, good...)
	bad[4] = 0x1f
	_, err = apa102.Decode(bad)
	assert.ErrorIs(t, err, apa102.ErrIntensityMask)
}

func TestDump(t *testing.T) {
	fb := &model.FrameBuffer{}
	fb.SetLED(0, 0xff, 0x7f, 0x00, model.Intensity(1.0))
	fb.SetLED(7, 0x80, 0x80, 0x80, model.Unchanged)
	before := fb.Bytes()

	var out bytes.Buffer
	require.NoError(t, apa102.Dump(&out, fb))

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 2+model.NumLEDs+2)
	assert.Equal(t, "Blinkt buffer contents:", lines[0])
	assert.Equal(t, " N:  I  B  G  R", lines[1])
	assert.Equal(t, " 0: 1f 00 7f ff", lines[2])
	assert.Equal(t, " 1: 00 00 00 00", lines[3])
	assert.Equal(t, " 7: 00 80 80 80", lines[9])
	assert.Equal(t, "", lines[10])
	assert.Equal(t, before, fb.Bytes())
}
