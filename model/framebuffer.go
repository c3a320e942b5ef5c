package model

// NumLEDs is the number of modules on the strip.
const NumLEDs = 8

// FrameBuffer holds the authoritative state of every LED in transmission
// order, left to right along the strip. Mutations never touch hardware;
// the zero value is the reset state.
//
// A FrameBuffer is not safe for concurrent use.
type FrameBuffer struct {
	leds [NumLEDs]Led
}

func inRange(i int) bool {
	return i >= 0 && i < NumLEDs
}

// Len returns the strip length.
func (f *FrameBuffer) Len() int {
	return NumLEDs
}

// Led returns the record at index i.
func (f *FrameBuffer) Led(i int) (Led, bool) {
	if !inRange(i) {
		return Led{}, false
	}
	return f.leds[i], true
}

// Leds returns a copy of all records.
func (f *FrameBuffer) Leds() []Led {
	out := make([]Led, NumLEDs)
	copy(out, f.leds[:])
	return out
}

// SetLED writes the colour of one LED and, when lvl carries a non-negative
// value, its intensity. Out-of-range indices are ignored.
func (f *FrameBuffer) SetLED(i int, r, g, b int, lvl Level) {
	if !inRange(i) {
		return
	}
	p := &f.leds[i]
	if v, ok := lvl.Scaled(); ok {
		p.setIntensity(v)
	}
	p.setRGB(r, g, b)
}

// SetAll applies SetLED to every index.
func (f *FrameBuffer) SetAll(r, g, b int, lvl Level) {
	for i := 0; i < NumLEDs; i++ {
		f.SetLED(i, r, g, b, lvl)
	}
}

// SetIntensity writes only the intensity of one LED. Negative values leave
// it unchanged.
func (f *FrameBuffer) SetIntensity(i int, x float64) {
	if !inRange(i) {
		return
	}
	if v, ok := scale(x); ok {
		f.leds[i].setIntensity(v)
	}
}

// SetIntensityAll applies SetIntensity to every index.
func (f *FrameBuffer) SetIntensityAll(x float64) {
	for i := 0; i < NumLEDs; i++ {
		f.SetIntensity(i, x)
	}
}

// Reset zeroes every record.
func (f *FrameBuffer) Reset() {
	for i := range f.leds {
		f.leds[i] = Led{}
	}
}

// Bytes returns the stored records back to back in IBGR order.
func (f *FrameBuffer) Bytes() []byte {
	buf := make([]byte, 0, NumLEDs*BytesPerLed)
	for _, l := range f.leds {
		b := l.Bytes()
		buf = append(buf, b[:]...)
	}
	return buf
}
