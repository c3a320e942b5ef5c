package model

// Level is an optional global intensity in the range [0, 1].
// The zero value leaves the stored intensity alone.
type Level struct {
	v   float64
	set bool
}

// Unchanged keeps whatever intensity an LED already has.
var Unchanged = Level{}

// Intensity wraps x as a Level. Negative values behave like Unchanged and
// values above 1 are treated as 1.
func Intensity(x float64) Level {
	return Level{v: x, set: true}
}

// IsSet reports whether the level carries a value at all.
func (l Level) IsSet() bool {
	return l.set
}

// Value returns the raw value and whether one was given.
func (l Level) Value() (float64, bool) {
	return l.v, l.set
}

// Scaled converts the level to the 5-bit hardware range. The second result
// is false when the stored intensity must be left unchanged.
func (l Level) Scaled() (uint8, bool) {
	if !l.set {
		return 0, false
	}
	return scale(l.v)
}

func scale(x float64) (uint8, bool) {
	// also rejects NaN
	if !(x >= 0) {
		return 0, false
	}
	if x > 1.0 {
		x = 1.0
	}
	return uint8(float64(IntensityMax) * x), true
}
