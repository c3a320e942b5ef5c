package model

// Byte offsets of the IBGR record, most significant byte first on the wire.
const (
	INTENSITY_OFFSET uint8 = 0x18
	BLUE_OFFSET      uint8 = 0x10
	GREEN_OFFSET     uint8 = 0x08
	RED_OFFSET       uint8 = 0x0
)

// IntensityMax is the largest value the 5-bit global brightness field can hold.
const IntensityMax uint8 = 31

// BytesPerLed is the size of one serialized record.
const BytesPerLed = 4

// Led is one APA102 record: intensity, blue, green and red packed in a word.
type Led struct {
	val uint32
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & (mask)) >> off)
}

// NewLed builds a record from stored values. Colours keep their low 8 bits.
func NewLed(r, g, b int, intensity uint8) Led {
	var l Led
	l.setRGB(r, g, b)
	l.setIntensity(intensity)
	return l
}

func (l *Led) setRGB(r, g, b int) {
	l.val = setcolor(l.val, uint8(r), RED_OFFSET)
	l.val = setcolor(l.val, uint8(g), GREEN_OFFSET)
	l.val = setcolor(l.val, uint8(b), BLUE_OFFSET)
}

func (l *Led) setIntensity(i uint8) {
	l.val = setcolor(l.val, i, INTENSITY_OFFSET)
}

func (l Led) Red() uint8       { return getcolor(l.val, RED_OFFSET) }
func (l Led) Green() uint8     { return getcolor(l.val, GREEN_OFFSET) }
func (l Led) Blue() uint8      { return getcolor(l.val, BLUE_OFFSET) }
func (l Led) Intensity() uint8 { return getcolor(l.val, INTENSITY_OFFSET) }

// Word returns the packed IBGR value.
func (l Led) Word() uint32 {
	return l.val
}

// Bytes returns the stored record in wire order: intensity, blue, green, red.
func (l Led) Bytes() [BytesPerLed]byte {
	return [BytesPerLed]byte{l.Intensity(), l.Blue(), l.Green(), l.Red()}
}
