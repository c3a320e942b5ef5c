package apa102

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coreman2200/funtimes-blinkt/model"
)

// Dump renders the stored buffer, one line per LED, without touching it.
func Dump(w io.Writer, fb *model.FrameBuffer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "Blinkt buffer contents:")
	fmt.Fprintln(bw, " N:  I  B  G  R")
	for n, l := range fb.Leds() {
		b := l.Bytes()
		fmt.Fprintf(bw, "%2d: %02x %02x %02x %02x\n", n, b[0], b[1], b[2], b[3])
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
