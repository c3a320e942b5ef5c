package led

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes one complete encoded APA102 transmission to hardware.
	Write(frame []byte) error
	// Close releases resources.
	Close() error
}
