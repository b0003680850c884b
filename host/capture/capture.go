// Package capture pumps raw trace bytes from a probe's serial port to
// a file or writer. It is deliberately byte-transparent: splitting the
// stream into events is the viewer's job, and the port assignment a
// decoder needs to do that lives on the target side of the link.
package capture

import (
	"io"
	"sync/atomic"
	"time"
)

// Capture copies raw trace data from a source (usually a serial.Port)
// to a destination writer on a background goroutine.
type Capture struct {
	src io.Reader
	dst io.Writer

	bytesCaptured uint64 // atomic
	readErrors    uint64 // atomic

	stopChan chan struct{}
	doneChan chan struct{}
}

// New creates a Capture ready to start.
func New(src io.Reader, dst io.Writer) *Capture {
	return &Capture{
		src:      src,
		dst:      dst,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the background pump. Call Stop to end it.
func (c *Capture) Start() {
	go c.pump()
}

// Stop signals the pump to finish and waits for it.
func (c *Capture) Stop() {
	close(c.stopChan)
	<-c.doneChan
}

// BytesCaptured returns the number of trace bytes written so far.
func (c *Capture) BytesCaptured() uint64 {
	return atomic.LoadUint64(&c.bytesCaptured)
}

// ReadErrors returns the number of transient read failures seen.
func (c *Capture) ReadErrors() uint64 {
	return atomic.LoadUint64(&c.readErrors)
}

// pump continuously reads from the source and forwards to the
// destination until EOF or Stop.
func (c *Capture) pump() {
	defer close(c.doneChan)

	buffer := make([]byte, 4096)

	for {
		select {
		case <-c.stopChan:
			return
		default:
		}

		n, err := c.src.Read(buffer)
		if n > 0 {
			if _, werr := c.dst.Write(buffer[:n]); werr != nil {
				return
			}
			atomic.AddUint64(&c.bytesCaptured, uint64(n))
		}
		if err != nil {
			if err == io.EOF {
				return
			}
			// Transient probe hiccup; back off briefly and keep going
			atomic.AddUint64(&c.readErrors, 1)
			time.Sleep(10 * time.Millisecond)
		}
	}
}
