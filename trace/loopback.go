package trace

// Loopback is an in-memory Channel: one bounded byte FIFO per port
// standing in for a hardware lane. Readiness derives from free space,
// so the drop-on-busy discipline is observable without hardware: a
// port whose consumer stops draining fills up and reports busy exactly
// like a congested stimulus port.
//
// Words are serialized least-significant byte first, matching what the
// ITM emits on the trace bus.
//
// Loopback is not safe for concurrent use from multiple goroutines; it
// models a single-core target where contexts never run in parallel.
type Loopback struct {
	ports [NumPorts]*ring
	busy  uint32 // forced-busy mask for tests and demos
}

// DefaultLoopbackDepth is the per-port FIFO capacity used by
// NewLoopback when no depth is given.
const DefaultLoopbackDepth = 256

// NewLoopback creates a Loopback whose ports each buffer depth bytes.
// A depth below 8 is raised to 8 so a full counter record always fits
// an empty port.
func NewLoopback(depth int) *Loopback {
	if depth < 8 {
		depth = 8
	}
	l := &Loopback{}
	for i := range l.ports {
		// +1 for the ring's reserved slot
		l.ports[i] = newRing(depth + 1)
	}
	return l
}

// Ready reports whether the port can accept a full word. A port is
// busy when forced busy via SetBusy or when fewer than four bytes of
// FIFO space remain.
func (l *Loopback) Ready(port uint8) bool {
	if port >= NumPorts {
		return false
	}
	if l.busy&(1<<port) != 0 {
		return false
	}
	return l.ports[port].free() >= 4
}

// WriteWord serializes v onto the port, low byte first. Bytes that do
// not fit are lost, mirroring a hardware lane written while busy.
func (l *Loopback) WriteWord(port uint8, v uint32) {
	if port >= NumPorts {
		return
	}
	r := l.ports[port]
	r.put(byte(v))
	r.put(byte(v >> 8))
	r.put(byte(v >> 16))
	r.put(byte(v >> 24))
}

// WriteByte appends one byte to the port. Dropped silently if the
// FIFO is full.
func (l *Loopback) WriteByte(port uint8, b byte) {
	if port >= NumPorts {
		return
	}
	l.ports[port].put(b)
}

// SetBusy forces the port to report not-ready regardless of FIFO
// space. Used to script congestion in tests.
func (l *Loopback) SetBusy(port uint8, busy bool) {
	if port >= NumPorts {
		return
	}
	if busy {
		l.busy |= 1 << port
	} else {
		l.busy &^= 1 << port
	}
}

// Drain removes and returns everything buffered on the port, in
// emission order.
func (l *Loopback) Drain(port uint8) []byte {
	if port >= NumPorts {
		return nil
	}
	return l.ports[port].drain()
}

// Buffered returns the number of bytes waiting on the port.
func (l *Loopback) Buffered(port uint8) int {
	if port >= NumPorts {
		return 0
	}
	return l.ports[port].used()
}

// Reset discards all buffered bytes on every port and clears forced
// busy state.
func (l *Loopback) Reset() {
	for _, r := range l.ports {
		r.reset()
	}
	l.busy = 0
}
