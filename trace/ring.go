package trace

// ring is a fixed-capacity byte FIFO backing one loopback port. One
// slot is kept unused to distinguish full from empty, so a ring built
// with capacity n holds n-1 bytes.
type ring struct {
	buf   []byte
	read  int
	write int
	size  int
}

func newRing(capacity int) *ring {
	return &ring{
		buf:  make([]byte, capacity),
		size: capacity,
	}
}

// put appends one byte, reporting false when the ring is full.
func (r *ring) put(b byte) bool {
	next := (r.write + 1) % r.size
	if next == r.read {
		return false
	}
	r.buf[r.write] = b
	r.write = next
	return true
}

// used returns the number of buffered bytes.
func (r *ring) used() int {
	if r.write >= r.read {
		return r.write - r.read
	}
	return r.size - r.read + r.write
}

// free returns the number of bytes the ring can still accept.
func (r *ring) free() int {
	return r.size - r.used() - 1
}

// drain removes and returns all buffered bytes in arrival order.
func (r *ring) drain() []byte {
	n := r.used()
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = r.buf[r.read]
		r.read = (r.read + 1) % r.size
	}
	return out
}

// reset discards all buffered bytes.
func (r *ring) reset() {
	r.read = 0
	r.write = 0
}
