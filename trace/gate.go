package trace

// Gate wraps a Channel with the single invariant the whole protocol is
// built on: never write to a port that is not ready. It is a strict
// poll-once-and-go-or-drop primitive with no retry, no wait and no
// timeout.
// Dropping is expected steady-state behavior under bus pressure, not a
// fault, so a drop is reported as false rather than an error.
type Gate struct {
	ch Channel
}

// NewGate creates a Gate over the given channel.
func NewGate(ch Channel) *Gate {
	return &Gate{ch: ch}
}

// Ready reports whether the port can accept a write right now. The
// readiness flag is sampled fresh on every call; there is no cached
// state anywhere in the protocol.
func (g *Gate) Ready(port uint8) bool {
	return g.ch.Ready(port)
}

// WriteWord writes one 32-bit value if the port is ready. Returns
// false with no write issued when the port is busy.
func (g *Gate) WriteWord(port uint8, v uint32) bool {
	if !g.ch.Ready(port) {
		return false
	}
	g.ch.WriteWord(port, v)
	return true
}

// WriteByte writes one byte if the port is ready. Returns false with
// no write issued when the port is busy.
func (g *Gate) WriteByte(port uint8, b byte) bool {
	if !g.ch.Ready(port) {
		return false
	}
	g.ch.WriteByte(port, b)
	return true
}
