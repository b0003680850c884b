package trace

import "testing"

// writeOp records one primitive write issued to a scripted channel.
type writeOp struct {
	port uint8
	word bool
	val  uint32
}

// scriptChannel is a Channel whose readiness is scripted per test.
// If readySeq is non-empty, each Ready call consumes one entry;
// otherwise readiness comes from the busy mask (default: all ready).
// hook, if set, runs after every write with the op just issued.
type scriptChannel struct {
	busy     uint32
	readySeq []bool
	ops      []writeOp
	hook     func(op writeOp)
}

func (c *scriptChannel) Ready(port uint8) bool {
	if len(c.readySeq) > 0 {
		v := c.readySeq[0]
		c.readySeq = c.readySeq[1:]
		return v
	}
	return c.busy&(1<<port) == 0
}

func (c *scriptChannel) WriteWord(port uint8, v uint32) {
	op := writeOp{port: port, word: true, val: v}
	c.ops = append(c.ops, op)
	if c.hook != nil {
		c.hook(op)
	}
}

func (c *scriptChannel) WriteByte(port uint8, b byte) {
	op := writeOp{port: port, word: false, val: uint32(b)}
	c.ops = append(c.ops, op)
	if c.hook != nil {
		c.hook(op)
	}
}

// portOps filters the recorded ops down to one port.
func (c *scriptChannel) portOps(port uint8) []writeOp {
	var out []writeOp
	for _, op := range c.ops {
		if op.port == port {
			out = append(out, op)
		}
	}
	return out
}

func TestGateDropsWhenBusy(t *testing.T) {
	ch := &scriptChannel{busy: 1 << PortMarkers}
	g := NewGate(ch)

	if g.WriteWord(PortMarkers, 42) {
		t.Error("WriteWord on busy port: expected dropped (false), got true")
	}
	if g.WriteByte(PortMarkers, 'x') {
		t.Error("WriteByte on busy port: expected dropped (false), got true")
	}
	if len(ch.ops) != 0 {
		t.Errorf("Busy port: expected 0 writes issued, got %d", len(ch.ops))
	}
}

func TestGateWritesWhenReady(t *testing.T) {
	ch := &scriptChannel{}
	g := NewGate(ch)

	if !g.WriteWord(PortMarkers, 42) {
		t.Error("WriteWord on ready port: expected true, got false")
	}
	if len(ch.ops) != 1 {
		t.Fatalf("Expected exactly 1 write, got %d", len(ch.ops))
	}
	op := ch.ops[0]
	if !op.word || op.port != PortMarkers || op.val != 42 {
		t.Errorf("Expected word write of 42 on port %d, got %+v", PortMarkers, op)
	}
}

func TestGateReadySampledFresh(t *testing.T) {
	// Port recovers between calls: first write drops, second lands.
	ch := &scriptChannel{readySeq: []bool{false, true}}
	g := NewGate(ch)

	if g.WriteByte(PortConsole, 'a') {
		t.Error("First write should drop while port busy")
	}
	if !g.WriteByte(PortConsole, 'b') {
		t.Error("Second write should land after port recovers")
	}
	if len(ch.ops) != 1 || ch.ops[0].val != 'b' {
		t.Errorf("Expected only 'b' on the wire, got %v", ch.ops)
	}
}
