package capture

import (
	"bytes"
	"testing"

	"callisto/trace"
)

func runGenerator(steps int) *trace.Loopback {
	lb := trace.NewLoopback(16 * 1024)
	g := NewGenerator(trace.NewTracer(lb))
	for i := 0; i < steps; i++ {
		g.Step()
	}
	return lb
}

func TestGeneratorCoversAllPorts(t *testing.T) {
	lb := runGenerator(100)

	ports := []struct {
		name string
		port uint8
	}{
		{"console", trace.PortConsole},
		{"rtos", trace.PortRTOS},
		{"markers", trace.PortMarkers},
		{"counters", trace.PortCounters},
	}
	for _, p := range ports {
		if lb.Buffered(p.port) == 0 {
			t.Errorf("Generator left %s port empty after 100 steps", p.name)
		}
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a := runGenerator(200)
	b := runGenerator(200)

	for port := uint8(0); port < 4; port++ {
		if !bytes.Equal(a.Drain(port), b.Drain(port)) {
			t.Errorf("Port %d streams differ between identical runs", port)
		}
	}
}

func TestGeneratorRTOSRecordsAreWellFormed(t *testing.T) {
	lb := runGenerator(100)

	// RTOS records are fixed 9-byte [type][a][b] units on the wire, so
	// the stream length must be a multiple of 9 and every type byte in
	// range.
	stream := lb.Drain(trace.PortRTOS)
	if len(stream)%9 != 0 {
		t.Fatalf("RTOS stream length %d is not a multiple of 9", len(stream))
	}
	for i := 0; i < len(stream); i += 9 {
		typ := stream[i]
		if typ < trace.EvtTaskSwitch || typ > trace.EvtIdleExit {
			t.Errorf("Record %d: unexpected type byte 0x%02x", i/9, typ)
		}
	}
}

func TestGeneratorMarkersIncrement(t *testing.T) {
	lb := runGenerator(31) // markers fire at ticks 0, 15, 30

	stream := lb.Drain(trace.PortMarkers)
	if len(stream) != 12 {
		t.Fatalf("Expected 3 marker words (12 bytes), got %d bytes", len(stream))
	}
	for i := 0; i < 3; i++ {
		id := uint32(stream[i*4]) | uint32(stream[i*4+1])<<8 |
			uint32(stream[i*4+2])<<16 | uint32(stream[i*4+3])<<24
		if id != uint32(i+1) {
			t.Errorf("Marker %d: expected id %d, got %d", i, i+1, id)
		}
	}
}
