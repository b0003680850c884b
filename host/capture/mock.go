package capture

import (
	"fmt"
	"time"

	"callisto/trace"
)

// Generator produces a synthetic event mix through a real Tracer, for
// exercising the capture path and viewer without hardware. The mix
// loosely resembles a small RTOS under load: frequent task switches,
// occasional markers, console chatter, ISRs and counters.
type Generator struct {
	tracer *trace.Tracer

	tick    uint32
	markers uint32
}

// NewGenerator creates a Generator emitting through tr.
func NewGenerator(tr *trace.Tracer) *Generator {
	return &Generator{tracer: tr}
}

// Step emits one tick of the synthetic mix. Deterministic given the
// tick count, so tests can replay it.
func (g *Generator) Step() {
	t := g.tick
	g.tick++

	if t%10 == 0 {
		from := t%4 + 1
		to := (t+1)%4 + 1
		g.tracer.TaskSwitch(from, to)
	}
	if t%15 == 0 {
		g.markers++
		g.tracer.Marker(g.markers)
	}
	if t%20 == 0 {
		g.tracer.Puts(fmt.Sprintf("tick %d", t))
	}
	if t%25 == 0 {
		isr := t%8 + 16
		g.tracer.IsrEnter(isr)
		g.tracer.IsrExit(isr)
	}
	if t%40 == 0 {
		g.tracer.IdleEnter()
	}
	if t%40 == 20 {
		g.tracer.IdleExit()
	}
	if t%50 == 0 {
		g.tracer.Counter(1, uint64(t)*1000)
	}
}

// Run steps the generator on the given interval until stop is closed.
func (g *Generator) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.Step()
		}
	}
}
