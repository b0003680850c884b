package trace

import (
	"fmt"
	"io"
)

// Tracer is the application-facing event surface: one named method per
// event kind, bound to the standard port assignments. All methods are
// fire-and-forget: they return nothing, drop silently when a port is
// busy, and never alter or block the instrumented program. Every call
// completes in a bounded number of register-style writes, so a Tracer
// may be shared freely between task and interrupt context.
//
// Ordering is guaranteed only for calls on the same port from the same
// execution context. An interrupt handler that preempts an in-progress
// multi-field record on the same port will interleave with its
// remaining sub-writes; callers that need ordered records across
// interrupt boundaries must wrap emission in Exclusive or dedicate a
// user port per context.
type Tracer struct {
	enc *Encoder
}

// NewTracer creates a Tracer emitting on the given channel.
func NewTracer(ch Channel) *Tracer {
	return &Tracer{enc: NewEncoder(NewGate(ch))}
}

// Puts sends one line of text to the console port. The terminating
// newline is added on the wire.
func (t *Tracer) Puts(s string) {
	if s == "" {
		t.enc.Text(PortConsole, []byte{})
		return
	}
	t.enc.Text(PortConsole, []byte(s))
}

// Text sends one line of raw bytes to the console port. A nil slice is
// a no-op.
func (t *Tracer) Text(p []byte) {
	t.enc.Text(PortConsole, p)
}

// Printf formats through fmt and sends the result as one console line.
// Meant for hosted builds and demos; on allocation-sensitive targets
// prefer Puts with a preformatted buffer.
func (t *Tracer) Printf(format string, args ...interface{}) {
	t.Puts(fmt.Sprintf(format, args...))
}

// Marker sends a marker event.
func (t *Tracer) Marker(id uint32) {
	t.enc.Marker(PortMarkers, id)
}

// TaskSwitch records a scheduler switch from one task to another.
func (t *Tracer) TaskSwitch(from, to uint32) {
	t.enc.Structured(PortRTOS, EvtTaskSwitch, from, to)
}

// IsrEnter records entry into the given interrupt handler.
func (t *Tracer) IsrEnter(id uint32) {
	t.enc.Structured(PortRTOS, EvtIsrEnter, id, 0)
}

// IsrExit records exit from the given interrupt handler.
func (t *Tracer) IsrExit(id uint32) {
	t.enc.Structured(PortRTOS, EvtIsrExit, id, 0)
}

// IdleEnter records the processor entering its idle state.
func (t *Tracer) IdleEnter() {
	t.enc.Structured(PortRTOS, EvtIdleEnter, 0, 0)
}

// IdleExit records the processor leaving its idle state.
func (t *Tracer) IdleExit() {
	t.enc.Structured(PortRTOS, EvtIdleExit, 0, 0)
}

// Counter sends a 64-bit counter sample.
func (t *Tracer) Counter(id uint32, value uint64) {
	t.enc.Counter(PortCounters, id, value)
}

// Event sends a generic two-field record with a caller-chosen type
// byte on a caller-chosen port, typically PortUserBase and up.
func (t *Tracer) Event(port uint8, typ uint8, a uint32, b uint32) {
	t.enc.Structured(port, typ, a, b)
}

// Console returns an io.Writer that forwards each Write as one console
// line, so the tracer can back the standard library log package or any
// other line-oriented writer on hosted builds.
func (t *Tracer) Console() io.Writer {
	return consoleWriter{t: t}
}

type consoleWriter struct {
	t *Tracer
}

// Write emits p as one console line, stripping a single trailing
// newline since Text terminates the line on the wire. Always reports
// full length: drops are invisible to the caller, as everywhere else
// in the protocol.
func (w consoleWriter) Write(p []byte) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}
	if p[n-1] == '\n' {
		p = p[:n-1]
	}
	w.t.enc.Text(PortConsole, p)
	return n, nil
}
