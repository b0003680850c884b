//go:build tinygo

package trace

import "runtime/interrupt"

// Exclusive runs fn with interrupts masked. The protocol itself never
// locks; this is the opt-in tool for callers that need a multi-field
// record to reach the wire without an interrupt handler interleaving
// its own sub-writes on the same port.
func Exclusive(fn func()) {
	state := interrupt.Disable()
	fn()
	interrupt.Restore(state)
}
