// Package trace implements the Callisto stimulus-port trace protocol.
//
// Firmware emits structured diagnostic events (text, markers, RTOS
// transitions, counters) onto a set of independently gated hardware
// write lanes. Every write polls a per-port ready flag and silently
// drops on a busy port; nothing in this package blocks, allocates, or
// takes a lock, so every entry point is safe from interrupt context.
package trace

// Channel is the hardware-facing surface of the protocol: one
// write-gated output lane per port. Anything exposing this shape
// satisfies the core: the ITM stimulus ports, a PIO-driven software
// lane, or an in-memory Loopback for testing.
type Channel interface {
	// Ready reports whether the port can accept a write right now.
	Ready(port uint8) bool

	// WriteWord writes a 32-bit value to the port.
	WriteWord(port uint8, v uint32)

	// WriteByte writes a single byte to the port.
	WriteByte(port uint8, b byte)
}

// Standard port assignments. Fixed at configuration time and never
// remapped at runtime; the port number is the only discriminator a
// decoder has, so these are part of the wire contract.
const (
	PortConsole  uint8 = 0 // text console output, newline-terminated
	PortRTOS     uint8 = 1 // RTOS events (task switch, ISR, idle)
	PortMarkers  uint8 = 2 // bare u32 markers
	PortCounters uint8 = 3 // performance counters
	PortUserBase uint8 = 4 // user-defined ports start here
)

// NumPorts is the number of stimulus ports in the reference design.
const NumPorts = 32

// Event type bytes for the RTOS port. Each RTOS record on the wire is
// [type:u8][field_a:u32][field_b:u32]; unused fields carry a literal 0
// reserved for future extension without changing record width.
const (
	EvtTaskSwitch uint8 = 0x01
	EvtIsrEnter   uint8 = 0x02
	EvtIsrExit    uint8 = 0x03
	EvtIdleEnter  uint8 = 0x04
	EvtIdleExit   uint8 = 0x05
)
