//go:build cortexm

// Package itm drives the ARM Cortex-M Instrumentation Trace Macrocell
// stimulus ports. It is the hardware implementation of trace.Channel:
// each stimulus port register doubles as the readiness flag (bit 0
// reads 1 when the port FIFO can take a write) and the write window.
package itm

import (
	"runtime/volatile"
	"unsafe"
)

const itmBase = 0xE0000000

// tcrEnable turns on the ITM with the DWT timestamp unit and sync
// packets configured the way the Callisto viewer expects.
const tcrEnable = 0x0001000D

type itmRegs struct {
	STIM [32]volatile.Register32 // stimulus ports, 0x000
	_    [864]uint32
	TER  volatile.Register32 // trace enable register, 0xE00
	_    [31]uint32
	TCR  volatile.Register32 // trace control register, 0xE80
}

var regs = (*itmRegs)(unsafe.Pointer(uintptr(itmBase)))

// ITM is the stimulus-port channel. The zero value is ready to use
// once Enable has run.
type ITM struct{}

// Enable turns the trace unit on and unlocks the stimulus ports
// selected by portMask (bit n enables port n). Call once at startup,
// before the first emit; this is the only configuration the trace
// core consumes.
func Enable(portMask uint32) ITM {
	regs.TCR.Set(tcrEnable)
	regs.TER.Set(portMask)
	return ITM{}
}

// Disable gates off all stimulus ports and stops the trace unit.
func Disable() {
	regs.TER.Set(0)
	regs.TCR.Set(0)
}

// Ready reports whether the stimulus port FIFO can accept a write.
func (ITM) Ready(port uint8) bool {
	return regs.STIM[port&0x1F].Get()&1 != 0
}

// WriteWord issues a 32-bit store to the stimulus port. The ITM
// serializes it onto the trace bus least-significant byte first.
func (ITM) WriteWord(port uint8, v uint32) {
	regs.STIM[port&0x1F].Set(v)
}

// WriteByte issues a byte-wide store to the stimulus port, which the
// ITM emits as a single-byte trace packet.
func (ITM) WriteByte(port uint8, b byte) {
	r := (*volatile.Register8)(unsafe.Pointer(&regs.STIM[port&0x1F]))
	r.Set(b)
}
