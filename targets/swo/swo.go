//go:build rp2040

// Package swo provides stimulus-port semantics on chips without an
// ITM. Each trace port is mapped onto one RP2040 PIO state machine
// running a UART-style TX program on its own pin; the state machine's
// TX FIFO is the port FIFO, so readiness and drop-on-busy fall out of
// the hardware for free.
package swo

import (
	"device/rp"
	"errors"
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// NumLanes is the number of trace ports this target can drive: one
// per PIO0 state machine. Ports at or above NumLanes always report
// not ready.
const NumLanes = 4

var errNoProgramSpace = errors.New("swo: no PIO instruction space for lane program")

// Config selects the lanes to run and the pin and bit rate for each.
// LaneMask is the startup-time port bitmask from the trace design:
// bit n enables lane n. Disabled lanes never report ready.
type Config struct {
	Baud     uint32
	Pins     [NumLanes]machine.Pin
	LaneMask uint32
}

// uartFrameProgram builds the per-lane TX program: one FIFO word in,
// one 8N1 frame out, 8 PIO cycles per bit.
//
//	0: pull block        ; one byte per FIFO entry
//	1: set x, 7          ; 8 data bits
//	2: set pins, 0 [7]   ; start bit
//	3: out pins, 1 [6]   ; data bit, LSB first
//	4: jmp x--, 3
//	5: set pins, 1 [7]   ; stop bit, wrap to 0
func uartFrameProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),
		asm.Set(rp2pio.SetDestX, 7).Encode(),
		asm.Set(rp2pio.SetDestPins, 0).Delay(7).Encode(),
		asm.Out(rp2pio.OutDestPins, 1).Delay(6).Encode(),
		asm.Jmp(3, rp2pio.JmpXNZeroDec).Encode(),
		asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode(),
	}
}

const programOrigin = 0 // load at offset 0 for correct jump addresses

type lane struct {
	sm      rp2pio.StateMachine
	enabled bool
}

// SWO is the PIO-backed trace channel. Create with Configure.
type SWO struct {
	lanes [NumLanes]lane
}

// Configure loads the lane program into PIO0 and starts one state
// machine per enabled lane. Call once at startup.
func Configure(c Config) (*SWO, error) {
	if c.Baud == 0 {
		c.Baud = 115200
	}

	pio := rp2pio.PIO0
	program := uartFrameProgram()
	offset, err := pio.AddProgram(program, programOrigin)
	if err != nil {
		return nil, errNoProgramSpace
	}

	// 8 PIO cycles per bit
	div := uint16(machine.CPUFrequency() / (8 * c.Baud))
	if div == 0 {
		div = 1
	}

	s := &SWO{}
	for i := uint8(0); i < NumLanes; i++ {
		if c.LaneMask&(1<<i) == 0 {
			continue
		}
		pin := c.Pins[i]
		sm := pio.StateMachine(i)
		sm.TryClaim()

		pin.Configure(machine.PinConfig{Mode: pio.PinMode()})

		cfg := rp2pio.DefaultStateMachineConfig()
		cfg.SetSetPins(pin, 1)
		cfg.SetOutPins(pin, 1)
		// Shift right so bits leave LSB first; no autopull, the
		// program pulls one frame per FIFO word.
		cfg.SetOutShift(true, false, 8)
		cfg.SetWrap(offset+uint8(len(program))-1, offset)
		cfg.SetClkDivIntFrac(div, 0)

		sm.Init(offset, cfg)
		sm.SetPindirsConsecutive(pin, 1, true)
		// Idle high like any UART line.
		sm.SetPinsConsecutive(pin, 1, true)
		sm.SetEnabled(true)

		s.lanes[i] = lane{sm: sm, enabled: true}
	}

	return s, nil
}

// Ready reports whether the lane can absorb a full word right now.
// The lane FIFO is four entries deep and a word write consumes all
// four, so ready means the FIFO is completely empty.
func (s *SWO) Ready(port uint8) bool {
	if port >= NumLanes || !s.lanes[port].enabled {
		return false
	}
	return rp.PIO0.FSTAT.Get()&(1<<(rp.PIO0_FSTAT_TXEMPTY_Pos+port)) != 0
}

// WriteWord sends v as four byte frames, least-significant first,
// matching the ITM's trace bus byte order.
func (s *SWO) WriteWord(port uint8, v uint32) {
	if port >= NumLanes || !s.lanes[port].enabled {
		return
	}
	sm := s.lanes[port].sm
	sm.TxPut(v & 0xFF)
	sm.TxPut((v >> 8) & 0xFF)
	sm.TxPut((v >> 16) & 0xFF)
	sm.TxPut((v >> 24) & 0xFF)
}

// WriteByte sends one byte frame on the lane.
func (s *SWO) WriteByte(port uint8, b byte) {
	if port >= NumLanes || !s.lanes[port].enabled {
		return
	}
	s.lanes[port].sm.TxPut(uint32(b))
}

// Stop halts all lanes and clears their FIFOs.
func (s *SWO) Stop() {
	for i := range s.lanes {
		if !s.lanes[i].enabled {
			continue
		}
		s.lanes[i].sm.SetEnabled(false)
		s.lanes[i].sm.ClearFIFOs()
		s.lanes[i].enabled = false
	}
}
