package trace

// Encoder translates one logical event into its fixed sequence of
// sub-writes. Field order and width are the wire contract: a decoder
// knows the event kind from the port alone, so records carry no
// framing or length prefix. The encoder does not define byte-level
// endianness; wire byte order is whatever the channel's word-write
// primitive produces.
type Encoder struct {
	gate *Gate
}

// NewEncoder creates an Encoder writing through the given gate.
func NewEncoder(gate *Gate) *Encoder {
	return &Encoder{gate: gate}
}

// Text writes each byte of p through its own gated byte write,
// followed by a gated terminating newline. A busy port mid-string
// drops that character and moves on; bytes already on the wire cannot
// be un-sent. Text is best-effort diagnostic output and is
// intentionally tolerant of partial loss. A nil slice is a no-op.
func (e *Encoder) Text(port uint8, p []byte) {
	if p == nil {
		return
	}
	for _, b := range p {
		e.gate.WriteByte(port, b)
	}
	e.gate.WriteByte(port, '\n')
}

// Structured emits the general two-field record shape used by the RTOS
// and generic events: [type:u8][a:u32][b:u32]. Readiness is checked
// exactly once, up front; once the gate opens, all three writes are
// issued unconditionally. Re-checking per field would yield a torn
// record on the shared port and change the drop pattern downstream
// decoders see. Returns false if the record was dropped.
func (e *Encoder) Structured(port uint8, typ uint8, a uint32, b uint32) bool {
	if !e.gate.Ready(port) {
		return false
	}
	e.gate.ch.WriteByte(port, typ)
	e.gate.ch.WriteWord(port, a)
	e.gate.ch.WriteWord(port, b)
	return true
}

// Marker emits a bare u32. Markers occupy a dedicated port where the
// value itself is the whole record, so there is no type byte. Returns
// false if dropped.
func (e *Encoder) Marker(port uint8, id uint32) bool {
	return e.gate.WriteWord(port, id)
}

// Counter emits [id:u32][value_lo:u32][value_hi:u32], low half first.
// Like Structured, the whole triplet rides on a single up-front
// readiness check. Returns false if dropped.
func (e *Encoder) Counter(port uint8, id uint32, value uint64) bool {
	if !e.gate.Ready(port) {
		return false
	}
	e.gate.ch.WriteWord(port, id)
	e.gate.ch.WriteWord(port, uint32(value))
	e.gate.ch.WriteWord(port, uint32(value>>32))
	return true
}
