package settings

import "pulsegen-go/errcode"

// Header is the literal version string at the start of every record. Any
// layout change bumps it, which invalidates old records wholesale instead
// of misreading them.
const Header = "PGEN01"

const (
	payloadSize = 8
	// RecordSize is header + payload + one checksum byte.
	RecordSize = len(Header) + payloadSize + 1
)

// Encode packs the record: header, little-endian payload, checksum.
func Encode(r Record) []byte {
	out := make([]byte, RecordSize)
	copy(out, Header)
	p := out[len(Header):]
	p[0] = byte(r.MinFreq)
	p[1] = byte(r.MinFreq >> 8)
	p[2] = byte(r.MaxFreq)
	p[3] = byte(r.MaxFreq >> 8)
	p[4] = r.PulseRatio
	p[5] = r.CurveShape
	if r.FreqFloating {
		p[6] = 1
	}
	p[7] = r.FreqUnits
	out[RecordSize-1] = checksum(out[:RecordSize-1])
	return out
}

// Decode validates the header byte-for-byte and the checksum before
// unpacking. Errors are errcode values so callers can branch on them.
func Decode(raw []byte) (Record, error) {
	if len(raw) < RecordSize {
		return Record{}, errcode.ShortRecord
	}
	for i := 0; i < len(Header); i++ {
		if raw[i] != Header[i] {
			return Record{}, errcode.BadHeader
		}
	}
	if raw[RecordSize-1] != checksum(raw[:RecordSize-1]) {
		return Record{}, errcode.BadChecksum
	}
	p := raw[len(Header):]
	return Record{
		MinFreq:      uint16(p[0]) | uint16(p[1])<<8,
		MaxFreq:      uint16(p[2]) | uint16(p[3])<<8,
		PulseRatio:   p[4],
		CurveShape:   p[5],
		FreqFloating: p[6] != 0,
		FreqUnits:    p[7],
	}, nil
}

// checksum is XOR over header and payload, seeded so an all-zero store
// never validates.
func checksum(b []byte) byte {
	c := byte(0x5A)
	for _, v := range b {
		c ^= v
	}
	return c
}
