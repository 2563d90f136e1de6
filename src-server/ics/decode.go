package ics

// Decoder turns raw calendar text into a Document. Both capabilities are
// required; tests substitute fakes, the service wires tzdb and icsdur.
//
// A Decoder holds no per-call state, so one instance may be shared across
// goroutines.
type Decoder struct {
	Zones     ZoneDB
	Durations DurationCodec
}

func NewDecoder(zones ZoneDB, durations DurationCodec) *Decoder {
	return &Decoder{
		Zones:     zones,
		Durations: durations,
	}
}

// Decode raw calendar text. Decoding is atomic: the first malformed
// property, unterminated block, bad bare-DURATION value or unknown time
// zone fails the whole call with a *CustomError carrying the kind.
func (d *Decoder) Decode(rawText string) (*Document, *CustomError) {
	entries, err := d.buildEntries(unfoldLines(rawText))
	if err != nil {
		return nil, err
	}
	return &Document{Entries: entries}, nil
}
