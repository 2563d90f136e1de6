package ics

// DurationCodec is the injected parser/formatter for calendar duration
// literals (`P1DT2H30M` and friends). The core treats the parsed value as
// opaque: it stores whatever Parse returns and hands it back to Format
// when a programmatically built Duration has no literal text of its own.
type DurationCodec interface {
	Parse(rawValue string) (any, error)
	Format(val any) (string, error)
}
