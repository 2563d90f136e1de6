package ics

import (
	"regexp"
	"time"
)

var (
	datePattern      = regexp.MustCompile(`^\d{4}\d{2}\d{2}$`)
	localTimePattern = regexp.MustCompile(`^\d{4}\d{2}\d{2}T\d{2}\d{2}\d{2}$`)
	UTCTimePattern   = regexp.MustCompile(`^\d{4}\d{2}\d{2}T\d{2}\d{2}\d{2}Z$`)
	durationPattern  = regexp.MustCompile(`^[+-]?P`)
)

// The decoded form of one property value. Exactly one of the five
// implementations is chosen per property:
//
//   - Text: anything that matched no other shape, verbatim
//   - UTCTime: `19980119T070000Z`
//   - ZonedTime: `19980119T070000`, resolved through the TZID parameter
//     when present, kept as a floating wall-clock time otherwise
//   - Date: `19980119` with a `VALUE=DATE` parameter
//   - Duration: `P1DT2H` with a `VALUE=DURATION` parameter, or the value
//     of a bare `DURATION` property
type TypedValue interface {
	typedValue()
}

type Text struct {
	Raw string
}

type UTCTime struct {
	Time time.Time
}

type ZonedTime struct {
	// the absolute instant in UTC; for a TZID-less value this holds the
	// wall-clock fields read as UTC (a floating time)
	Time time.Time
	// the literal text as it appeared in the input
	Raw string
}

type Date struct {
	Time time.Time
}

type Duration struct {
	// whatever the injected DurationCodec produced
	Val any
	// the literal text as it appeared in the input
	Raw string
}

func (Text) typedValue()      {}
func (UTCTime) typedValue()   {}
func (ZonedTime) typedValue() {}
func (Date) typedValue()      {}
func (Duration) typedValue()  {}

// Classify a raw property value into a TypedValue. The shapes are checked
// in a fixed order; the local-datetime shape goes first since it is the
// UTC shape minus the trailing `Z` and the two can never both match.
//
// The `VALUE=DURATION` path is deliberately lenient: a value that fails
// duration parsing degrades to Text instead of failing the decode. The
// bare `DURATION` key (handled in parseProperty) is strict. Both behaviors
// are kept on purpose.
func (d *Decoder) classifyValue(rawValue string, params []Param) (TypedValue, *CustomError) {
	switch {
	case localTimePattern.MatchString(rawValue):
		naive, err := time.Parse("20060102T150405", rawValue)
		if err != nil {
			return Text{Raw: rawValue}, nil
		}
		tzid, ok := paramValue(params, "tzid")
		if !ok {
			return ZonedTime{Time: naive, Raw: rawValue}, nil
		}
		resolved, cerr := d.resolveZone(naive, tzid)
		if cerr != nil {
			return nil, cerr
		}
		return ZonedTime{Time: resolved, Raw: rawValue}, nil
	case UTCTimePattern.MatchString(rawValue):
		result, err := time.Parse("20060102T150405Z", rawValue)
		if err != nil {
			return Text{Raw: rawValue}, nil
		}
		return UTCTime{Time: result.Truncate(time.Second)}, nil
	case datePattern.MatchString(rawValue) && paramEquals(params, "value", "DATE"):
		result, err := time.Parse("20060102", rawValue)
		if err != nil {
			return Text{Raw: rawValue}, nil
		}
		return Date{Time: result}, nil
	case durationPattern.MatchString(rawValue) && paramEquals(params, "value", "DURATION"):
		val, err := d.Durations.Parse(rawValue)
		if err != nil {
			return Text{Raw: rawValue}, nil
		}
		return Duration{Val: val, Raw: rawValue}, nil
	default:
		return Text{Raw: rawValue}, nil
	}
}

func paramValue(params []Param, key string) (string, bool) {
	for _, param := range params {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

func paramEquals(params []Param, key string, want string) bool {
	value, ok := paramValue(params, key)
	return ok && value == want
}
