package ics_test

import (
	"strings"
	"testing"
	"time"

	"icsd/src-server/ics"
	"icsd/src-server/ics/icsdur"
)

func newEncoder() *ics.Encoder {
	return &ics.Encoder{Durations: icsdur.New()}
}

func roundTrip(t *testing.T, input string) {
	t.Helper()
	doc, err := newDecoder().Decode(input)
	if err != nil {
		t.Fatal(err)
	}
	output := newEncoder().Encode(doc)
	if output != input {
		t.Errorf("round trip not byte-exact\n in: %q\nout: %q", input, output)
	}
}

func TestRoundTripStructuredLocation(t *testing.T) {
	// quoted address with internal whitespace, base64 padding (`=` inside
	// an unquoted parameter value), parameter order, geo: value
	roundTrip(t, "BEGIN:VCALENDAR\n"+
		"BEGIN:VEVENT\n"+
		"X-APPLE-STRUCTURED-LOCATION;VALUE=URI;X-ADDRESS=\"1 Infinite Loop  Cupertino CA\";X-APPLE-MAPKIT-HANDLE=CAES6AEaIQl3PlS6q4dAQA==;X-TITLE=Apple Park:geo:37.334886,-122.008988\n"+
		"END:VEVENT\n"+
		"END:VCALENDAR\n")
}

func TestRoundTripTypedValues(t *testing.T) {
	roundTrip(t, "BEGIN:VEVENT\n"+
		"DTSTAMP:20210601T000000Z\n"+
		"DTSTART;TZID=America/Chicago:20210601T000000\n"+
		"DTEND;TZID=GMT-0500:20210601T010000\n"+
		"X-DAY;VALUE=DATE:20210601\n"+
		"DURATION:PT15M\n"+
		"X-DELAY;VALUE=DURATION:P1DT2H\n"+
		"X-BAD;VALUE=DURATION:Pnope\n"+
		"END:VEVENT\n")
}

func TestRoundTripEscapedNewline(t *testing.T) {
	roundTrip(t, "BEGIN:VEVENT\n"+
		`DESCRIPTION:line one\nline two`+"\n"+
		"END:VEVENT\n")
}

func TestRoundTripRepeatedBlocksAndParams(t *testing.T) {
	roundTrip(t, "BEGIN:VCALENDAR\n"+
		"BEGIN:VEVENT\n"+
		"ATTENDEE;ROLE=CHAIR;ROLE=CHAIR:mailto:a@example.com\n"+
		"END:VEVENT\n"+
		"BEGIN:VEVENT\n"+
		"SUMMARY:second\n"+
		"END:VEVENT\n"+
		"END:VCALENDAR\n")
}

func TestEncodeFolded(t *testing.T) {
	long := "DESCRIPTION:" + strings.Repeat("x", 200)
	doc, err := newDecoder().Decode(long + "\n")
	if err != nil {
		t.Fatal(err)
	}

	encoder := &ics.Encoder{Durations: icsdur.New(), Fold: true}
	output := encoder.Encode(doc)
	for _, line := range strings.Split(strings.TrimSuffix(output, "\n"), "\n") {
		if len(line) > 76 {
			t.Error("line longer than fold width:", len(line))
		}
	}

	// folding must not change the decoded document
	redecoded, err := newDecoder().Decode(output)
	if err != nil {
		t.Fatal(err)
	}
	property := redecoded.Entries[0].(*ics.Property)
	if text, ok := property.Value.(ics.Text); !ok || text.Raw != strings.Repeat("x", 200) {
		t.Error("folded encode lost content")
	}
}

func TestEncodeConstructedDuration(t *testing.T) {
	// a programmatically built Duration has no literal; the codec formats it
	val, err := icsdur.New().Parse("PT30M")
	if err != nil {
		t.Fatal(err)
	}
	doc := &ics.Document{Entries: []ics.Entry{
		&ics.Property{Key: "duration", Value: ics.Duration{Val: val}},
	}}
	if got := newEncoder().Encode(doc); got != "DURATION:PT30M\n" {
		t.Error("unexpected encoding:", got)
	}
}

func TestEncodeConstructedTimes(t *testing.T) {
	doc := &ics.Document{Entries: []ics.Entry{
		&ics.Property{Key: "dtstamp", Value: ics.UTCTime{Time: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)}},
		&ics.Property{Key: "x_day", Value: ics.Date{Time: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
			Params: []ics.Param{{Key: "value", Value: "DATE"}}},
	}}
	want := "DTSTAMP:20210601T000000Z\nX-DAY;VALUE=DATE:20210601\n"
	if got := newEncoder().Encode(doc); got != want {
		t.Errorf("unexpected encoding\nwant: %q\n got: %q", want, got)
	}
}
