package ics_test

import (
	"testing"
	"time"

	"icsd/src-server/ics"
	"icsd/src-server/ics/icsdur"
	"icsd/src-server/ics/tzdb"
)

func newDecoder() *ics.Decoder {
	return ics.NewDecoder(tzdb.New(), icsdur.New())
}

func TestDecodeBlockTree(t *testing.T) {
	doc, err := newDecoder().Decode("BEGIN:VCALENDAR\n" +
		"PRODID:-//test//EN\n" +
		"BEGIN:VEVENT\n" +
		"SUMMARY:first\n" +
		"END:VEVENT\n" +
		"BEGIN:VEVENT\n" +
		"SUMMARY:second\n" +
		"END:VEVENT\n" +
		"END:VCALENDAR\n")
	if err != nil {
		t.Fatal(err)
	}

	calendar := doc.Block("VCALENDAR")
	if calendar == nil {
		t.Fatal("vcalendar block missing")
	}
	if len(calendar.Bodies) != 1 {
		t.Fatal("expected 1 vcalendar body, got", len(calendar.Bodies))
	}

	// repeated sibling vevent blocks accumulate into one block, in order
	vevent := calendar.Block("VEVENT")
	if vevent == nil {
		t.Fatal("vevent block missing")
	}
	if len(vevent.Bodies) != 2 {
		t.Fatal("expected 2 vevent bodies, got", len(vevent.Bodies))
	}
	for i, want := range []string{"first", "second"} {
		property, ok := vevent.Bodies[i][0].(*ics.Property)
		if !ok {
			t.Fatal("expected a property in body", i)
		}
		if property.Key != "summary" {
			t.Error("unexpected key:", property.Key)
		}
		if text, ok := property.Value.(ics.Text); !ok || text.Raw != want {
			t.Error("unexpected summary:", property.Value)
		}
	}
}

func TestDecodeTopLevelOrder(t *testing.T) {
	doc, err := newDecoder().Decode("BEGIN:VEVENT\n" +
		"SUMMARY:a\n" +
		"END:VEVENT\n" +
		"BEGIN:VTODO\n" +
		"SUMMARY:b\n" +
		"END:VTODO\n" +
		"BEGIN:VEVENT\n" +
		"SUMMARY:c\n" +
		"END:VEVENT\n")
	if err != nil {
		t.Fatal(err)
	}

	// non-adjacent same-key siblings still merge; first occurrence fixes
	// the position
	if len(doc.Entries) != 2 {
		t.Fatal("expected 2 top-level entries, got", len(doc.Entries))
	}
	first, ok := doc.Entries[0].(*ics.Block)
	if !ok || first.Key != "vevent" {
		t.Error("unexpected first entry:", doc.Entries[0])
	}
	second, ok := doc.Entries[1].(*ics.Block)
	if !ok || second.Key != "vtodo" {
		t.Error("unexpected second entry:", doc.Entries[1])
	}
	if len(first.Bodies) != 2 {
		t.Error("expected 2 vevent bodies, got", len(first.Bodies))
	}
}

func TestDecodeNestedSameKeyBlocks(t *testing.T) {
	doc, err := newDecoder().Decode("BEGIN:GROUP\n" +
		"BEGIN:GROUP\n" +
		"NAME:inner\n" +
		"END:GROUP\n" +
		"END:GROUP\n")
	if err != nil {
		t.Fatal(err)
	}
	outer := doc.Block("GROUP")
	if outer == nil || len(outer.Bodies) != 1 {
		t.Fatal("outer group wrong")
	}
	inner := outer.Block("GROUP")
	if inner == nil || len(inner.Bodies) != 1 {
		t.Fatal("inner group not nested")
	}
	if _, ok := inner.Bodies[0][0].(*ics.Property); !ok {
		t.Error("inner group body missing its property")
	}
}

func TestDecodeErrors(t *testing.T) {
	// case: a logical line with no `:` aborts the decode
	func() {
		_, err := newDecoder().Decode("BEGIN:VCALENDAR\nNOPE\nEND:VCALENDAR\n")
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Kind() != ics.KindMalformedProperty {
			t.Error("unexpected kind:", err.Kind())
		}
	}()

	// case: BEGIN with no matching END
	func() {
		_, err := newDecoder().Decode("BEGIN:VCALENDAR\nSUMMARY:x\n")
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Kind() != ics.KindUnterminatedBlock {
			t.Error("unexpected kind:", err.Kind())
		}
	}()

	// case: bare DURATION key parses strictly
	func() {
		_, err := newDecoder().Decode("DURATION:not-a-duration\n")
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Kind() != ics.KindMalformedDuration {
			t.Error("unexpected kind:", err.Kind())
		}
	}()

	// case: unknown TZID aborts with the identifier attached
	func() {
		_, err := newDecoder().Decode("DTSTART;TZID=Nope/Zone:20210601T000000\n")
		if err == nil {
			t.Fatal("expected an error")
		}
		if err.Kind() != ics.KindInvalidTimeZone {
			t.Error("unexpected kind:", err.Kind())
		}
		if err.Arg("tzid") != "Nope/Zone" {
			t.Error("offending identifier not carried:", err.Arg("tzid"))
		}
	}()
}

// the decoder consults whatever ZoneDB it was handed
type fakeZoneDB struct{}

func (fakeZoneDB) Known(id string) bool {
	return id == "Fake/Zone"
}

func (fakeZoneDB) Resolve(naive time.Time, id string) (time.Time, error) {
	return naive.Add(-42 * time.Minute), nil
}

func TestDecodeWithFakeZoneDB(t *testing.T) {
	decoder := ics.NewDecoder(fakeZoneDB{}, icsdur.New())
	doc, err := decoder.Decode("DTSTART;TZID=Fake/Zone:20210601T000000\n")
	if err != nil {
		t.Fatal(err)
	}
	property, ok := doc.Entries[0].(*ics.Property)
	if !ok {
		t.Fatal("expected a property")
	}
	zoned, ok := property.Value.(ics.ZonedTime)
	if !ok {
		t.Fatal("expected a zoned time, got", property.Value)
	}
	want := time.Date(2021, 5, 31, 23, 18, 0, 0, time.UTC)
	if !zoned.Time.Equal(want) {
		t.Error("fake zone db not consulted:", zoned.Time)
	}
}
