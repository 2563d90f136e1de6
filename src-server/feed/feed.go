// The `feed` package turns a decoded calendar document into flat event
// rows ready for storage: one row per event, recurring events expanded
// into their concrete occurrences.
package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"icsd/src-server/ics"
	"icsd/src-server/utils"

	"github.com/google/uuid"
	"github.com/senseyeio/duration"
	"github.com/xyedo/rrule"
)

// How far ahead recurring events are expanded.
const expandHorizon = 365 * 24 * time.Hour

type CalendarInfo struct {
	ID          string
	ProdID      string
	Name        string
	Description string
}

type StaticEvent struct {
	ID          string
	Summary     string
	Description string
	Location    string
	URL         string
	Organizer   string
	StartDate   int64
	EndDate     int64
	Sequence    int
	IsWholeDay  bool
}

// Pull calendar-level metadata out of the vcalendar block. A calendar
// without a name gets "(no title)", without any identity gets a fresh id.
func CalendarInfoFromDocument(doc *ics.Document) CalendarInfo {
	info := CalendarInfo{ID: uuid.NewString()}
	calendar := doc.Block("vcalendar")
	if calendar == nil {
		info.Name = "(no title)"
		return info
	}
	for _, body := range calendar.Bodies {
		for _, entry := range body {
			property, ok := entry.(*ics.Property)
			if !ok {
				continue
			}
			text, ok := property.Value.(ics.Text)
			if !ok {
				continue
			}
			switch property.Key {
			case "prodid":
				info.ProdID = text.Raw
			case "x_wr_calname":
				info.Name = utils.CleanupString(text.Raw)
			case "x_wr_caldesc":
				info.Description = text.Raw
			}
		}
	}
	if info.Name == "" {
		info.Name = "(no title)"
	}
	return info
}

// Flatten every vevent in the document. Recurring events (an `RRULE`
// property) become one StaticEvent per occurrence inside the expansion
// horizon, honoring `EXDATE`; occurrence ids are the master id suffixed
// with the occurrence's start.
func EventsFromDocument(doc *ics.Document) ([]StaticEvent, error) {
	calendar := doc.Block("vcalendar")
	if calendar == nil {
		return nil, fmt.Errorf("EventsFromDocument: document has no vcalendar block")
	}
	vevent := calendar.Block("vevent")
	if vevent == nil {
		return []StaticEvent{}, nil
	}

	events := make([]StaticEvent, 0, len(vevent.Bodies))
	for _, body := range vevent.Bodies {
		expanded, err := expandBody(body)
		if err != nil {
			return nil, err
		}
		events = append(events, expanded...)
	}
	return events, nil
}

func expandBody(body []ics.Entry) ([]StaticEvent, error) {
	event := StaticEvent{ID: uuid.NewString()}
	var ruleText string
	var durationVal any
	exDates := make([]int64, 0)

	for _, entry := range body {
		property, ok := entry.(*ics.Property)
		if !ok {
			continue
		}
		switch property.Key {
		case "uid":
			if text, ok := property.Value.(ics.Text); ok {
				event.ID = text.Raw
			}
		case "summary":
			if text, ok := property.Value.(ics.Text); ok {
				event.Summary = text.Raw
			}
		case "description":
			if text, ok := property.Value.(ics.Text); ok {
				event.Description = text.Raw
			}
		case "location":
			if text, ok := property.Value.(ics.Text); ok {
				event.Location = text.Raw
			}
		case "url":
			if text, ok := property.Value.(ics.Text); ok {
				event.URL = text.Raw
			}
		case "organizer":
			if text, ok := property.Value.(ics.Text); ok {
				event.Organizer = text.Raw
			}
		case "sequence":
			if text, ok := property.Value.(ics.Text); ok {
				if sequence, err := strconv.Atoi(text.Raw); err == nil {
					event.Sequence = sequence
				}
			}
		case "dtstart":
			unix, wholeDay := valueToUnix(property.Value)
			event.StartDate = unix
			event.IsWholeDay = wholeDay
		case "dtend":
			unix, _ := valueToUnix(property.Value)
			event.EndDate = unix
		case "duration":
			if dur, ok := property.Value.(ics.Duration); ok {
				durationVal = dur.Val
			}
		case "rrule":
			if text, ok := property.Value.(ics.Text); ok {
				ruleText = text.Raw
			}
		case "exdate":
			if unix, _ := valueToUnix(property.Value); unix != 0 {
				exDates = append(exDates, unix)
			}
		}
	}

	if event.Summary == "" {
		event.Summary = "(no title)"
	}
	if event.EndDate == 0 && durationVal != nil {
		if d, ok := durationVal.(duration.Duration); ok && event.StartDate != 0 {
			event.EndDate = d.Shift(time.Unix(event.StartDate, 0).UTC()).Unix()
		}
	}
	if event.EndDate == 0 {
		event.EndDate = event.StartDate
	}

	if ruleText == "" {
		return []StaticEvent{event}, nil
	}
	return expandRecurring(event, ruleText, exDates)
}

func expandRecurring(master StaticEvent, ruleText string, exDates []int64) ([]StaticEvent, error) {
	if master.StartDate == 0 {
		return nil, fmt.Errorf("expandRecurring: RRULE requires a start date | id=%s", master.ID)
	}
	start := time.Unix(master.StartDate, 0).UTC()
	length := master.EndDate - master.StartDate

	var sb strings.Builder
	sb.WriteString("DTSTART:" + start.Format("20060102T150405Z"))
	sb.WriteString("\nRRULE:" + ruleText)
	for _, exDate := range exDates {
		sb.WriteString("\nEXDATE:" + time.Unix(exDate, 0).UTC().Format("20060102T150405Z"))
	}

	ruleSet, err := rrule.StrToRRuleSet(sb.String())
	if err != nil {
		return nil, fmt.Errorf("expandRecurring: can't parse rrule: %w", err)
	}

	occurrences := ruleSet.Between(start, start.Add(expandHorizon), true)
	events := make([]StaticEvent, 0, len(occurrences))
	for _, occurrence := range occurrences {
		event := master
		event.ID = fmt.Sprintf("%s-%d", master.ID, occurrence.Unix())
		event.StartDate = occurrence.Unix()
		event.EndDate = occurrence.Unix() + length
		events = append(events, event)
	}
	return events, nil
}

// Map a typed property value to a unix timestamp; the second return
// reports whether the value was a whole-day date.
func valueToUnix(value ics.TypedValue) (int64, bool) {
	switch value := value.(type) {
	case ics.UTCTime:
		return value.Time.Unix(), false
	case ics.ZonedTime:
		return value.Time.Unix(), false
	case ics.Date:
		return value.Time.Unix(), true
	default:
		return 0, false
	}
}
