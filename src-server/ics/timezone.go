package ics

import (
	"regexp"
	"strconv"
	"time"
)

var gmtOffsetPattern = regexp.MustCompile(`^GMT([+-])(\d{2})(\d{2})$`)

// ZoneDB is the injected IANA time-zone database. The core never loads
// zone data itself; it only asks whether an identifier is known and, if
// so, what absolute instant a naive local timestamp maps to.
//
// Resolve receives the wall-clock fields packed into a UTC time.Time and
// must return the matching instant in that zone, in UTC. For local times
// made ambiguous or nonexistent by a DST transition the database's default
// disambiguation applies; the input format carries no flag to choose.
type ZoneDB interface {
	Known(id string) bool
	Resolve(naive time.Time, id string) (time.Time, error)
}

// Resolve a naive local timestamp against a zone identifier, truncated to
// whole seconds.
//
// `GMT(+|-)HHMM` identifiers are fixed-offset zones and never touch the
// database: the naive timestamp is read as UTC and the offset is applied
// with reversed sign, since `GMT-HHMM` means local time runs behind UTC.
// Anything else must be a known database identifier.
func (d *Decoder) resolveZone(naive time.Time, tzid string) (time.Time, *CustomError) {
	if match := gmtOffsetPattern.FindStringSubmatch(tzid); match != nil {
		hours, _ := strconv.Atoi(match[2])
		minutes, _ := strconv.Atoi(match[3])
		offset := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
		if match[1] == "-" {
			return naive.Add(offset), nil
		}
		return naive.Add(-offset), nil
	}

	if !d.Zones.Known(tzid) {
		return time.Time{}, NewCustomError(KindInvalidTimeZone, "invalid time zone identifier", map[string]any{
			"tzid": tzid,
		})
	}
	resolved, err := d.Zones.Resolve(naive, tzid)
	if err != nil {
		return time.Time{}, NewCustomError(KindInvalidTimeZone, "can't resolve time zone", map[string]any{
			"tzid": tzid,
			"err":  err,
		})
	}
	return resolved.Truncate(time.Second), nil
}
