// The `tzdb` package backs the codec's ZoneDB capability with the IANA
// database embedded in 4d63.com/tz, so resolution does not depend on the
// host's zoneinfo files.
package tzdb

import (
	"fmt"
	"time"

	"4d63.com/tz"
)

type DB struct{}

func New() DB {
	return DB{}
}

// Check whether the identifier names a zone in the embedded database.
func (DB) Known(id string) bool {
	_, err := tz.LoadLocation(id)
	return err == nil
}

// Map a naive local timestamp (wall-clock fields packed into a UTC
// time.Time) to its absolute instant in the given zone. Ambiguous or
// nonexistent local times around DST transitions take time.Date's default
// mapping for the zone.
func (DB) Resolve(naive time.Time, id string) (time.Time, error) {
	location, err := tz.LoadLocation(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("tzdb.Resolve: %w", err)
	}
	year, month, day := naive.Date()
	hour, minute, second := naive.Clock()
	return time.Date(year, month, day, hour, minute, second, 0, location).UTC(), nil
}
