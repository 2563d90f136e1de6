package model

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
)

type DeletedCalendarIDsCtxKeyType string

const DeletedCalendarIDsCtxKey DeletedCalendarIDsCtxKeyType = "calendar-id"

// One subscribed calendar feed. Raw holds the re-encoded document so the
// feed can be re-served without another decode; Hash is the sha256 of the
// fetched body and gates refreshes.
type Calendar struct {
	bun.BaseModel `bun:"table:calendars"`

	ID          string `bun:"id,pk"` // required
	ProdID      string `bun:"prod_id"`
	Name        string `bun:"name,notnull"` // required
	Description string `bun:"description"`
	Url         string `bun:"url,unique"`
	Hash        string `bun:"hash"`
	Raw         string `bun:"raw"`

	Events []*Event `bun:"rel:has-many,join:id=calendar_id"`
}

var _ bun.AfterDeleteHook = (*Calendar)(nil)

// Deleting a calendar deletes its events. The deleted id(s) ride in on the
// context since bun won't hand the hook the original model values.
func (c *Calendar) AfterDelete(ctx context.Context, query *bun.DeleteQuery) error {
	if query.DB() == nil {
		return fmt.Errorf("(*Calendar).AfterDelete: db is nil")
	}

	deletedCalendarIDs := make([]string, 0)
	switch deletedCalendarID := ctx.Value(DeletedCalendarIDsCtxKey).(type) {
	case string:
		if deletedCalendarID == "" {
			return fmt.Errorf("(*Calendar).AfterDelete: deletedCalendarID is blank")
		}
		deletedCalendarIDs = append(deletedCalendarIDs, deletedCalendarID)
	case []string:
		if len(deletedCalendarID) == 0 {
			return nil
		}
		deletedCalendarIDs = append(deletedCalendarIDs, deletedCalendarID...)
	case nil:
		return fmt.Errorf("(*Calendar).AfterDelete: calendar id is nil")
	default:
		return fmt.Errorf("(*Calendar).AfterDelete: wrong deletedCalendarID type | type=%T", deletedCalendarID)
	}

	if _, err := query.DB().NewDelete().
		Model((*Event)(nil)).
		Where("calendar_id IN (?)", bun.In(deletedCalendarIDs)).
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Calendar).AfterDelete: can't delete events: %w", err)
	}
	slog.Debug("deleted calendar events", "calendarIDs", deletedCalendarIDs)

	return nil
}

func (c *Calendar) Upsert(ctx context.Context, db bun.IDB) error {
	if db == nil {
		return fmt.Errorf("(*Calendar).Upsert: db is nil")
	}

	// validate
	switch {
	case c.ID == "":
		return fmt.Errorf("(*Calendar).Upsert: calendar id is blank")
	case c.Name == "":
		return fmt.Errorf("(*Calendar).Upsert: calendar name is blank")
	}

	// upsert
	if _, err := db.NewInsert().
		Model(c).
		On("CONFLICT (id) DO UPDATE").
		Set("prod_id = EXCLUDED.prod_id").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("url = EXCLUDED.url").
		Set("hash = EXCLUDED.hash").
		Set("raw = EXCLUDED.raw").
		Exec(ctx); err != nil {
		return fmt.Errorf("(*Calendar).Upsert: can't upsert calendar: %w", err)
	}

	return nil
}
