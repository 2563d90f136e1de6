package feed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"icsd/src-server/ics"
	"icsd/src-server/model"

	"github.com/uptrace/bun"
)

// Replace a calendar and its events with the content of a freshly decoded
// document, in one transaction. An empty existingID means a new
// subscription; otherwise the calendar keeps its id across refreshes.
func Store(ctx context.Context, db *bun.DB, encoder *ics.Encoder, doc *ics.Document, url string, hash string, existingID string) (*model.Calendar, error) {
	info := CalendarInfoFromDocument(doc)
	if existingID != "" {
		info.ID = existingID
	}
	events, err := EventsFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("feed.Store: %w", err)
	}

	calendarModel := model.Calendar{
		ID:          info.ID,
		ProdID:      info.ProdID,
		Name:        info.Name,
		Description: info.Description,
		Url:         url,
		Hash:        hash,
		Raw:         encoder.Encode(doc),
	}

	if err := db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Event)(nil)).
			Where("calendar_id = ?", info.ID).
			Exec(ctx); err != nil {
			return fmt.Errorf("can't delete old events: %w", err)
		}
		if err := calendarModel.Upsert(ctx, tx); err != nil {
			return err
		}

		eventModels := make([]model.Event, 0, len(events))
		now := time.Now().UTC().Unix()
		for _, event := range events {
			if event.StartDate == 0 {
				continue
			}
			eventModels = append(eventModels, model.Event{
				ID:               event.ID,
				Summary:          event.Summary,
				Description:      event.Description,
				Location:         event.Location,
				URL:              event.URL,
				Organizer:        event.Organizer,
				StartDateUnixUTC: event.StartDate,
				EndDateUnixUTC:   event.EndDate,
				IsWholeDay:       event.IsWholeDay,
				Sequence:         event.Sequence,
				CreatedAt:        now,
				CalendarID:       info.ID,
			})
		}
		if len(eventModels) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().
			Model(&eventModels).
			Exec(ctx); err != nil {
			return fmt.Errorf("can't insert events: %w", err)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("feed.Store: %w", err)
	}

	return &calendarModel, nil
}
