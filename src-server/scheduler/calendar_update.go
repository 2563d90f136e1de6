package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"icsd/src-server/feed"
	"icsd/src-server/model"
	"icsd/src-server/utils"
)

const (
	WORKER_COUNT = 4
)

// Periodically re-fetch every subscribed calendar URL and replace its
// stored events. Feeds whose body hash is unchanged are skipped.
func CalendarUpdate(as *utils.AppState) {
	for {
		calendars := []model.Calendar{}
		if err := as.BunDB.
			NewSelect().
			Model(&calendars).
			Where("url LIKE ?", "https://%").
			Scan(context.Background()); err != nil {
			slog.Error("can't get calendars", "error", err)
			time.Sleep(as.Config.GetCalendarUpdateInterval())
			continue
		}
		if len(calendars) == 0 {
			time.Sleep(as.Config.GetCalendarUpdateInterval())
			continue
		}

		jobs := make(chan model.Calendar, len(calendars))
		var wg sync.WaitGroup

		for range WORKER_COUNT {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for oldCalModel := range jobs {
					bodyCh := make(chan string)
					errCh := make(chan error)

					go func() {
						body, err := utils.FetchText(oldCalModel.Url)
						if err != nil {
							errCh <- err
							return
						}
						bodyCh <- body
					}()

					select {
					case <-time.After(time.Minute * 5):
						slog.Warn("CalendarUpdate: timed out waiting for calendar to be fetched")
					case err := <-errCh:
						slog.Warn("CalendarUpdate: can't fetch calendar", "url", oldCalModel.Url, "error", err)
					case body := <-bodyCh:
						hash := utils.HashText(body)
						if hash == oldCalModel.Hash {
							slog.Debug("CalendarUpdate: feed unchanged", "url", oldCalModel.Url)
							continue
						}

						startTimer := time.Now()
						doc, derr := as.Decoder.Decode(body)
						if derr != nil {
							slog.Warn("CalendarUpdate: can't decode calendar", "url", oldCalModel.Url, "error", derr)
							continue
						}
						if _, err := feed.Store(
							context.Background(),
							as.BunDB,
							as.Encoder,
							doc,
							oldCalModel.Url,
							hash,
							oldCalModel.ID,
						); err != nil {
							slog.Warn("CalendarUpdate: can't store calendar", "url", oldCalModel.Url, "error", err)
							continue
						}
						as.MetricChans.FeedRefresh <- float64(time.Since(startTimer).Microseconds())
						slog.Info("CalendarUpdate: refreshed", "url", oldCalModel.Url)
					}
				}
			}()
		}

		for _, calendar := range calendars {
			jobs <- calendar
		}
		close(jobs)
		wg.Wait()

		time.Sleep(as.Config.GetCalendarUpdateInterval())
	}
}
