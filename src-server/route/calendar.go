package route

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"icsd/src-server/feed"
	"icsd/src-server/metric"
	"icsd/src-server/model"
	"icsd/src-server/utils"
)

func Calendar(muxer *http.ServeMux, as *utils.AppState) {
	// subscribe to an external calendar feed
	muxer.HandleFunc("POST /calendar", func(w http.ResponseWriter, r *http.Request) {
		var reqBody struct {
			Url string `json:"url"`
		}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, err := url.ParseRequestURI(reqBody.Url); err != nil {
			http.Error(w, "invalid url", http.StatusBadRequest)
			return
		}

		body, err := utils.FetchText(reqBody.Url)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		doc, derr := as.Decoder.Decode(body)
		if derr != nil {
			metric.DecodeFailuresTotal.WithLabelValues(string(derr.Kind())).Inc()
			http.Error(w, derr.Error(), http.StatusUnprocessableEntity)
			return
		}
		metric.DecodesTotal.Inc()

		calendarModel, err := feed.Store(
			r.Context(),
			as.BunDB,
			as.Encoder,
			doc,
			reqBody.Url,
			utils.HashText(body),
			"",
		)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		metric.EncodesTotal.Inc()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(map[string]string{
			"id":   calendarModel.ID,
			"name": calendarModel.Name,
		}); err != nil {
			slog.Warn("can't write to response", "where", "route/calendar.go", "error", err)
		}
	})

	// list subscriptions
	muxer.HandleFunc("GET /calendar", func(w http.ResponseWriter, r *http.Request) {
		calendars := []model.Calendar{}
		if err := as.BunDB.NewSelect().
			Model(&calendars).
			Column("id", "prod_id", "name", "description", "url").
			Scan(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(calendars); err != nil {
			slog.Warn("can't write to response", "where", "route/calendar.go", "error", err)
		}
	})

	// unsubscribe
	muxer.HandleFunc("DELETE /calendar/{calendar_id}", func(w http.ResponseWriter, r *http.Request) {
		calendarID := r.PathValue("calendar_id")
		if _, err := as.BunDB.NewDelete().
			Model((*model.Calendar)(nil)).
			Where("id = ?", calendarID).
			Exec(context.WithValue(r.Context(), model.DeletedCalendarIDsCtxKey, calendarID)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	// list a calendar's events
	muxer.HandleFunc("GET /calendar/{calendar_id}/events", func(w http.ResponseWriter, r *http.Request) {
		calendarID := r.PathValue("calendar_id")
		events := []model.Event{}
		if err := as.BunDB.NewSelect().
			Model(&events).
			Where("calendar_id = ?", calendarID).
			Order("start_date ASC").
			Scan(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(events); err != nil {
			slog.Warn("can't write to response", "where", "route/calendar.go", "error", err)
		}
	})
}
