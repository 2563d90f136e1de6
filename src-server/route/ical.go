package route

import (
	"io"
	"log/slog"
	"net/http"

	"icsd/src-server/model"
	"icsd/src-server/utils"
)

func Ical(muxer *http.ServeMux, as *utils.AppState) {
	// re-serve a subscribed calendar in calendar text form
	muxer.HandleFunc("GET /ical/{calendar_id}", func(w http.ResponseWriter, r *http.Request) {
		calendarID := r.PathValue("calendar_id")

		calendarModel := new(model.Calendar)
		if err := as.BunDB.NewSelect().
			Model(calendarModel).
			Where("id = ?", calendarID).
			Scan(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if calendarModel.Raw == "" && calendarModel.Url != "" {
			http.Redirect(w, r, calendarModel.Url, http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, calendarModel.Raw); err != nil {
			slog.Warn("can't write to response", "where", "route/ical.go", "error", err)
		}
	})
}
