package metric

import (
	"log/slog"
	"time"

	"icsd/src-server/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func databaseEmptyRead(as *utils.AppState, tickerInterval *time.Duration) {
	databaseEmptyRead := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "icsd_database_empty_read_microsec",
		Help: "The latency of an empty database read in microseconds",
	})
	good := true
	if err := prometheus.Register(databaseEmptyRead); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register icsd_database_empty_read_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("icsd_database_empty_read_microsec metric registered")
		databaseEmptyRead.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		ticker := time.NewTicker(*tickerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(databaseEmptyRead) {
				case true:
					slog.Debug("icsd_database_empty_read_microsec metric unregistered")
				case false:
					slog.Warn("icsd_database_empty_read_microsec metric not registered")
				}
				return
			case <-ticker.C:
				latency, err := database(as)
				if err != nil {
					slog.Error("can't get database latency", "error", err)
					continue
				}
				databaseEmptyRead.Set(float64(latency.Microseconds()))
			}
		}
	}()
}

func feedRefresh(as *utils.AppState, clearTickerInterval *time.Duration) {
	feedRefresh := promauto.NewGauge(prometheus.GaugeOpts{
		Name: "icsd_feed_refresh_microsec",
		Help: "The latency of the last feed refresh in microseconds",
	})
	good := true
	if err := prometheus.Register(feedRefresh); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
			slog.Error("can't register icsd_feed_refresh_microsec metric", "error", err)
			good = false
		}
	}
	if good {
		slog.Debug("icsd_feed_refresh_microsec metric registered")
		feedRefresh.Set(0)
	}
	go func() {
		gracefulShutdownCh := as.CreateGracefulShutdownChan()
		clearTicker := time.NewTicker(*clearTickerInterval)
		defer clearTicker.Stop()
		for {
			select {
			case <-*gracefulShutdownCh:
				switch prometheus.Unregister(feedRefresh) {
				case true:
					slog.Debug("icsd_feed_refresh_microsec metric unregistered")
				case false:
					slog.Warn("icsd_feed_refresh_microsec metric not registered")
				}
				return
			case latency := <-as.MetricChans.FeedRefresh:
				feedRefresh.Set(latency)
				clearTicker.Reset(*clearTickerInterval)
			case <-clearTicker.C:
				feedRefresh.Set(0)
			}
		}
	}()
}

func Init(as *utils.AppState) {
	tickerInterval := as.Config.GetMetricCollectionInterval()
	clearTickerInterval := as.Config.GetMetricCollectionInterval() * 2

	databaseEmptyRead(as, &tickerInterval)
	feedRefresh(as, &clearTickerInterval)
}
