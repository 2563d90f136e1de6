package utils

// Channels the app pushes measurements into; the metric package owns the
// receiving end.
type Metric struct {
	FeedRefresh chan float64
}

func NewMetric() *Metric {
	return &Metric{
		FeedRefresh: make(chan float64),
	}
}
