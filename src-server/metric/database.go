package metric

import (
	"context"
	"fmt"
	"time"

	"icsd/src-server/model"
	"icsd/src-server/utils"
)

// Time an empty read against the events table.
func database(as *utils.AppState) (time.Duration, error) {
	startTimer := time.Now()
	if _, err := as.BunDB.NewSelect().
		Model((*model.Event)(nil)).
		Where("1 = 0").
		Count(context.Background()); err != nil {
		return 0, fmt.Errorf("metric.database: %w", err)
	}
	return time.Since(startTimer), nil
}
