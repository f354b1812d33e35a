package service

import (
	"time"

	"calendar-insights/core/constants"
	"calendar-insights/modules/fetch/entity"
)

// PlanWindows splits [start, end) into consecutive windows of windowDays
// days. The final window is clamped to end, so windows never overlap and
// together cover the range exactly. A non-positive windowDays falls back to
// the default window size.
func PlanWindows(start, end time.Time, windowDays int) []entity.FetchWindow {
	if !start.Before(end) {
		return nil
	}
	if windowDays <= 0 {
		windowDays = constants.DefaultWindowDays
	}

	step := time.Duration(windowDays) * 24 * time.Hour
	var windows []entity.FetchWindow
	for cursor := start; cursor.Before(end); cursor = cursor.Add(step) {
		windowEnd := cursor.Add(step)
		if windowEnd.After(end) {
			windowEnd = end
		}
		windows = append(windows, entity.FetchWindow{Start: cursor, End: windowEnd})
	}
	return windows
}
