package entity

import "time"

// FetchWindow is one half-open [Start, End) slice of a fetch range.
type FetchWindow struct {
	Start time.Time
	End   time.Time
}

func (w FetchWindow) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}
