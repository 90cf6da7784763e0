package models

import "time"

// Interval is a half-open span of time [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Ordered reports whether Start is strictly before End.
func (i Interval) Ordered() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether i and o share any instant. Touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}
