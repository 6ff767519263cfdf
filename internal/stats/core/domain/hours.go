package domain

import "time"

// HourStats holds presence per local hour of day, in milliseconds.
type HourStats [24]int64

// Add spreads [start, end) over the hours of day it touches in loc.
func (h *HourStats) Add(start, end time.Time, loc *time.Location) {
	cur := start.In(loc)
	end = end.In(loc)
	for cur.Before(end) {
		y, m, d := cur.Date()
		next := time.Date(y, m, d, cur.Hour()+1, 0, 0, 0, loc)
		if !next.After(cur) {
			// Clock moved back over a DST change; step one real hour.
			next = cur.Truncate(time.Hour).Add(time.Hour)
		}
		if next.After(end) {
			next = end
		}
		h[cur.Hour()] += next.Sub(cur).Milliseconds()
		cur = next
	}
}
