package domain

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SessionInterval is one presence record of a user, half-open [Start, End).
type SessionInterval struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

type Stat struct {
	UserID     uuid.UUID `json:"user_id"`
	DurationMS int64     `json:"duration_ms"`
}

// StatsMap maps a user to the presence time accumulated over some period.
// Users that were never present are absent from the map; a zero duration
// is a valid entry.
type StatsMap map[uuid.UUID]Stat

// MergeInto adds every entry of other into m. other is not modified.
func (m StatsMap) MergeInto(other StatsMap) {
	for id, s := range other {
		cur, ok := m[id]
		if !ok {
			m[id] = Stat{UserID: id, DurationMS: s.DurationMS}
			continue
		}
		cur.DurationMS += s.DurationMS
		m[id] = cur
	}
}

// Merge returns a new map holding the sum of a and b.
func Merge(a, b StatsMap) StatsMap {
	out := make(StatsMap, max(len(a), len(b)))
	out.MergeInto(a)
	out.MergeInto(b)
	return out
}

func (m StatsMap) Clone() StatsMap {
	out := make(StatsMap, len(m))
	for id, s := range m {
		out[id] = s
	}
	return out
}

// Ranked lists the entries by duration, longest first. Ties are broken by
// user id so the order is stable.
func (m StatsMap) Ranked() []Stat {
	out := make([]Stat, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DurationMS != out[j].DurationMS {
			return out[i].DurationMS > out[j].DurationMS
		}
		return bytes.Compare(out[i].UserID[:], out[j].UserID[:]) < 0
	})
	return out
}

// PartialRecord is the cached prefix of an open Month or Year bucket.
// Stats covers subunits 1..LastClosed (days of a month, months of a year).
type PartialRecord struct {
	LastClosed int      `json:"last_closed"`
	Stats      StatsMap `json:"stats"`
}
