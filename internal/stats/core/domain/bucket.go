package domain

import (
	"fmt"
	"time"
)

type BucketKind int

const (
	KindDay BucketKind = iota
	KindMonth
	KindYear
)

func (k BucketKind) String() string {
	switch k {
	case KindDay:
		return "day"
	case KindMonth:
		return "month"
	case KindYear:
		return "year"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Bucket is a calendar-aligned span used as the unit of caching. Month is
// unset for a Year bucket and Day is unset for Month and Year buckets.
type Bucket struct {
	Kind  BucketKind
	Year  int
	Month time.Month
	Day   int
}

func DayBucket(d Date) Bucket {
	return Bucket{Kind: KindDay, Year: d.Year, Month: d.Month, Day: d.Day}
}

func MonthBucket(year int, month time.Month) Bucket {
	return Bucket{Kind: KindMonth, Year: year, Month: month}
}

func YearBucket(year int) Bucket {
	return Bucket{Kind: KindYear, Year: year}
}

// Start is the first date covered by the bucket.
func (b Bucket) Start() Date {
	switch b.Kind {
	case KindDay:
		return Date{Year: b.Year, Month: b.Month, Day: b.Day}
	case KindMonth:
		return Date{Year: b.Year, Month: b.Month, Day: 1}
	default:
		return Date{Year: b.Year, Month: time.January, Day: 1}
	}
}

// End is the last date covered by the bucket, inclusive.
func (b Bucket) End() Date {
	switch b.Kind {
	case KindDay:
		return b.Start()
	case KindMonth:
		return b.Start().LastOfMonth()
	default:
		return b.Start().LastOfYear()
	}
}

// Span returns the half-open instant range [start, end) of the bucket in loc.
func (b Bucket) Span(loc *time.Location) (time.Time, time.Time) {
	return b.Start().Midnight(loc), b.End().AddDays(1).Midnight(loc)
}

func (b Bucket) Contains(d Date) bool {
	return !d.Before(b.Start()) && !d.After(b.End())
}

// Key is the cache key of the bucket. The format is shared with other
// readers of the cache and must not change.
func (b Bucket) Key() string {
	switch b.Kind {
	case KindDay:
		return fmt.Sprintf("day:(%d,%d,%d)", b.Year, int(b.Month), b.Day)
	case KindMonth:
		return fmt.Sprintf("month:(%d,%d)", b.Year, int(b.Month))
	default:
		return fmt.Sprintf("year:%d", b.Year)
	}
}

func (b Bucket) String() string { return b.Key() }

// Subunits reports how many subunits the bucket is split into when it is
// open: days for a month, months for a year. Day buckets have none.
func (b Bucket) Subunits() int {
	switch b.Kind {
	case KindMonth:
		return DaysIn(b.Year, b.Month)
	case KindYear:
		return 12
	default:
		return 0
	}
}

// Subunit returns the i-th (1-based) subunit bucket.
func (b Bucket) Subunit(i int) Bucket {
	switch b.Kind {
	case KindMonth:
		return DayBucket(Date{Year: b.Year, Month: b.Month, Day: i})
	case KindYear:
		return MonthBucket(b.Year, time.Month(i))
	default:
		panic(fmt.Sprintf("bucket %s has no subunits", b))
	}
}

// SubunitIndex returns the 1-based index of the subunit containing d.
func (b Bucket) SubunitIndex(d Date) int {
	switch b.Kind {
	case KindMonth:
		return d.Day
	case KindYear:
		return int(d.Month)
	default:
		return 0
	}
}
