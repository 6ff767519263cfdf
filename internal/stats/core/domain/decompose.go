package domain

import "time"

// Decomposition is a set of disjoint buckets whose union is exactly the
// decomposed date range.
type Decomposition struct {
	Days   []Bucket
	Months []Bucket
	Years  []Bucket
}

func (d Decomposition) All() []Bucket {
	out := make([]Bucket, 0, len(d.Days)+len(d.Months)+len(d.Years))
	out = append(out, d.Days...)
	out = append(out, d.Months...)
	return append(out, d.Years...)
}

func (d Decomposition) Len() int {
	return len(d.Days) + len(d.Months) + len(d.Years)
}

// Decompose partitions the inclusive range [start, end] into the fewest
// buckets. A month wholly inside the range becomes a Month bucket and a
// year whose twelve months all qualify becomes a Year bucket; the days of
// a month that is only partly covered stay Day buckets. The rule is the
// same at both ends of the range.
func Decompose(start, end Date) Decomposition {
	var out Decomposition
	if start.After(end) {
		return out
	}

	if start.Year == end.Year && start.Month == end.Month {
		if start.Day == 1 && end == end.LastOfMonth() {
			out.Months = append(out.Months, MonthBucket(start.Year, start.Month))
			return out
		}
		out.Days = appendDays(out.Days, start, end)
		return out
	}

	// Leading fragment.
	from := start
	if from.Day != 1 {
		out.Days = appendDays(out.Days, from, from.LastOfMonth())
		from = from.LastOfMonth().AddDays(1)
	}

	// Trailing fragment.
	to := end
	var trailing []Bucket
	if to != to.LastOfMonth() {
		trailing = appendDays(trailing, to.FirstOfMonth(), to)
		to = to.FirstOfMonth().AddDays(-1)
	}

	// from is now the first day of a month and to the last day of a month;
	// everything in between is whole months.
	for y := from.Year; !from.After(to) && y <= to.Year; y++ {
		first, last := time.January, time.December
		if y == from.Year {
			first = from.Month
		}
		if y == to.Year {
			last = to.Month
		}
		if first == time.January && last == time.December {
			out.Years = append(out.Years, YearBucket(y))
			continue
		}
		for m := first; m <= last; m++ {
			out.Months = append(out.Months, MonthBucket(y, m))
		}
	}

	out.Days = append(out.Days, trailing...)
	return out
}

func appendDays(dst []Bucket, from, to Date) []Bucket {
	for d := from; !d.After(to); d = d.AddDays(1) {
		dst = append(dst, DayBucket(d))
	}
	return dst
}

// ClampEnd limits a requested end date to today. When the request covers
// the whole of today's month (or year) the end is pushed out to the end of
// that month (year) so the open bucket can be served from its partial
// record; the extra days lie in the future and hold no sessions.
func ClampEnd(end, today Date) Date {
	if !end.After(today) {
		return end
	}
	out := today
	if !end.Before(today.LastOfMonth()) {
		out = today.LastOfMonth()
		if !end.Before(today.LastOfYear()) {
			out = today.LastOfYear()
		}
	}
	return out
}

// ClampStart raises a requested start date to the earliest recorded date,
// widening back to the start of that month (year) when the request covers
// it. The extra days precede all sessions.
func ClampStart(start, earliest Date) Date {
	if !start.Before(earliest) {
		return start
	}
	out := earliest
	if !start.After(earliest.FirstOfMonth()) {
		out = earliest.FirstOfMonth()
		if !start.After(earliest.FirstOfYear()) {
			out = earliest.FirstOfYear()
		}
	}
	return out
}
