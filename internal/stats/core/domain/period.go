package domain

import (
	"fmt"
	"strings"
)

// StudyPeriod is one of the reading periods of an academic year.
type StudyPeriod int

const (
	LP1 StudyPeriod = iota
	LP2
	LP3
	LP4
	Summer
)

var studyPeriodNames = [...]string{"lp1", "lp2", "lp3", "lp4", "summer"}

func (p StudyPeriod) Valid() bool {
	return p >= LP1 && p <= Summer
}

func (p StudyPeriod) String() string {
	if !p.Valid() {
		return fmt.Sprintf("period(%d)", int(p))
	}
	return studyPeriodNames[p]
}

func ParseStudyPeriod(s string) (StudyPeriod, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range studyPeriodNames {
		if s == name {
			return StudyPeriod(i), nil
		}
	}
	return 0, fmt.Errorf("unknown study period %q", s)
}

// StudyPeriodSpan is a stored study period with its inclusive date range.
type StudyPeriodSpan struct {
	Year   int
	Period StudyPeriod
	Start  Date
	End    Date
}
