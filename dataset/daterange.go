package dataset

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("invalid date range")

// DateRange is a look-back window in days, limited to the values in Ranges.
type DateRange int

const DefaultRange DateRange = 91

// Ranges is the enumerated set, longest first.
var Ranges = []DateRange{1825, 365, 183, 91, 31, 16, 8}

var rangeLabels = map[DateRange]string{
	1825: "Past 5 Years",
	365:  "Past Year",
	183:  "Past 6 Months",
	91:   "Past 3 Months",
	31:   "Past Month",
	16:   "Past 2 Weeks",
	8:    "Past 7 Days",
}

// ParseRange validates a day count against the enumerated set.
func ParseRange(days int) (DateRange, error) {
	r := DateRange(days)
	if _, ok := rangeLabels[r]; !ok {
		return 0, fmt.Errorf("%w: %d days (want one of %v)", ErrInvalidRange, days, Ranges)
	}
	return r, nil
}

func (r DateRange) Days() int { return int(r) }

func (r DateRange) Label() string {
	if l, ok := rangeLabels[r]; ok {
		return l
	}
	return fmt.Sprintf("Past %d Days", int(r))
}

func (r DateRange) String() string { return r.Label() }

// Index is the position in Ranges, -1 if r is not enumerated.
func (r DateRange) Index() int {
	for i, v := range Ranges {
		if v == r {
			return i
		}
	}
	return -1
}

// Longer returns the next wider range, or r when already the widest.
func (r DateRange) Longer() DateRange {
	i := r.Index()
	if i <= 0 {
		return Ranges[0]
	}
	return Ranges[i-1]
}

// Shorter returns the next narrower range, or r when already the narrowest.
func (r DateRange) Shorter() DateRange {
	i := r.Index()
	if i < 0 {
		return DefaultRange
	}
	if i >= len(Ranges)-1 {
		return Ranges[len(Ranges)-1]
	}
	return Ranges[i+1]
}

// Cutoff is the first calendar day inside the window ending at now.
// The result is midnight UTC so it compares directly with parsed CSV dates.
func (r DateRange) Cutoff(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -int(r))
}
