// Package period maps timestamps onto report buckets (day, week, month,
// quarter, year). Bucketing happens in Go rather than SQL so the grouping
// behaves identically regardless of the storage engine's date functions.
package period

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopledger/shop_ledger_backend/internal/core/domain"
)

// Granularity is the report interval for time-series bucketing.
type Granularity string

const (
	Day     Granularity = "day"
	Week    Granularity = "week"
	Month   Granularity = "month"
	Quarter Granularity = "quarter"
	Year    Granularity = "year"
)

// Granularities lists every valid granularity.
var Granularities = []Granularity{Day, Week, Month, Quarter, Year}

// Parse validates a user-supplied interval string. Anything outside the
// enumerated set is a caller error; callers must reject it before resolving.
func Parse(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(s)) {
	case Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	case Quarter:
		return Quarter, nil
	case Year:
		return Year, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// Key is the sortable bucket identity for a (timestamp, granularity) pair.
// Comparison uses the integer fields, never the label: label strings only
// happen to sort correctly for some granularities.
type Key struct {
	Year int
	Sub  int // week, month or quarter number; unused for year
	Day  int // day of month; unused except for day granularity
}

// Less reports whether k is chronologically before o.
func (k Key) Less(o Key) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	if k.Sub != o.Sub {
		return k.Sub < o.Sub
	}
	return k.Day < o.Day
}

// Resolve maps a timestamp and granularity to its bucket key and display
// label. A zero timestamp resolves against the current UTC time. Labels:
// day YYYY-MM-DD, week YYYY-Www (ISO week), month YYYY-MM, quarter YYYY-Tn,
// year YYYY.
func Resolve(t time.Time, g Granularity) (Key, string) {
	if t.IsZero() {
		t = time.Now().UTC()
	}
	switch g {
	case Day:
		return Key{Year: t.Year(), Sub: int(t.Month()), Day: t.Day()},
			fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
	case Week:
		isoYear, isoWeek := t.ISOWeek()
		return Key{Year: isoYear, Sub: isoWeek},
			fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
	case Quarter:
		q := (int(t.Month())-1)/3 + 1
		return Key{Year: t.Year(), Sub: q},
			fmt.Sprintf("%04d-T%d", t.Year(), q)
	case Year:
		return Key{Year: t.Year()}, fmt.Sprintf("%04d", t.Year())
	default:
		// Month is the fallback the original report screens used.
		return Key{Year: t.Year(), Sub: int(t.Month())},
			fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	}
}

// Aggregate buckets a (date, amount) stream by granularity, sums amounts per
// bucket, and returns the buckets ordered chronologically by key.
func Aggregate(points []domain.DatedAmount, g Granularity) []domain.TimeSeriesPoint {
	totals := make(map[Key]decimal.Decimal)
	labels := make(map[Key]string)
	keys := make([]Key, 0)

	for _, p := range points {
		key, label := Resolve(p.Date, g)
		if _, seen := totals[key]; !seen {
			keys = append(keys, key)
			labels[key] = label
			totals[key] = decimal.Zero
		}
		totals[key] = totals[key].Add(p.Amount)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	series := make([]domain.TimeSeriesPoint, 0, len(keys))
	for _, key := range keys {
		series = append(series, domain.TimeSeriesPoint{Label: labels[key], Value: totals[key]})
	}
	return series
}
