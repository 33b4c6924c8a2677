// Package series derives the cumulative holdings time series from ledger entries.
package series

import (
	"fmt"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
)

// Point is one vertex of the cumulative holdings series.
type Point struct {
	Day   int64   // epoch milliseconds of the start of the day
	Value float64 // holdings at the end of the day, in BTC
}

// Time returns the start of the point's day.
func (p Point) Time() time.Time { return time.UnixMilli(p.Day) }

// BuildDaily buckets entries by calendar day in loc and returns the running
// total of holdings at the end of each day with activity.
//
// Entries may be in any order. Days without entries are not interpolated. The
// result is strictly ascending by Day and is nil when there are no entries.
func BuildDaily(entries []satfolio.Entry, loc *time.Location) ([]Point, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}

	var buckets date.History[int64]
	for _, e := range entries {
		if e.Sats < 0 {
			return nil, fmt.Errorf("%w %s: negative quantity %d", satfolio.ErrInvalidEntry, e.ID, e.Sats)
		}
		if e.Kind != satfolio.Acquire && e.Kind != satfolio.Dispose {
			return nil, fmt.Errorf("%w %s: unknown kind %d", satfolio.ErrInvalidEntry, e.ID, int(e.Kind))
		}
		buckets.AppendAdd(date.FromMillis(e.Timestamp, loc), int64(e.Signed()))
	}

	points := make([]Point, 0, buckets.Len())
	var running int64
	for day, delta := range buckets.Values() {
		running += delta
		points = append(points, Point{
			Day:   day.Millis(loc),
			Value: float64(running) / satfolio.SatsPerBTC,
		})
	}
	return points, nil
}

// Last returns the last point of the series and true, or false if it is empty.
func Last(points []Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	return points[len(points)-1], true
}
