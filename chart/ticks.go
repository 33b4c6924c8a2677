package chart

import (
	"math"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
)

// valueTickCount is the number of value axis ticks, bounds included.
const valueTickCount = 5

// longSpanDays is the span above which time labels show the month and year.
const longSpanDays = 366

// Tick is a labeled mark on the value axis.
type Tick struct {
	Position float64 // pixel
	Value    float64
	Label    string
}

// TimeTick is a labeled mark on the time axis.
type TimeTick struct {
	Position float64 // pixel
	Millis   int64
	Label    string
}

func (c *Chart) valueTicks(nf satfolio.NumberFormat) []Tick {
	ticks := make([]Tick, valueTickCount)
	step := (c.VMax - c.VMin) / (valueTickCount - 1)
	for i := range ticks {
		v := c.VMin + float64(i)*step
		if i == valueTickCount-1 {
			v = c.VMax
		}
		ticks[i] = Tick{Position: c.YScale(v), Value: v, Label: nf.Format(v, 8)}
	}
	return ticks
}

func (c *Chart) timeTicks(target int, loc *time.Location) []TimeTick {
	spanDays := int(math.Round(float64(c.TMax-c.TMin) / float64(date.DayMillis)))
	layout := "2 Jan"
	if spanDays > longSpanDays {
		layout = "Jan 2006"
	}

	instants := TimeTickInstants(c.TMin, c.TMax, target, loc)
	ticks := make([]TimeTick, len(instants))
	for i, ms := range instants {
		ticks[i] = TimeTick{
			Position: c.XScale(ms),
			Millis:   ms,
			Label:    time.UnixMilli(ms).In(loc).Format(layout),
		}
	}
	return ticks
}

// TimeTickInstants returns the instants of about target ticks over [tmin, tmax].
//
// Short spans get one tick per day from tmin. Longer spans get a tick every
// step days from the start of tmin's day, plus the start of tmax's day, and at
// most target+1 ticks.
func TimeTickInstants(tmin, tmax int64, target int, loc *time.Location) []int64 {
	target = max(target, 2)
	spanDays := int(math.Round(float64(tmax-tmin) / float64(date.DayMillis)))

	var ticks []int64
	if spanDays < target {
		start := time.UnixMilli(tmin).In(loc)
		for i := 0; i <= spanDays; i++ {
			ms := start.AddDate(0, 0, i).UnixMilli()
			if ms > tmax {
				break
			}
			ticks = append(ticks, ms)
		}
		return ticks
	}

	step := max(int(math.Round(float64(spanDays)/float64(target-1))), 1)
	for day := date.FromMillis(tmin, loc); ; day = day.Add(step) {
		ms := day.Millis(loc)
		if ms > tmax {
			break
		}
		ticks = append(ticks, ms)
	}
	if end := date.StartOfDay(tmax, loc); len(ticks) == 0 || ticks[len(ticks)-1] != end {
		ticks = append(ticks, end)
	}
	if len(ticks) > target+1 {
		ticks = ticks[:target+1]
	}
	return ticks
}
