package chart

import (
	"sort"

	"github.com/etnz/satfolio/series"
)

// Nearest returns the index of the point closest in time to the horizontal
// position px, or -1 if the chart is empty.
//
// It runs in O(log n) so it can be called on every pointer move.
func (c *Chart) Nearest(px float64) int {
	n := len(c.Points)
	if n == 0 {
		return -1
	}
	t := c.XInvert(px)
	i := sort.Search(n, func(i int) bool { return float64(c.Points[i].Day) >= t })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if t-float64(c.Points[i-1].Day) <= float64(c.Points[i].Day)-t {
		return i - 1
	}
	return i
}

// Hover returns the point closest to px, and false if the chart is empty.
func (c *Chart) Hover(px float64) (series.Point, bool) {
	i := c.Nearest(px)
	if i < 0 {
		return series.Point{}, false
	}
	return c.Points[i], true
}
