// Package chart maps a cumulative holdings series onto a drawing surface.
//
// The mapping is pure data: scales, polyline and area vertices, axis ticks and
// a nearest point lookup for pointer hover. Render draws that geometry with
// go-chart, but any other drawing technology can consume it.
package chart

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/date"
	"github.com/etnz/satfolio/series"
)

// ValueEpsilon widens a flat value domain: one satoshi, in BTC.
const ValueEpsilon = 1e-8

// DefaultTimeTicks is the default target number of time axis ticks.
const DefaultTimeTicks = 6

// Insets are the paddings between the drawing surface edges and the plot area.
type Insets struct {
	Left, Right, Top, Bottom float64
}

// Frame is the drawing surface, in pixels.
type Frame struct {
	Width, Height float64
	Padding       Insets
}

// Vec is a position on the drawing surface.
type Vec struct{ X, Y float64 }

// Chart is the geometry of a holdings chart for one series and one frame.
type Chart struct {
	Points []series.Point
	Frame  Frame

	X, Y       Linear
	TMin, TMax int64   // time domain, epoch milliseconds
	VMin, VMax float64 // value domain, BTC

	Line       []Vec // polyline through the points
	Area       []Vec // polygon under the polyline, down to VMin
	ValueTicks []Tick
	TimeTicks  []TimeTick
}

type config struct {
	timeTicks int
	loc       *time.Location
	nf        satfolio.NumberFormat
}

// Option configures New.
type Option func(*config)

// WithTimeTicks sets the target number of time axis ticks, at least 2.
func WithTimeTicks(n int) Option {
	return func(c *config) { c.timeTicks = max(n, 2) }
}

// WithLocation sets the timezone used for day boundaries and time labels.
func WithLocation(loc *time.Location) Option {
	return func(c *config) { c.loc = loc }
}

// WithNumberFormat sets the number format of value labels.
func WithNumberFormat(nf satfolio.NumberFormat) Option {
	return func(c *config) { c.nf = nf }
}

// New computes the chart geometry of points, which must be sorted by Day, on frame.
//
// An empty series is not an error: the returned chart is Empty. The only
// error is a frame whose padding leaves no room to plot.
func New(points []series.Point, frame Frame, opts ...Option) (*Chart, error) {
	p := frame.Padding
	if frame.Width-p.Left-p.Right <= 0 || frame.Height-p.Top-p.Bottom <= 0 {
		return nil, fmt.Errorf("empty plot area: frame %vx%v with padding %+v", frame.Width, frame.Height, p)
	}
	cfg := config{timeTicks: DefaultTimeTicks, loc: time.Local, nf: satfolio.MustNumberFormat("th-TH")}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.loc == nil {
		cfg.loc = time.Local
	}

	c := &Chart{Points: points, Frame: frame}
	if len(points) == 0 {
		return c, nil
	}

	c.TMin, c.TMax = points[0].Day, points[len(points)-1].Day
	if c.TMin == c.TMax {
		c.TMax += date.DayMillis
	}
	c.VMin, c.VMax = valueDomain(points)

	c.X = Linear{D0: float64(c.TMin), D1: float64(c.TMax), R0: p.Left, R1: frame.Width - p.Right}
	c.Y = Linear{D0: c.VMin, D1: c.VMax, R0: frame.Height - p.Bottom, R1: p.Top}

	c.Line = make([]Vec, len(points))
	for i, pt := range points {
		c.Line[i] = Vec{X: c.XScale(pt.Day), Y: c.YScale(pt.Value)}
	}
	base := c.YScale(c.VMin)
	c.Area = make([]Vec, 0, len(points)+2)
	c.Area = append(c.Area, c.Line...)
	c.Area = append(c.Area, Vec{X: c.Line[len(c.Line)-1].X, Y: base}, Vec{X: c.Line[0].X, Y: base})

	c.ValueTicks = c.valueTicks(cfg.nf)
	c.TimeTicks = c.timeTicks(cfg.timeTicks, cfg.loc)
	return c, nil
}

// valueDomain returns the min and max values, widened when they are equal.
func valueDomain(points []series.Point) (lo, hi float64) {
	lo, hi = points[0].Value, points[0].Value
	for _, pt := range points[1:] {
		lo, hi = min(lo, pt.Value), max(hi, pt.Value)
	}
	if lo != hi {
		return lo, hi
	}
	v := lo
	lo, hi = v-ValueEpsilon, v+ValueEpsilon
	if v >= 0 {
		lo = max(lo, 0)
	}
	return lo, hi
}

// Empty reports whether the chart has no points to draw.
func (c *Chart) Empty() bool { return len(c.Points) == 0 }

// XScale returns the horizontal position of the instant ms.
func (c *Chart) XScale(ms int64) float64 { return c.X.Map(float64(ms)) }

// YScale returns the vertical position of the value v.
func (c *Chart) YScale(v float64) float64 { return c.Y.Map(v) }

// XInvert returns the instant, in epoch milliseconds, at the horizontal position px.
func (c *Chart) XInvert(px float64) float64 { return c.X.Invert(px) }

// LinePath returns the polyline as SVG path data.
func (c *Chart) LinePath() string { return svgPath(c.Line, false) }

// AreaPath returns the closed area as SVG path data.
func (c *Chart) AreaPath() string { return svgPath(c.Area, true) }

func svgPath(vs []Vec, closed bool) string {
	if len(vs) == 0 {
		return ""
	}
	var b strings.Builder
	for i, v := range vs {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString(" L")
		}
		b.WriteString(strconv.FormatFloat(v.X, 'f', 2, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(v.Y, 'f', 2, 64))
	}
	if closed {
		b.WriteString(" Z")
	}
	return b.String()
}
