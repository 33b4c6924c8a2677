package chart

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/series"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var bangkok = time.FixedZone("ICT", 7*3600)

var frame = Frame{Width: 640, Height: 240, Padding: Insets{Left: 48, Right: 16, Top: 16, Bottom: 32}}

func day(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, bangkok).UnixMilli()
}

func newChart(t *testing.T, points []series.Point, opts ...Option) *Chart {
	t.Helper()
	opts = append([]Option{WithLocation(bangkok), WithNumberFormat(satfolio.MustNumberFormat("en"))}, opts...)
	c, err := New(points, frame, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func example() []series.Point {
	return []series.Point{
		{Day: day(2025, time.March, 1), Value: 0.6},
		{Day: day(2025, time.March, 3), Value: 0.8},
	}
}

func TestNew_Scales(t *testing.T) {
	c := newChart(t, example())

	if got, want := c.XScale(day(2025, time.March, 1)), 48.0; got != want {
		t.Errorf("XScale(first) = %v, want %v", got, want)
	}
	if got, want := c.XScale(day(2025, time.March, 3)), 624.0; got != want {
		t.Errorf("XScale(last) = %v, want %v", got, want)
	}
	if got, want := c.YScale(0.6), 208.0; got != want {
		t.Errorf("YScale(vmin) = %v, want %v", got, want)
	}
	if got, want := c.YScale(0.8), 16.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("YScale(vmax) = %v, want %v", got, want)
	}
}

func TestNew_InvertRoundTrip(t *testing.T) {
	c := newChart(t, example())
	for ms := c.TMin; ms <= c.TMax; ms += 3_600_000 {
		if got := c.XInvert(c.XScale(ms)); math.Abs(got-float64(ms)) > 1e-3 {
			t.Fatalf("XInvert(XScale(%d)) = %v", ms, got)
		}
	}
	for v := 0.6; v <= 0.8; v += 0.01 {
		if got := c.Y.Invert(c.YScale(v)); math.Abs(got-v) > 1e-12 {
			t.Fatalf("Y.Invert(YScale(%v)) = %v", v, got)
		}
	}
}

func TestNew_Monotonic(t *testing.T) {
	c := newChart(t, example())
	for ms := c.TMin; ms < c.TMax; ms += 3_600_000 {
		if c.XScale(ms) >= c.XScale(ms+3_600_000) {
			t.Fatalf("XScale not increasing at %d", ms)
		}
	}
	// The value axis points up: larger values are drawn higher.
	if c.YScale(0.7) >= c.YScale(0.65) {
		t.Errorf("YScale(0.7) = %v, want above YScale(0.65) = %v", c.YScale(0.7), c.YScale(0.65))
	}
}

func TestNew_Paths(t *testing.T) {
	c := newChart(t, example())

	if got, want := c.LinePath(), "M48.00,208.00 L624.00,16.00"; got != want {
		t.Errorf("LinePath() = %q, want %q", got, want)
	}
	if got, want := c.AreaPath(), "M48.00,208.00 L624.00,16.00 L624.00,208.00 L48.00,208.00 Z"; got != want {
		t.Errorf("AreaPath() = %q, want %q", got, want)
	}
}

func TestNew_ValueTicks(t *testing.T) {
	c := newChart(t, example())

	var values []float64
	var labels []string
	for _, tk := range c.ValueTicks {
		values = append(values, tk.Value)
		labels = append(labels, tk.Label)
	}
	if diff := cmp.Diff([]float64{0.6, 0.65, 0.7, 0.75, 0.8}, values, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("ValueTicks values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"0.6", "0.65", "0.7", "0.75", "0.8"}, labels); diff != "" {
		t.Errorf("ValueTicks labels mismatch (-want +got):\n%s", diff)
	}
	if got, want := c.ValueTicks[0].Position, c.YScale(0.6); got != want {
		t.Errorf("ValueTicks[0].Position = %v, want %v", got, want)
	}
}

func TestNew_TimeTicksShortSpan(t *testing.T) {
	points := []series.Point{
		{Day: day(2025, time.March, 1), Value: 0.1},
		{Day: day(2025, time.March, 4), Value: 0.2},
	}
	c := newChart(t, points)

	want := []TimeTick{
		{Position: c.XScale(day(2025, time.March, 1)), Millis: day(2025, time.March, 1), Label: "1 Mar"},
		{Position: c.XScale(day(2025, time.March, 2)), Millis: day(2025, time.March, 2), Label: "2 Mar"},
		{Position: c.XScale(day(2025, time.March, 3)), Millis: day(2025, time.March, 3), Label: "3 Mar"},
		{Position: c.XScale(day(2025, time.March, 4)), Millis: day(2025, time.March, 4), Label: "4 Mar"},
	}
	if diff := cmp.Diff(want, c.TimeTicks); diff != "" {
		t.Errorf("TimeTicks mismatch (-want +got):\n%s", diff)
	}
	for _, tk := range c.TimeTicks {
		if tk.Millis > c.TMax {
			t.Errorf("tick %v beyond domain max %v", tk.Millis, c.TMax)
		}
	}
}

func TestTimeTickInstants(t *testing.T) {
	tests := []struct {
		name       string
		tmin, tmax int64
		target     int
		want       []int64
	}{
		{
			name:   "one per day",
			tmin:   day(2025, time.March, 1),
			tmax:   day(2025, time.March, 3),
			target: 6,
			want:   []int64{day(2025, time.March, 1), day(2025, time.March, 2), day(2025, time.March, 3)},
		},
		{
			name:   "stepped",
			tmin:   day(2025, time.March, 1),
			tmax:   day(2025, time.March, 31),
			target: 6,
			want: []int64{
				day(2025, time.March, 1), day(2025, time.March, 7), day(2025, time.March, 13),
				day(2025, time.March, 19), day(2025, time.March, 25), day(2025, time.March, 31),
			},
		},
		{
			name:   "end forced",
			tmin:   day(2025, time.March, 1),
			tmax:   day(2025, time.March, 8),
			target: 3,
			want: []int64{
				day(2025, time.March, 1), day(2025, time.March, 5), day(2025, time.March, 8),
			},
		},
		{
			name:   "start of day",
			tmin:   day(2025, time.March, 1) + 15*3_600_000,
			tmax:   day(2025, time.March, 11) + 15*3_600_000,
			target: 3,
			want: []int64{
				day(2025, time.March, 1), day(2025, time.March, 6), day(2025, time.March, 11),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeTickInstants(tt.tmin, tt.tmax, tt.target, bangkok)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TimeTickInstants() mismatch (-want +got):\n%s", diff)
			}
			if len(got) > tt.target+1 {
				t.Errorf("TimeTickInstants() returned %d ticks, want at most %d", len(got), tt.target+1)
			}
		})
	}
}

func TestTimeTickInstants_DaylightSaving(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	midnight := func(m time.Month, d int) int64 { return time.Date(2025, m, d, 0, 0, 0, 0, ny).UnixMilli() }

	tests := []struct {
		name       string
		tmin, tmax int64
		target     int
		want       []int64
	}{
		{
			// March 9 lasts 23 hours: ticks stay on local midnights.
			name:   "spring forward, one per day",
			tmin:   midnight(time.March, 8),
			tmax:   midnight(time.March, 10),
			target: 6,
			want:   []int64{midnight(time.March, 8), midnight(time.March, 9), midnight(time.March, 10)},
		},
		{
			name:   "spring forward, stepped",
			tmin:   midnight(time.March, 1),
			tmax:   midnight(time.March, 31),
			target: 6,
			want: []int64{
				midnight(time.March, 1), midnight(time.March, 7), midnight(time.March, 13),
				midnight(time.March, 19), midnight(time.March, 25), midnight(time.March, 31),
			},
		},
		{
			// November 2 lasts 25 hours.
			name:   "fall back, one per day",
			tmin:   midnight(time.November, 1),
			tmax:   midnight(time.November, 3),
			target: 6,
			want:   []int64{midnight(time.November, 1), midnight(time.November, 2), midnight(time.November, 3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeTickInstants(tt.tmin, tt.tmax, tt.target, ny)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TimeTickInstants() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	// A single point on the short day still gets a tick on the next midnight.
	c, err := New([]series.Point{{Day: midnight(time.March, 9), Value: 1}}, frame, WithLocation(ny))
	if err != nil {
		t.Fatal(err)
	}
	var labels []string
	for _, tk := range c.TimeTicks {
		labels = append(labels, tk.Label)
	}
	if diff := cmp.Diff([]string{"9 Mar", "10 Mar"}, labels); diff != "" {
		t.Errorf("New(single point on March 9) time labels mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_TimeTicksLongSpan(t *testing.T) {
	points := []series.Point{
		{Day: day(2023, time.January, 1), Value: 0.1},
		{Day: day(2025, time.January, 1), Value: 0.2},
	}
	c := newChart(t, points)

	if len(c.TimeTicks) > DefaultTimeTicks+1 {
		t.Errorf("len(TimeTicks) = %d, want at most %d", len(c.TimeTicks), DefaultTimeTicks+1)
	}
	if got, want := c.TimeTicks[0].Label, "Jan 2023"; got != want {
		t.Errorf("TimeTicks[0].Label = %q, want %q", got, want)
	}
	if got, want := c.TimeTicks[len(c.TimeTicks)-1].Millis, day(2025, time.January, 1); got != want {
		t.Errorf("last tick = %v, want %v", got, want)
	}
}

func TestNew_SinglePoint(t *testing.T) {
	for _, v := range []float64{0, 0.5} {
		c := newChart(t, []series.Point{{Day: day(2025, time.March, 1), Value: v}})

		if got, want := c.TMax-c.TMin, int64(86_400_000); got != want {
			t.Errorf("time domain width = %v, want %v", got, want)
		}
		if c.VMin >= c.VMax || c.VMin < 0 {
			t.Errorf("value domain = [%v, %v], want a non empty non negative interval", c.VMin, c.VMax)
		}
		for _, vec := range append(c.Line, c.Area...) {
			if math.IsNaN(vec.X) || math.IsInf(vec.X, 0) || math.IsNaN(vec.Y) || math.IsInf(vec.Y, 0) {
				t.Fatalf("New(%v) vertex %v is not finite", v, vec)
			}
		}
		for _, tk := range c.ValueTicks {
			if math.IsNaN(tk.Position) || math.IsInf(tk.Position, 0) {
				t.Fatalf("New(%v) value tick %v is not finite", v, tk)
			}
		}
		if len(c.TimeTicks) != 2 {
			t.Errorf("New(%v) TimeTicks = %v, want 2 ticks", v, c.TimeTicks)
		}
	}
}

func TestNew_Empty(t *testing.T) {
	c := newChart(t, nil)

	if !c.Empty() {
		t.Errorf("Empty() = false, want true")
	}
	if got := c.Nearest(100); got != -1 {
		t.Errorf("Nearest() = %v, want -1", got)
	}
	if _, ok := c.Hover(100); ok {
		t.Errorf("Hover() ok = true, want false")
	}
	if c.LinePath() != "" || len(c.ValueTicks) != 0 || len(c.TimeTicks) != 0 {
		t.Errorf("empty chart has geometry: %q %v %v", c.LinePath(), c.ValueTicks, c.TimeTicks)
	}
}

func TestNew_EmptyFrame(t *testing.T) {
	small := Frame{Width: 50, Height: 240, Padding: Insets{Left: 30, Right: 30}}
	if _, err := New(example(), small); err == nil {
		t.Errorf("New() with a frame narrower than its padding: want error")
	}
}

func TestNew_DoesNotMutate(t *testing.T) {
	points := example()
	before := append([]series.Point(nil), points...)
	newChart(t, points)
	if diff := cmp.Diff(before, points); diff != "" {
		t.Errorf("New() mutated its input (-before +after):\n%s", diff)
	}
}
