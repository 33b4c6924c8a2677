package chart

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format int

const (
	SVG Format = iota
	PNG
)

func (f Format) String() string {
	switch f {
	case SVG:
		return "svg"
	case PNG:
		return "png"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "svg" or "png".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	}
	return 0, fmt.Errorf("unknown chart format %q, want svg or png", s)
}

// Style holds the colors and sizes used by Render.
type Style struct {
	Line      drawing.Color
	Fill      drawing.Color
	Grid      drawing.Color
	Text      drawing.Color
	LineWidth float64
	FontSize  float64
}

// DefaultStyle is an orange line over a translucent fill.
func DefaultStyle() Style {
	orange := drawing.ColorFromHex("f7931a")
	return Style{
		Line:      orange,
		Fill:      orange.WithAlpha(64),
		Grid:      drawing.ColorFromHex("e5e7eb"),
		Text:      drawing.ColorFromHex("6b7280"),
		LineWidth: 2,
		FontSize:  9,
	}
}

// Render draws c to w: value grid lines and labels, time labels, the area
// fill and the holdings line. An empty chart renders a "no data" caption.
func Render(w io.Writer, c *Chart, format Format, style Style) error {
	provider := gochart.SVG
	if format == PNG {
		provider = gochart.PNG
	}
	r, err := provider(int(c.Frame.Width), int(c.Frame.Height))
	if err != nil {
		return fmt.Errorf("cannot create %v renderer: %w", format, err)
	}
	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("cannot load chart font: %w", err)
	}
	r.SetFont(font)
	r.SetFontSize(style.FontSize)
	r.SetFontColor(style.Text)

	if c.Empty() {
		const caption = "no data"
		box := r.MeasureText(caption)
		r.Text(caption, (int(c.Frame.Width)-box.Width())/2, (int(c.Frame.Height)+box.Height())/2)
		return r.Save(w)
	}

	p := c.Frame.Padding
	left, right := px(p.Left), px(c.Frame.Width-p.Right)
	bottom := px(c.Frame.Height - p.Bottom)

	r.SetStrokeColor(style.Grid)
	r.SetStrokeWidth(1)
	for _, tk := range c.ValueTicks {
		y := px(tk.Position)
		r.MoveTo(left, y)
		r.LineTo(right, y)
		r.Stroke()
		box := r.MeasureText(tk.Label)
		r.Text(tk.Label, left-box.Width()-4, y+box.Height()/2)
	}
	for _, tk := range c.TimeTicks {
		box := r.MeasureText(tk.Label)
		r.Text(tk.Label, px(tk.Position)-box.Width()/2, bottom+box.Height()+4)
	}

	r.SetFillColor(style.Fill)
	r.SetStrokeColor(drawing.ColorTransparent)
	r.SetStrokeWidth(0)
	trace(r, c.Area)
	r.Close()
	r.Fill()

	r.SetStrokeColor(style.Line)
	r.SetStrokeWidth(style.LineWidth)
	trace(r, c.Line)
	r.Stroke()

	return r.Save(w)
}

func trace(r gochart.Renderer, vs []Vec) {
	for i, v := range vs {
		if i == 0 {
			r.MoveTo(px(v.X), px(v.Y))
			continue
		}
		r.LineTo(px(v.X), px(v.Y))
	}
}

func px(v float64) int { return int(math.Round(v)) }
