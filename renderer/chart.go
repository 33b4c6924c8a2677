package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/chart"
)

// ChartMarkdown renders the holdings series of c as a table, followed by the axis ticks.
func ChartMarkdown(c *chart.Chart, nf satfolio.NumberFormat, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Holdings over Time\n\n")
	if c.Empty() {
		fmt.Fprintln(&b, "No data.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Day | Holdings (BTC) |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, p := range c.Points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Time().In(loc).Format("2006-01-02"), nf.Format(p.Value, 8))
	}

	fmt.Fprint(&b, "\n## Axes\n\n")
	var labels []string
	for _, tk := range c.TimeTicks {
		labels = append(labels, tk.Label)
	}
	fmt.Fprintf(&b, "- Time: %s\n", strings.Join(labels, ", "))
	labels = labels[:0]
	for _, tk := range c.ValueTicks {
		labels = append(labels, tk.Label)
	}
	fmt.Fprintf(&b, "- Value: %s\n", strings.Join(labels, ", "))
	return b.String()
}
