package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/satfolio/chart"
	"github.com/etnz/satfolio/renderer"
	"github.com/etnz/satfolio/series"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type chartCmd struct {
	output string
	format string
	width  int
	height int
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "chart the bitcoin holdings over time" }
func (*chartCmd) Usage() string {
	return `sfc chart [-o <file>] [-format svg|png] [-w <width>] [-h <height>]

  Charts the cumulative holdings, one point per day with activity.
  Without -o, prints the points and the axis labels.

Usage Examples:
$ sfc chart -o holdings.svg
$ sfc chart -o holdings.png -w 1024
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output image file.")
	f.StringVar(&c.format, "format", "", "Image format, svg or png. Defaults to the output file extension.")
	f.IntVar(&c.width, "w", 0, "Image width in pixels. Defaults to the chart.width setting.")
	f.IntVar(&c.height, "h", 0, "Image height in pixels. Defaults to the chart.height setting.")
}

func (c *chartCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	env, err := loadEnv()
	if err != nil {
		return fail("%v", err)
	}
	defer env.logger.Sync()

	ledger, err := env.loadLedger()
	if err != nil {
		return fail("%v", err)
	}
	points, err := series.BuildDaily(ledger.Entries(), env.loc)
	if err != nil {
		return fail("%v", err)
	}

	cs := env.settings.Chart
	frame := chart.Frame{
		Width:  float64(cs.Width),
		Height: float64(cs.Height),
		Padding: chart.Insets{
			Left:   float64(cs.Padding.Left),
			Right:  float64(cs.Padding.Right),
			Top:    float64(cs.Padding.Top),
			Bottom: float64(cs.Padding.Bottom),
		},
	}
	if c.width > 0 {
		frame.Width = float64(c.width)
	}
	if c.height > 0 {
		frame.Height = float64(c.height)
	}
	nf := env.settings.NumberFormat()
	ch, err := chart.New(points, frame,
		chart.WithTimeTicks(cs.TimeTicks),
		chart.WithLocation(env.loc),
		chart.WithNumberFormat(nf),
	)
	if err != nil {
		return fail("%v", err)
	}

	if c.output == "" {
		printMarkdown(renderer.ChartMarkdown(ch, nf, env.loc))
		return subcommands.ExitSuccess
	}

	name := c.format
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.output)), ".")
	}
	format, err := chart.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, ch, format, chart.DefaultStyle()); err != nil {
		return fail("%v", err)
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil {
		return fail("%v", err)
	}
	env.logger.Info("chart written", zap.String("path", c.output), zap.Int("points", len(points)))
	fmt.Fprintf(os.Stderr, "Chart of %d days written to %s.\n", len(points), c.output)
	return subcommands.ExitSuccess
}
