package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/satfolio"
	"github.com/etnz/satfolio/chart"
	"github.com/etnz/satfolio/date"
	"github.com/etnz/satfolio/series"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var (
	bangkok = time.FixedZone("ICT", 7*3600)
	en      = satfolio.MustNumberFormat("en")
)

// outline is the structure of a markdown document.
type outline struct {
	Headings []string
	Tables   []int // number of body rows of each table
}

// parseOutline parses a GFM document and returns its headings and tables.
func parseOutline(t *testing.T, md string) outline {
	t.Helper()
	src := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))

	var o outline
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			var b strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if txt, ok := c.(*ast.Text); ok {
					b.Write(txt.Segment.Value(src))
				}
			}
			o.Headings = append(o.Headings, b.String())
		case east.KindTable:
			rows := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if c.Kind() == east.KindTableRow {
					rows++
				}
			}
			o.Tables = append(o.Tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("cannot walk markdown: %v", err)
	}
	return o
}

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func at(d, h int) time.Time { return time.Date(2025, time.March, d, h, 0, 0, 0, bangkok) }

func exampleEntries() []satfolio.Entry {
	return []satfolio.Entry{
		satfolio.NewBuy(at(1, 9), 100_000_000, satfolio.MF(1_000_000, "USD"), dec(1_000_000)),
		satfolio.NewSell(at(1, 18), 40_000_000, satfolio.MF(500_000, "USD"), dec(1_250_000)),
		satfolio.NewBuy(at(3, 12), 20_000_000, satfolio.MF(300_000, "USD"), dec(1_500_000)),
	}
}

func TestRenderPortfolio(t *testing.T) {
	price := &satfolio.Price{Value: dec(2_000_000), Currency: "USD", UpdatedAt: at(4, 10)}
	stats, err := satfolio.ComputeStats(exampleEntries(), "USD", price)
	if err != nil {
		t.Fatal(err)
	}

	got := RenderPortfolio(NewPortfolio(stats, date.New(2025, time.March, 4), 3, satfolio.BTC, en, bangkok))

	want := outline{
		Headings: []string{"Portfolio on 2025-03-04", "Valuation at $2,000,000.00/BTC"},
		Tables:   []int{2, 2},
	}
	if diff := cmp.Diff(want, parseOutline(t, got)); diff != "" {
		t.Errorf("RenderPortfolio() outline mismatch (-want +got):\n%s\n%s", diff, got)
	}
	for _, s := range []string{"| Holdings | 0.8 BTC |", "| Net invested | $800,000.00 |", "| Profit / Loss | +$800,000.00 |", "| Profit / Loss % | +100.00% |"} {
		if !strings.Contains(got, s) {
			t.Errorf("RenderPortfolio() missing %q in:\n%s", s, got)
		}
	}
}

func TestRenderPortfolio_Stale(t *testing.T) {
	price := &satfolio.Price{Value: dec(2_000_000), Currency: "USD", UpdatedAt: at(4, 10), Stale: true}
	stats, err := satfolio.ComputeStats(exampleEntries(), "USD", price)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPortfolio(NewPortfolio(stats, date.New(2025, time.March, 4), 3, satfolio.BTC, en, bangkok))
	if !strings.Contains(got, "(cached on 2025-03-04 10:00)") {
		t.Errorf("RenderPortfolio() does not flag the cached price:\n%s", got)
	}
}

func TestRenderPortfolio_NoPrice(t *testing.T) {
	stats, err := satfolio.ComputeStats(exampleEntries(), "USD", nil)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPortfolio(NewPortfolio(stats, date.New(2025, time.March, 4), 3, satfolio.Satoshi, en, bangkok))

	want := outline{Headings: []string{"Portfolio on 2025-03-04"}, Tables: []int{2}}
	if diff := cmp.Diff(want, parseOutline(t, got)); diff != "" {
		t.Errorf("RenderPortfolio() outline mismatch (-want +got):\n%s", diff)
	}
	for _, s := range []string{"| Holdings | 80,000,000 Satoshi |", "No price available"} {
		if !strings.Contains(got, s) {
			t.Errorf("RenderPortfolio() missing %q in:\n%s", s, got)
		}
	}
}

func TestRenderPortfolio_OtherCurrency(t *testing.T) {
	price := &satfolio.Price{Value: dec(1_000_000), Currency: "EUR", UpdatedAt: at(4, 10)}
	stats, err := satfolio.ComputeStats(exampleEntries(), "EUR", price)
	if err != nil {
		t.Fatal(err)
	}
	got := RenderPortfolio(NewPortfolio(stats, date.New(2025, time.March, 4), 3, satfolio.BTC, en, bangkok))

	for _, s := range []string{"| Holdings | 0.8 BTC |", "3 transactions recorded in another currency", "| Current value |"} {
		if !strings.Contains(got, s) {
			t.Errorf("RenderPortfolio() missing %q in:\n%s", s, got)
		}
	}
	if strings.Contains(got, "Profit") {
		t.Errorf("RenderPortfolio() shows a profit over a partial cost:\n%s", got)
	}
}

func TestRenderTransactions(t *testing.T) {
	entries := exampleEntries()
	entries[2].Memo = "dca"
	got := RenderTransactions(NewTransactions("Ledger", entries, satfolio.BTC, en, bangkok))

	want := outline{Headings: []string{"Ledger"}, Tables: []int{3}}
	if diff := cmp.Diff(want, parseOutline(t, got)); diff != "" {
		t.Errorf("RenderTransactions() outline mismatch (-want +got):\n%s\n%s", diff, got)
	}
	row := "| 2025-03-03 12:00 | buy | 0.2 BTC | $300,000.00 | $1,500,000.00 | " + entries[2].ID[:8] + " | dca |"
	if !strings.Contains(got, row) {
		t.Errorf("RenderTransactions() missing row %q in:\n%s", row, got)
	}
}

func TestRenderTransactions_Empty(t *testing.T) {
	got := RenderTransactions(NewTransactions("Ledger", nil, satfolio.BTC, en, bangkok))
	if want := "# Ledger\n\nNo transactions.\n\n"; got != want {
		t.Errorf("RenderTransactions(nil) = %q, want %q", got, want)
	}
}

func TestTransaction(t *testing.T) {
	e := satfolio.NewBuy(at(1, 9), 50_000, satfolio.MF(1000, "USD"), dec(2_000_000))
	if got, want := Transaction(e, satfolio.BTC, en), "Bought 0.0005 BTC for $1,000.00 at $2,000,000.00/BTC"; got != want {
		t.Errorf("Transaction() = %q, want %q", got, want)
	}
	e.Kind = satfolio.Dispose
	if got, want := Transaction(e, satfolio.Satoshi, en), "Sold 50,000 Satoshi for $1,000.00 at $2,000,000.00/BTC"; got != want {
		t.Errorf("Transaction() = %q, want %q", got, want)
	}
}

func TestConversionMarkdown(t *testing.T) {
	price := satfolio.Price{Value: dec(2_000_000), Currency: "USD", UpdatedAt: at(4, 10)}
	got := ConversionMarkdown(satfolio.MF(1000, "USD"), 50_000, price, en, bangkok)

	want := outline{Headings: []string{"Conversion"}, Tables: []int{1}}
	if diff := cmp.Diff(want, parseOutline(t, got)); diff != "" {
		t.Errorf("ConversionMarkdown() outline mismatch (-want +got):\n%s", diff)
	}
	if row := "| $1,000.00 | 0.0005 BTC | 50,000 Satoshi |"; !strings.Contains(got, row) {
		t.Errorf("ConversionMarkdown() missing %q in:\n%s", row, got)
	}
	if strings.Contains(got, "last known price") {
		t.Errorf("ConversionMarkdown() flags a fresh price as stale:\n%s", got)
	}

	price.Stale = true
	if got := ConversionMarkdown(satfolio.MF(1000, "USD"), 50_000, price, en, bangkok); !strings.Contains(got, "last known price") {
		t.Errorf("ConversionMarkdown() does not flag the stale price:\n%s", got)
	}
}

func TestChartMarkdown(t *testing.T) {
	points, err := series.BuildDaily(exampleEntries(), bangkok)
	if err != nil {
		t.Fatal(err)
	}
	frame := chart.Frame{Width: 640, Height: 240, Padding: chart.Insets{Left: 48, Right: 16, Top: 16, Bottom: 32}}
	c, err := chart.New(points, frame, chart.WithLocation(bangkok), chart.WithNumberFormat(en))
	if err != nil {
		t.Fatal(err)
	}

	got := ChartMarkdown(c, en, bangkok)
	want := outline{Headings: []string{"Holdings over Time", "Axes"}, Tables: []int{2}}
	if diff := cmp.Diff(want, parseOutline(t, got)); diff != "" {
		t.Errorf("ChartMarkdown() outline mismatch (-want +got):\n%s\n%s", diff, got)
	}
	for _, s := range []string{"| 2025-03-01 | 0.6 |", "| 2025-03-03 | 0.8 |", "- Time: 1 Mar, 2 Mar, 3 Mar", "- Value: 0.6, 0.65, 0.7, 0.75, 0.8"} {
		if !strings.Contains(got, s) {
			t.Errorf("ChartMarkdown() missing %q in:\n%s", s, got)
		}
	}
}

func TestChartMarkdown_Empty(t *testing.T) {
	c, err := chart.New(nil, chart.Frame{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := ChartMarkdown(c, en, bangkok), "# Holdings over Time\n\nNo data.\n"; got != want {
		t.Errorf("ChartMarkdown(empty) = %q, want %q", got, want)
	}
}
