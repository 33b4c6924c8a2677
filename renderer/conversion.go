package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/satfolio"
)

// ConversionMarkdown renders a fiat to bitcoin conversion at price.
func ConversionMarkdown(fiat satfolio.Money, sats satfolio.Sats, price satfolio.Price, nf satfolio.NumberFormat, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Conversion\n\n")
	fmt.Fprintln(&b, "| Fiat | BTC | Satoshi |")
	fmt.Fprintln(&b, "|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | %s |\n\n",
		fiat,
		satfolio.FormatSats(sats, satfolio.BTC, nf),
		satfolio.FormatSats(sats, satfolio.Satoshi, nf),
	)
	fmt.Fprintf(&b, "At %s/BTC, updated %s.\n", price.Money(), price.UpdatedAt.In(loc).Format("2006-01-02 15:04"))
	if price.Stale {
		fmt.Fprint(&b, "\n**The price source is unavailable, this is the last known price.**\n")
	}
	return b.String()
}
