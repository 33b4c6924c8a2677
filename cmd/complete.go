package cmd

import (
	"flag"
	"io"

	"github.com/etnz/satfolio/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the predictors of flags whose values are known in advance.
// Other flags accept anything.
var flagPredictors = map[string]complete.Predictor{
	"unit":   predict.Set{"BTC", "sats"},
	"p":      predict.Set{"day", "week", "month", "quarter", "year"},
	"o":      predict.Files("*"),
	"format": predict.Set{"svg", "png"},
	"data":   predict.Dirs("*"),
	"set": predict.Set{
		"fiat_currency=", "btc_unit=", "locale=", "timezone=",
		"max_price_age=", "refresh_interval=",
		"chart.width=", "chart.height=", "chart.time_ticks=",
		"chart.padding.left=", "chart.padding.right=", "chart.padding.top=", "chart.padding.bottom=",
		"coingecko.base_url=", "logging.level=",
	},
}

// Completion returns the shell completion tree of sfc.
//
// A main package calls Completion().Complete(name) before parsing the flags:
// when the shell asks for completions, it prints them and exits.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsOf(flag.CommandLine),
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
			fs.SetOutput(io.Discard)
			c.SetFlags(fs)
			sub := &complete.Command{Flags: flagsOf(fs), Args: predict.Nothing}
			if c.Name() == "topic" {
				topics, _ := docs.GetAllTopics()
				sub.Args = predict.Set(topics)
			}
			root.Sub[c.Name()] = sub
		}
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{Args: predict.Nothing}
	}
	return root
}

func flagsOf(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
