// Diagnostic program comparing the feed and SPARQL sources for one day.
// Shows how many facts each source returns and how they spread over the
// built-in categories.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/ppiankov/dayfacts/internal/category"
	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/source"
	"github.com/ppiankov/dayfacts/internal/worker"
)

func main() {
	dateFlag := pflag.StringP("date", "d", time.Now().Format("01-02"), "day to compare as MM-DD")
	pflag.Parse()

	date, err := worker.ParseDate(*dateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Source comparison for %s ===\n\n", date)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	table := category.DefaultTable()

	for _, kind := range []string{model.SourceFeed, model.SourceSPARQL} {
		fmt.Printf("Source: %s\n", kind)
		fmt.Println(strings.Repeat("-", 60))

		cfg := model.DefaultConfig()
		cfg.Source.Kind = kind

		src, err := source.New(cfg)
		if err != nil {
			fmt.Printf("  setup error: %v\n\n", err)
			continue
		}

		start := time.Now()
		day, err := src.Fetch(ctx, date.Month, date.Day)
		if err != nil {
			fmt.Printf("  fetch error: %v\n\n", err)
			continue
		}

		fmt.Printf("  fetched in %v\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("  selected: %d  events: %d  births: %d  deaths: %d  holidays: %d\n",
			len(day.Selected), len(day.Events), len(day.Births), len(day.Deaths), len(day.Holidays))

		facts := day.Facts(cfg.Source.Collection)
		for _, def := range table.Definitions {
			matched := category.Filter(facts, def)
			fmt.Printf("  %-12s %3d\n", def.Category, len(matched))
		}
		fmt.Println()
	}
}
