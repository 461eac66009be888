package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/rohmanhakim/nps-scraper/internal/park"
	"github.com/rohmanhakim/nps-scraper/internal/places"
)

func writeParkList(out io.Writer, state string, records []park.Record) {
	rule := strings.Repeat("-", 33)
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "List of national sites in %s\n", strings.ToLower(strings.TrimSpace(state)))
	fmt.Fprintln(out, rule)
	for i, record := range records {
		fmt.Fprintf(out, "[%d] %s\n", i+1, record.Info())
	}
}

func writeNearby(out io.Writer, parkName string, nearby []places.Place) {
	title := fmt.Sprintf("Places near %s", parkName)
	rule := strings.Repeat("-", len(title)+5)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
	for _, place := range nearby {
		fmt.Fprintf(out, "- %s\n", place.Info())
	}
}
