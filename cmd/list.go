package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/model"
)

var (
	listDate     string
	listUpcoming bool
	listAll      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendar events",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Show events for a date (2006-01-02 or free text)")
	listCmd.Flags().BoolVar(&listUpcoming, "upcoming", false, "Show events in the next 7 days")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Show every stored event")
}

func runList(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	now := time.Now().In(location(cfg))

	var events []model.Event
	switch {
	case listAll:
		events = s.All()
	case listUpcoming:
		events = s.Upcoming()
	default:
		// Default to today (covers --date and the bare command).
		events = s.ForDate(resolveDate(listDate, now))
	}

	printEvents(events)
	return nil
}

// printEvents groups events by date and prints them.
func printEvents(events []model.Event) {
	if len(events) == 0 {
		fmt.Println("No events found.")
		return
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	var currentDay string
	for _, e := range events {
		day := e.Date.Format("2006-01-02")
		if day != currentDay {
			fmt.Println(day)
			currentDay = day
		}

		desc := ""
		if e.Description != "" {
			desc = "  " + e.Description
		}
		fmt.Printf("  [%-8s] %s%s  (%s)\n", e.Category, e.Title, desc, e.ID)
	}
}
