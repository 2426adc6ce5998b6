package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/extract"
)

var quickCmd = &cobra.Command{
	Use:   "quick <text>...",
	Short: "Create an event from free-form text",
	Long: `Create an event from a natural-language sentence, for example:

  eventcal quick "schedule a dentist appointment tomorrow"
  eventcal quick reminder to pay rent on friday

Title, date and category are extracted heuristically; an unparseable
date falls back to today.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuick,
}

func runQuick(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	loc := location(cfg)
	x := extract.New(s, extract.WithClock(func() time.Time { return time.Now().In(loc) }))

	event, err := x.CreateFromText(strings.Join(args, " "))
	if err != nil || event == nil {
		return fmt.Errorf("could not create an event from this text: %v", err)
	}

	fmt.Printf("Added %q (%s) on %s [%s]\n",
		event.Title, event.Category, event.Date.Format("2006-01-02"), event.ID)
	return nil
}
