package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/config"
	"github.com/Tiliavir/eventcal/internal/dateparse"
	"github.com/Tiliavir/eventcal/internal/store"
	"github.com/Tiliavir/eventcal/internal/timeutil"
)

var rootCmd = &cobra.Command{
	Use:   "eventcal",
	Short: "eventcal – a minimal file-based calendar event engine",
	Long: `eventcal stores calendar events as human-readable JSON in ~/.eventcal/
and understands free-form text like "schedule a dentist appointment tomorrow".`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(quickCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(loadtestCmd)
}

// openStore loads the configuration and opens the configured event
// store.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	path, err := cfg.DataFile()
	if err != nil {
		return nil, config.Config{}, err
	}
	return store.New(path), cfg, nil
}

// location resolves the configured timezone, defaulting to local time.
func location(cfg config.Config) *time.Location {
	if cfg.Calendar.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(cfg.Calendar.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: unknown timezone %q, using local time\n", cfg.Calendar.Timezone)
		return time.Local
	}
	return loc
}

// resolveDate turns a date argument into a concrete day: an empty value
// is today, an ISO date is taken literally, and anything else goes
// through the natural-language parser (falling back to today).
func resolveDate(arg string, now time.Time) time.Time {
	if arg == "" {
		return timeutil.StartOfDay(now)
	}
	if t, err := time.ParseInLocation("2006-01-02", arg, now.Location()); err == nil {
		return t
	}
	result := dateparse.Parse(arg, now)
	if !result.Matched {
		fmt.Fprintf(os.Stderr, "Warning: could not parse date %q, using today\n", arg)
	}
	return result.Date
}
