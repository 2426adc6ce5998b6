package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/ics"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all events as an iCalendar (.ics) file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	events := s.All()

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	if err := ics.Export(out, events); err != nil {
		return fmt.Errorf("exporting calendar: %w", err)
	}
	if exportOut != "" {
		fmt.Printf("Exported %d events to %s\n", len(events), exportOut)
	}
	return nil
}
