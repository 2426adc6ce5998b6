package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/model"
)

var (
	addCategory string
	addDate     string
	addDesc     string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a calendar event",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addCategory, "category", "", "Event category (default from config)")
	addCmd.Flags().StringVar(&addDate, "date", "", `Event date: 2006-01-02 or free text like "next friday"`)
	addCmd.Flags().StringVar(&addDesc, "desc", "", "Optional description")
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	category := model.Category(addCategory)
	if addCategory == "" {
		category = model.Category(cfg.Calendar.DefaultCategory)
	}
	if !category.Valid() {
		return fmt.Errorf("unknown category %q (one of: %v)", addCategory, model.Categories)
	}

	now := time.Now().In(location(cfg))
	event, err := s.Add(model.Draft{
		Title:       args[0],
		Category:    category,
		Date:        resolveDate(addDate, now),
		Description: addDesc,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %q (%s) on %s [%s]\n",
		event.Title, event.Category, event.Date.Format("2006-01-02"), event.ID)
	return nil
}
