package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/eventcal/internal/loadtest"
	"github.com/Tiliavir/eventcal/internal/model"
	"github.com/Tiliavir/eventcal/internal/store"
)

var (
	loadtestCount int
	loadtestSeed  int64
	loadtestLive  bool
)

var loadtestCmd = &cobra.Command{
	Use:   "loadtest",
	Short: "Exercise the event store under synthetic load",
	Long: `Run a three-phase create/update/delete workload against the event
store and report per-phase success rates. By default the workload runs
against a throwaway store in a temp directory; pass --live to target
the real collection.`,
	Args: cobra.NoArgs,
	RunE: runLoadtest,
}

func init() {
	loadtestCmd.Flags().IntVar(&loadtestCount, "count", 25, "Number of synthetic events to create")
	loadtestCmd.Flags().Int64Var(&loadtestSeed, "seed", 0, "Random seed (0 = time-based)")
	loadtestCmd.Flags().BoolVar(&loadtestLive, "live", false, "Target the real event collection")
}

// storeBackend binds the harness contract to a concrete store.
func storeBackend(s *store.Store) loadtest.Backend {
	return loadtest.Backend{
		Save: func(_ context.Context, draft model.Draft) (*model.Event, error) {
			event, err := s.Add(draft)
			if err != nil {
				return nil, err
			}
			return &event, nil
		},
		Update: func(_ context.Context, event model.Event) (*model.Event, error) {
			updated, found, err := s.Update(event)
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, nil
			}
			return &updated, nil
		},
		Delete: func(_ context.Context, id string) (bool, error) {
			return s.Delete(id)
		},
	}
}

func runLoadtest(cmd *cobra.Command, args []string) error {
	var s *store.Store
	if loadtestLive {
		live, _, err := openStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		s = live
	} else {
		dir, err := os.MkdirTemp("", "eventcal-loadtest-")
		if err != nil {
			return fmt.Errorf("creating temp store: %w", err)
		}
		defer os.RemoveAll(dir)
		s = store.New(filepath.Join(dir, "events.json"))
	}

	seed := loadtestSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("Running load test: %d events against %s (seed %d)\n",
		loadtestCount, s.Path(), seed)

	report, err := loadtest.Run(cmd.Context(), storeBackend(s), loadtestCount, loadtest.NewGenerator(seed))
	if err != nil {
		return err
	}

	fmt.Printf("  Created: %d/%d (%.1f%%)\n", report.Created, report.Requested, report.CreatedPct())
	fmt.Printf("  Updated: %d/%d (%.1f%%)\n", report.Updated, report.UpdateBatchSize, report.UpdatedPct())
	fmt.Printf("  Deleted: %d/%d (%.1f%%)\n", report.Deleted, report.DeleteBatchSize, report.DeletedPct())
	if report.Errors != (loadtest.Errors{}) {
		fmt.Printf("  Errors:  creation=%d update=%d deletion=%d\n",
			report.Errors.Creation, report.Errors.Update, report.Errors.Deletion)
	}
	return nil
}
