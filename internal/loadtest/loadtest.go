// Package loadtest exercises any create/update/delete-capable event
// backend under a synthetic three-phase workload and reports aggregate
// outcomes. It depends only on the functional contract below, not on a
// concrete store.
package loadtest

import (
	"context"
	"fmt"

	"github.com/Tiliavir/eventcal/internal/model"
)

// SaveFunc persists a draft, returning the stored event. A nil event or
// an error both count as a creation failure.
type SaveFunc func(ctx context.Context, draft model.Draft) (*model.Event, error)

// UpdateFunc replaces a stored event whole-record.
type UpdateFunc func(ctx context.Context, event model.Event) (*model.Event, error)

// DeleteFunc removes an event by id, reporting whether it was found.
type DeleteFunc func(ctx context.Context, id string) (bool, error)

// Backend is the trio of operations a run drives. All three are
// required.
type Backend struct {
	Save   SaveFunc
	Update UpdateFunc
	Delete DeleteFunc
}

// Errors holds per-phase failure counts.
type Errors struct {
	Creation int `json:"creation"`
	Update   int `json:"update"`
	Deletion int `json:"deletion"`
}

// Report aggregates one run. Created+Errors.Creation always equals the
// requested count; the update and delete batches are disjoint slices of
// the created set.
type Report struct {
	Requested       int    `json:"requested"`
	Created         int    `json:"events_created"`
	Updated         int    `json:"events_updated"`
	Deleted         int    `json:"events_deleted"`
	UpdateBatchSize int    `json:"update_batch_size"`
	DeleteBatchSize int    `json:"delete_batch_size"`
	Errors          Errors `json:"errors"`
}

// CreatedPct is the creation success rate in percent.
func (r Report) CreatedPct() float64 { return pct(r.Created, r.Requested) }

// UpdatedPct is the update success rate over the update batch.
func (r Report) UpdatedPct() float64 { return pct(r.Updated, r.UpdateBatchSize) }

// DeletedPct is the deletion success rate over the delete batch.
func (r Report) DeletedPct() float64 { return pct(r.Deleted, r.DeleteBatchSize) }

func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Run drives the backend through the three sequential phases: create n
// synthetic events, update the first half of the created set, then
// delete the created slice from the 50% to the 75% mark. Operations are
// issued strictly one at a time; per-item failures are counted and
// never abort a phase. A cancelled ctx ends the run early with the
// partial report.
func Run(ctx context.Context, b Backend, n int, gen *Generator) (Report, error) {
	if b.Save == nil || b.Update == nil || b.Delete == nil {
		return Report{}, fmt.Errorf("load test backend requires save, update and delete operations")
	}
	if n < 0 {
		return Report{}, fmt.Errorf("invalid event count %d", n)
	}
	if gen == nil {
		gen = NewGenerator(0)
	}

	report := Report{Requested: n}

	// Creation phase.
	var created []model.Event
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		event, err := safeSave(ctx, b.Save, gen.Draft(i))
		if err != nil || event == nil {
			report.Errors.Creation++
			continue
		}
		created = append(created, *event)
		report.Created++
	}

	// Update phase: the first half of the created set.
	updateBatch := created[:len(created)/2]
	report.UpdateBatchSize = len(updateBatch)
	for _, event := range updateBatch {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		event.Title = "UPDATED: " + event.Title
		event.Description = "UPDATED: " + event.Description
		updated, err := safeUpdate(ctx, b.Update, event)
		if err != nil || updated == nil {
			report.Errors.Update++
			continue
		}
		report.Updated++
	}

	// Deletion phase: the 50%–75% slice, disjoint from the updated half.
	deleteBatch := created[len(created)/2 : len(created)*3/4]
	report.DeleteBatchSize = len(deleteBatch)
	for _, event := range deleteBatch {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		removed, err := safeDelete(ctx, b.Delete, event.ID)
		if err != nil || !removed {
			report.Errors.Deletion++
			continue
		}
		report.Deleted++
	}

	return report, nil
}

// The safe wrappers convert a panicking backend operation into a
// per-item failure so a run always completes its phases.

func safeSave(ctx context.Context, save SaveFunc, draft model.Draft) (event *model.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			event, err = nil, fmt.Errorf("save panicked: %v", r)
		}
	}()
	return save(ctx, draft)
}

func safeUpdate(ctx context.Context, update UpdateFunc, e model.Event) (event *model.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			event, err = nil, fmt.Errorf("update panicked: %v", r)
		}
	}()
	return update(ctx, e)
}

func safeDelete(ctx context.Context, del DeleteFunc, id string) (removed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			removed, err = false, fmt.Errorf("delete panicked: %v", r)
		}
	}()
	return del(ctx, id)
}
