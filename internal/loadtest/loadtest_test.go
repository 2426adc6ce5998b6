package loadtest_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/eventcal/internal/loadtest"
	"github.com/Tiliavir/eventcal/internal/model"
)

// memoryBackend is an in-memory create/update/delete trio with
// injectable per-operation failures.
type memoryBackend struct {
	mu      sync.Mutex
	events  map[string]model.Event
	seq     int
	saved   []string // ids in save order
	updated []string
	deleted []string

	failSave   func(n int) bool // n is the 1-based call number
	failUpdate func(n int) bool
	saveCalls  int
	updCalls   int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{events: map[string]model.Event{}}
}

func (m *memoryBackend) backend() loadtest.Backend {
	return loadtest.Backend{
		Save: func(_ context.Context, draft model.Draft) (*model.Event, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.saveCalls++
			if m.failSave != nil && m.failSave(m.saveCalls) {
				return nil, errors.New("save refused")
			}
			m.seq++
			e := model.Event{
				ID:          fmt.Sprintf("ev-%d", m.seq),
				Title:       draft.Title,
				Category:    draft.Category,
				Date:        draft.Date,
				Description: draft.Description,
			}
			m.events[e.ID] = e
			m.saved = append(m.saved, e.ID)
			return &e, nil
		},
		Update: func(_ context.Context, event model.Event) (*model.Event, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.updCalls++
			if m.failUpdate != nil && m.failUpdate(m.updCalls) {
				return nil, errors.New("update refused")
			}
			if _, ok := m.events[event.ID]; !ok {
				return nil, nil
			}
			m.events[event.ID] = event
			m.updated = append(m.updated, event.ID)
			return &event, nil
		},
		Delete: func(_ context.Context, id string) (bool, error) {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.events[id]; !ok {
				return false, nil
			}
			delete(m.events, id)
			m.deleted = append(m.deleted, id)
			return true, nil
		},
	}
}

func TestRunAllSucceed(t *testing.T) {
	m := newMemoryBackend()
	gen := loadtest.NewGeneratorAt(1, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	report, err := loadtest.Run(context.Background(), m.backend(), 20, gen)
	require.NoError(t, err)

	assert.Equal(t, 20, report.Created)
	assert.Equal(t, 10, report.Updated)
	assert.Equal(t, 5, report.Deleted)
	assert.Equal(t, loadtest.Errors{}, report.Errors)
	assert.Equal(t, 10, report.UpdateBatchSize)
	assert.Equal(t, 5, report.DeleteBatchSize)
	assert.InDelta(t, 100.0, report.CreatedPct(), 0.001)
	assert.InDelta(t, 100.0, report.UpdatedPct(), 0.001)
	assert.InDelta(t, 100.0, report.DeletedPct(), 0.001)
}

func TestRunConservationLaw(t *testing.T) {
	// Every third save fails; the run still attempts all n and the
	// created/error split always sums to n.
	m := newMemoryBackend()
	m.failSave = func(n int) bool { return n%3 == 0 }
	gen := loadtest.NewGeneratorAt(2, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	n := 25
	report, err := loadtest.Run(context.Background(), m.backend(), n, gen)
	require.NoError(t, err)

	assert.Equal(t, n, report.Created+report.Errors.Creation)
	assert.Equal(t, report.Created/2, report.UpdateBatchSize)
	assert.Equal(t, report.Created*3/4-report.Created/2, report.DeleteBatchSize)
}

func TestRunBatchesDisjoint(t *testing.T) {
	m := newMemoryBackend()
	gen := loadtest.NewGeneratorAt(3, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	_, err := loadtest.Run(context.Background(), m.backend(), 17, gen)
	require.NoError(t, err)

	updated := map[string]bool{}
	for _, id := range m.updated {
		updated[id] = true
	}
	for _, id := range m.deleted {
		assert.False(t, updated[id], "id %s was both updated and deleted", id)
	}

	// Both batches come from the created set.
	created := map[string]bool{}
	for _, id := range m.saved {
		created[id] = true
	}
	for _, id := range append(m.updated, m.deleted...) {
		assert.True(t, created[id], "id %s was never created", id)
	}
}

func TestRunUpdateMarker(t *testing.T) {
	m := newMemoryBackend()
	gen := loadtest.NewGeneratorAt(4, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	_, err := loadtest.Run(context.Background(), m.backend(), 8, gen)
	require.NoError(t, err)

	require.NotEmpty(t, m.updated)
	for _, id := range m.updated {
		e := m.events[id]
		assert.Contains(t, e.Title, "UPDATED:")
		assert.Contains(t, e.Description, "UPDATED:")
	}
}

func TestRunNilResultCountsAsFailure(t *testing.T) {
	m := newMemoryBackend()
	b := m.backend()
	// An update returning (nil, nil) is a falsy result, not a success.
	b.Update = func(context.Context, model.Event) (*model.Event, error) {
		return nil, nil
	}
	gen := loadtest.NewGeneratorAt(5, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	report, err := loadtest.Run(context.Background(), b, 10, gen)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Updated)
	assert.Equal(t, 5, report.Errors.Update)
}

func TestRunPanicCountsAsFailure(t *testing.T) {
	m := newMemoryBackend()
	b := m.backend()
	calls := 0
	inner := b.Save
	b.Save = func(ctx context.Context, draft model.Draft) (*model.Event, error) {
		calls++
		if calls == 2 {
			panic("backend blew up")
		}
		return inner(ctx, draft)
	}
	gen := loadtest.NewGeneratorAt(6, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))

	report, err := loadtest.Run(context.Background(), b, 5, gen)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Created)
	assert.Equal(t, 1, report.Errors.Creation)
}

func TestRunCancelledContext(t *testing.T) {
	m := newMemoryBackend()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := loadtest.Run(ctx, m.backend(), 10, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, report.Created)
}

func TestRunRequiresBackend(t *testing.T) {
	_, err := loadtest.Run(context.Background(), loadtest.Backend{}, 1, nil)
	assert.Error(t, err)
}

func TestGeneratorDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	a := loadtest.NewGeneratorAt(42, now)
	b := loadtest.NewGeneratorAt(42, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Draft(i), b.Draft(i))
	}
}

func TestGeneratorBounds(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	gen := loadtest.NewGeneratorAt(7, now)
	limit := now.AddDate(0, 0, 30)

	for i := 0; i < 200; i++ {
		draft := gen.Draft(i)
		assert.False(t, draft.Date.Before(now), "date %v before window", draft.Date)
		assert.True(t, draft.Date.Before(limit.AddDate(0, 0, 1)), "date %v past window", draft.Date)
		assert.Zero(t, draft.Date.Minute()%15, "minute %d not quantized", draft.Date.Minute())
		assert.True(t, draft.Category.Valid(), "category %q invalid", draft.Category)
		assert.NotEmpty(t, draft.Title)
	}
}
