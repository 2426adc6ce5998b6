package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	applog "github.com/Tiliavir/eventcal/internal/log"
	"github.com/Tiliavir/eventcal/internal/model"
	"github.com/Tiliavir/eventcal/internal/timeutil"
)

// upcomingWindowDays is the length of the half-open window returned by
// Upcoming: [now, now+7d).
const upcomingWindowDays = 7

// PersistenceError wraps a refused storage write. Read paths never return
// it; Add and other write paths propagate it to the caller.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting events to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store is the sole gateway to the durable event collection: a single
// JSON array file. Every mutation is a full read-modify-persist cycle.
type Store struct {
	path string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the store's notion of "now" (used by Upcoming).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store persisting to the given file path.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store persists to.
func (s *Store) Path() string { return s.path }

// All returns every stored event. It never fails: a missing file is an
// empty collection, and a corrupt file is backed up and treated as empty.
func (s *Store) All() []model.Event {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []model.Event{}
	}
	if err != nil {
		applog.Warn("event collection unreadable, treating as empty", "path", s.path, "err", err)
		return []model.Event{}
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		// Back up the corrupt file so the data is not silently lost,
		// then fail open to an empty collection.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		applog.Warn("corrupt event collection backed up, treating as empty",
			"path", s.path, "backup", backupPath, "err", err)
		return []model.Event{}
	}
	if events == nil {
		events = []model.Event{}
	}
	return events
}

// Add assigns a fresh id to the draft, appends it and persists the whole
// collection. Persistence failures propagate as *PersistenceError.
func (s *Store) Add(draft model.Draft) (model.Event, error) {
	event := model.Event{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Category:    draft.Category,
		Date:        draft.Date,
		Description: draft.Description,
	}

	events := append(s.All(), event)
	if err := s.persist(events); err != nil {
		return model.Event{}, err
	}
	return event, nil
}

// Update replaces the stored record with the same id. It reports whether
// a record was found; a missing id is not an error.
func (s *Store) Update(event model.Event) (model.Event, bool, error) {
	events := s.All()
	for i := range events {
		if events[i].ID == event.ID {
			events[i] = event
			if err := s.persist(events); err != nil {
				return model.Event{}, false, err
			}
			return event, true, nil
		}
	}
	return model.Event{}, false, nil
}

// Delete permanently removes the event with the given id, reporting
// whether a record was actually removed.
func (s *Store) Delete(id string) (bool, error) {
	events := s.All()
	for i := range events {
		if events[i].ID == id {
			events = append(events[:i], events[i+1:]...)
			if err := s.persist(events); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// ForDate returns events falling on the same calendar day as t.
func (s *Store) ForDate(t time.Time) []model.Event {
	var matched []model.Event
	for _, e := range s.All() {
		if timeutil.SameDay(e.Date, t) {
			matched = append(matched, e)
		}
	}
	return matched
}

// Upcoming returns events in the half-open window [now, now+7d).
func (s *Store) Upcoming() []model.Event {
	now := s.now()
	limit := now.AddDate(0, 0, upcomingWindowDays)

	var matched []model.Event
	for _, e := range s.All() {
		if !e.Date.Before(now) && e.Date.Before(limit) {
			matched = append(matched, e)
		}
	}
	return matched
}

// persist atomically writes the whole collection: temp file then rename.
func (s *Store) persist(events []model.Event) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return &PersistenceError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &PersistenceError{Path: s.path, Err: err}
	}
	return nil
}
