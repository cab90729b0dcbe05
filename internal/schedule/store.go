package schedule

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/zenplan-go/internal/storage"
)

// StoreKey is the fixed key the whole collection is persisted under.
const StoreKey = "zenplan_schedules"

// Store owns the authoritative schedule collection. Every successful
// mutation persists the full collection to the injected KV. Mutations
// are copy-on-write: schedules not targeted by an operation keep their
// identity across snapshots.
//
// The store is single-writer by construction; it does no locking.
type Store struct {
	kv        storage.KV
	key       string
	logger    *log.Logger
	schedules []Schedule
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey overrides the persistence key.
func WithKey(key string) StoreOption {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// NewStore creates a store bound to kv and restores the persisted
// collection. An absent, empty, or unparseable snapshot yields an
// empty collection; initialization never fails on bad data.
func NewStore(kv storage.KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:  kv,
		key: StoreKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.schedules = s.restore()
	return s
}

func (s *Store) restore() []Schedule {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.warn("restore snapshot", "err", err)
		return []Schedule{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Schedule{}
	}
	var schedules []Schedule
	if err := json.Unmarshal([]byte(raw), &schedules); err != nil {
		s.warn("discarding unreadable snapshot", "err", err)
		return []Schedule{}
	}
	if schedules == nil {
		return []Schedule{}
	}
	return schedules
}

// Snapshot returns a defensive copy of the collection in base order
// (most recently created first).
func (s *Store) Snapshot() []Schedule {
	out := make([]Schedule, len(s.schedules))
	copy(out, s.schedules)
	return out
}

// Len returns the number of schedules.
func (s *Store) Len() int {
	return len(s.schedules)
}

// Get returns the schedule with the given id, or a zero Schedule.
func (s *Store) Get(id string) Schedule {
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			return s.schedules[i]
		}
	}
	return Schedule{}
}

// Create adds a new schedule at the head of the collection and returns
// it. A blank title is silently rejected and the zero Schedule is
// returned.
func (s *Store) Create(title, description, notes string, priority Priority, date string) Schedule {
	if strings.TrimSpace(title) == "" {
		return Schedule{}
	}
	sched := Schedule{
		ID:          newID(),
		Title:       title,
		Description: description,
		Notes:       notes,
		Date:        date,
		Priority:    priority,
		Checklist:   []ChecklistItem{},
		Color:       randomColor(),
		CreatedAt:   nowMillis(),
	}
	next := make([]Schedule, 0, len(s.schedules)+1)
	next = append(next, sched)
	next = append(next, s.schedules...)
	s.commit(next)
	return sched
}

// Delete removes the schedule with the given id. Absent ids are a
// no-op.
func (s *Store) Delete(id string) {
	next := make([]Schedule, 0, len(s.schedules))
	found := false
	for _, sched := range s.schedules {
		if sched.ID == id {
			found = true
			continue
		}
		next = append(next, sched)
	}
	if !found {
		return
	}
	s.commit(next)
}

// UpdateNotes replaces the notes of the schedule with the given id.
// Absent ids are a no-op.
func (s *Store) UpdateNotes(id, notes string) {
	s.replace(id, func(sched Schedule) Schedule {
		sched.Notes = notes
		return sched
	})
}

// ToggleItem flips the completion flag of one checklist item. Absent
// schedule or item ids are a no-op.
func (s *Store) ToggleItem(scheduleID, itemID string) {
	s.replace(scheduleID, func(sched Schedule) Schedule {
		items := make([]ChecklistItem, len(sched.Checklist))
		copy(items, sched.Checklist)
		for i := range items {
			if items[i].ID == itemID {
				items[i].IsCompleted = !items[i].IsCompleted
			}
		}
		sched.Checklist = items
		return sched
	})
}

// AddItem appends a checklist item with the given text. Blank text is
// silently rejected.
func (s *Store) AddItem(scheduleID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.replace(scheduleID, func(sched Schedule) Schedule {
		items := make([]ChecklistItem, 0, len(sched.Checklist)+1)
		items = append(items, sched.Checklist...)
		items = append(items, ChecklistItem{
			ID:   newID(),
			Text: text,
		})
		sched.Checklist = items
		return sched
	})
}

// RemoveItem removes one checklist item. Absent ids are a no-op.
func (s *Store) RemoveItem(scheduleID, itemID string) {
	s.replace(scheduleID, func(sched Schedule) Schedule {
		items := make([]ChecklistItem, 0, len(sched.Checklist))
		for _, item := range sched.Checklist {
			if item.ID == itemID {
				continue
			}
			items = append(items, item)
		}
		sched.Checklist = items
		return sched
	})
}

// replace applies update to the schedule with the given id, leaving
// every other element untouched. Absent ids are a no-op.
func (s *Store) replace(id string, update func(Schedule) Schedule) {
	idx := -1
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := make([]Schedule, len(s.schedules))
	copy(next, s.schedules)
	next[idx] = update(next[idx])
	s.commit(next)
}

// commit swaps in the next snapshot and mirrors it to the KV. A failed
// write keeps the in-memory state and logs a warning; persistence is
// best-effort by contract.
func (s *Store) commit(next []Schedule) {
	s.schedules = next
	data, err := json.MarshalIndent(s.schedules, "", "  ")
	if err != nil {
		s.warn("marshal snapshot", "err", err)
		return
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		s.warn("persist snapshot", "err", err)
	}
}

func (s *Store) warn(msg string, keyvals ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Warn(msg, keyvals...)
}
