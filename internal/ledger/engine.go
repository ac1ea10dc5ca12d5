package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
)

// Persisted keys. The value schemas are shared with data exported by older
// installs, so habit and entry field names must not drift.
const (
	keyHabits  = "habits"
	keyRecords = "records"
)

// DayRecord maps habit id to that habit's completion entry for one day.
// A missing id means the habit is unset for the day.
type DayRecord map[string]model.Entry

// Records is the full ledger: date key to day record, created lazily on
// first write to a day.
type Records map[model.DateKey]DayRecord

// Document is the export/import schema: the two persisted keys combined.
type Document struct {
	Habits  []model.Habit `json:"habits"`
	Records Records       `json:"records"`
}

// Engine owns the habit set and the ledger for one session. It is the single
// source of truth between loads: every mutation builds the next state, writes
// it through the KV collaborator, and only then replaces the in-memory state,
// so a failed store never leaves the engine partially mutated. A mutex
// serializes mutations; the TUI loop and the nudge goroutine share one engine.
type Engine struct {
	mu      sync.Mutex
	kv      storage.KV
	habits  []model.Habit
	records Records
	now     func() time.Time
}

// Open loads both persisted keys, applying defaults for a fresh store
// (no habits, empty ledger).
func Open(ctx context.Context, kv storage.KV) (*Engine, error) {
	loaded, err := kv.Load(ctx, []string{keyHabits, keyRecords})
	if err != nil {
		return nil, fmt.Errorf("ledger: load: %w", err)
	}

	e := &Engine{
		kv:      kv,
		habits:  []model.Habit{},
		records: Records{},
		now:     time.Now,
	}
	if raw, ok := loaded[keyHabits]; ok {
		if err := json.Unmarshal(raw, &e.habits); err != nil {
			return nil, fmt.Errorf("ledger: decode habits: %w", err)
		}
	}
	if raw, ok := loaded[keyRecords]; ok {
		if err := json.Unmarshal(raw, &e.records); err != nil {
			return nil, fmt.Errorf("ledger: decode records: %w", err)
		}
	}
	return e, nil
}

// Habits returns the habit set in display (insertion) order.
func (e *Engine) Habits() []model.Habit {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Habit, len(e.habits))
	copy(out, e.habits)
	return out
}

// Habit looks up one habit by id.
func (e *Engine) Habit(id string) (model.Habit, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range e.habits {
		if h.ID == id {
			return h, true
		}
	}
	return model.Habit{}, false
}

// Record returns a copy of the day record for key, empty when the day has
// never been written.
func (e *Engine) Record(key model.DateKey) DayRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyDay(e.records[key])
}

// Entry returns one habit's entry for a day, reporting whether it is set.
func (e *Engine) Entry(key model.DateKey, habitID string) (model.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.records[key][habitID]
	return entry, ok
}

// AddHabit appends a new habit. The generated id is returned for callers
// that immediately mark the new habit.
func (e *Engine) AddHabit(ctx context.Context, name string) (model.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	habit, err := model.NewHabit(name, e.now())
	if err != nil {
		return model.Habit{}, err
	}

	next := make([]model.Habit, len(e.habits), len(e.habits)+1)
	copy(next, e.habits)
	next = append(next, habit)

	if err := e.persist(ctx, next, nil); err != nil {
		return model.Habit{}, err
	}
	e.habits = next
	return habit, nil
}

// RenameHabit replaces a habit's display name.
func (e *Engine) RenameHabit(ctx context.Context, id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	trimmed, err := model.NewHabit(name, e.now())
	if err != nil {
		return err
	}

	next := make([]model.Habit, len(e.habits))
	copy(next, e.habits)
	found := false
	for i := range next {
		if next[i].ID == id {
			next[i].Name = trimmed.Name
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	if err := e.persist(ctx, next, nil); err != nil {
		return err
	}
	e.habits = next
	return nil
}

// DeleteHabit removes the habit and purges its entries from every day record.
// Both keys go through one atomic store call, so no observer can see the
// habit gone from the set while entries remain.
func (e *Engine) DeleteHabit(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	nextHabits := make([]model.Habit, 0, len(e.habits))
	found := false
	for _, h := range e.habits {
		if h.ID == id {
			found = true
			continue
		}
		nextHabits = append(nextHabits, h)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}

	nextRecords := make(Records, len(e.records))
	for key, day := range e.records {
		if _, ok := day[id]; !ok {
			nextRecords[key] = day
			continue
		}
		purged := copyDay(day)
		delete(purged, id)
		nextRecords[key] = purged
	}

	if err := e.persist(ctx, nextHabits, nextRecords); err != nil {
		return err
	}
	e.habits = nextHabits
	e.records = nextRecords
	return nil
}

// SetStatus records a done/failed outcome for one habit on one day. reason
// is optional: nil keeps the prior reason on a failed write, a non-nil value
// (including empty) replaces it. Merge rules live in model.MergeEntry.
func (e *Engine) SetStatus(ctx context.Context, rawKey string, habitID string, status model.Status, reason *string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, err := model.ParseDateKey(rawKey)
	if err != nil {
		return err
	}
	if !status.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}
	if !e.habitExists(habitID) {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	day := copyDay(e.records[key])
	var prev *model.Entry
	if existing, ok := day[habitID]; ok {
		prev = &existing
	}
	day[habitID] = model.MergeEntry(prev, status, reason, e.now())

	nextRecords := e.copyRecordsWith(key, day)
	if err := e.persist(ctx, nil, nextRecords); err != nil {
		return err
	}
	e.records = nextRecords
	return nil
}

// ClearStatus removes a habit's entry from the day, returning it to unset.
// No-op (and no store call) when the entry is absent.
func (e *Engine) ClearStatus(ctx context.Context, rawKey string, habitID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, err := model.ParseDateKey(rawKey)
	if err != nil {
		return err
	}
	day, ok := e.records[key]
	if !ok {
		return nil
	}
	if _, ok := day[habitID]; !ok {
		return nil
	}

	cleared := copyDay(day)
	delete(cleared, habitID)

	nextRecords := e.copyRecordsWith(key, cleared)
	if err := e.persist(ctx, nil, nextRecords); err != nil {
		return err
	}
	e.records = nextRecords
	return nil
}

// Export snapshots the full state as the interoperable document.
func (e *Engine) Export() Document {
	e.mu.Lock()
	defer e.mu.Unlock()

	habits := make([]model.Habit, len(e.habits))
	copy(habits, e.habits)
	records := make(Records, len(e.records))
	for key, day := range e.records {
		records[key] = copyDay(day)
	}
	return Document{Habits: habits, Records: records}
}

// Import replaces the full state with the supplied document and persists
// both keys atomically. Keys and statuses are validated so a corrupt file
// cannot poison the store.
func (e *Engine) Import(ctx context.Context, doc Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	habits := make([]model.Habit, len(doc.Habits))
	copy(habits, doc.Habits)
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			return err
		}
	}

	records := make(Records, len(doc.Records))
	for key, day := range doc.Records {
		if _, err := model.ParseDateKey(string(key)); err != nil {
			return err
		}
		copied := make(DayRecord, len(day))
		for habitID, entry := range day {
			if !entry.Status.IsValid() {
				return fmt.Errorf("%w: %q (day %s, habit %s)", model.ErrInvalidStatus, entry.Status, key, habitID)
			}
			copied[habitID] = entry
		}
		records[key] = copied
	}

	if err := e.persist(ctx, habits, records); err != nil {
		return err
	}
	e.habits = habits
	e.records = records
	return nil
}

// persist writes the supplied portions of state through the KV collaborator.
// A nil habits or records means that key is unchanged and is not written.
// Callers hold the mutex and only swap in-memory state after a nil return.
func (e *Engine) persist(ctx context.Context, habits []model.Habit, records Records) error {
	values := make(map[string]json.RawMessage, 2)
	if habits != nil {
		raw, err := json.Marshal(habits)
		if err != nil {
			return fmt.Errorf("ledger: encode habits: %w", err)
		}
		values[keyHabits] = raw
	}
	if records != nil {
		raw, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("ledger: encode records: %w", err)
		}
		values[keyRecords] = raw
	}
	if len(values) == 0 {
		return nil
	}
	if err := e.kv.Store(ctx, values); err != nil {
		return fmt.Errorf("ledger: store: %w", err)
	}
	return nil
}

func (e *Engine) habitExists(id string) bool {
	for _, h := range e.habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

// copyRecordsWith shallow-copies the ledger, swapping in the given day.
// Untouched day records are shared; they are never mutated in place.
func (e *Engine) copyRecordsWith(key model.DateKey, day DayRecord) Records {
	next := make(Records, len(e.records)+1)
	for k, v := range e.records {
		next[k] = v
	}
	next[key] = day
	return next
}

func copyDay(day DayRecord) DayRecord {
	out := make(DayRecord, len(day))
	for id, entry := range day {
		out[id] = entry
	}
	return out
}
