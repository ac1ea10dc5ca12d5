package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	e, err := Open(context.Background(), kv)
	if err != nil {
		t.Fatalf("open engine: %v", err)
	}
	e.now = func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) }
	return e, kv
}

func addHabit(t *testing.T, e *Engine, name string) model.Habit {
	t.Helper()
	h, err := e.AddHabit(context.Background(), name)
	if err != nil {
		t.Fatalf("add habit %q: %v", name, err)
	}
	return h
}

func TestOpenDefaultsEmpty(t *testing.T) {
	e, _ := newTestEngine(t)
	if len(e.Habits()) != 0 {
		t.Fatalf("expected no habits, got %v", e.Habits())
	}
	if pct := e.DayPercent("2026-02-09"); pct != 0 {
		t.Fatalf("empty ledger day percent = %d, want 0", pct)
	}
}

func TestOpenReloadsPersistedState(t *testing.T) {
	e, kv := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Read")
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusDone, nil); err != nil {
		t.Fatalf("set status: %v", err)
	}

	reloaded, err := Open(ctx, kv)
	if err != nil {
		t.Fatalf("reopen engine: %v", err)
	}
	habits := reloaded.Habits()
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("unexpected habits after reload: %v", habits)
	}
	entry, ok := reloaded.Entry("2026-02-09", h.ID)
	if !ok || entry.Status != model.StatusDone {
		t.Fatalf("entry not reloaded: %v %v", entry, ok)
	}
}

func TestAddHabitPreservesInsertionOrder(t *testing.T) {
	e, _ := newTestEngine(t)
	names := []string{"Run", "Read", "Sleep early"}
	for _, n := range names {
		addHabit(t, e, n)
	}
	habits := e.Habits()
	if len(habits) != len(names) {
		t.Fatalf("expected %d habits, got %d", len(names), len(habits))
	}
	for i, n := range names {
		if habits[i].Name != n {
			t.Fatalf("habit %d = %q, want %q", i, habits[i].Name, n)
		}
	}
}

func TestRenameHabit(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")

	if err := e.RenameHabit(ctx, h.ID, "  Morning run "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, ok := e.Habit(h.ID)
	if !ok || got.Name != "Morning run" {
		t.Fatalf("unexpected habit after rename: %v", got)
	}

	if err := e.RenameHabit(ctx, h.ID, "  "); !errors.Is(err, model.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got: %v", err)
	}
	if err := e.RenameHabit(ctx, "nope", "X"); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got: %v", err)
	}
}

func TestSetStatusValidation(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")

	if err := e.SetStatus(ctx, "2026-2-9", h.ID, model.StatusDone, nil); !errors.Is(err, model.ErrInvalidDateKey) {
		t.Fatalf("expected ErrInvalidDateKey, got: %v", err)
	}
	if err := e.SetStatus(ctx, "2026-02-09", "stale-id", model.StatusDone, nil); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got: %v", err)
	}
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.Status("skipped"), nil); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestSetStatusRoundTripCompletedAt(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")

	times := []time.Time{
		time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC),
	}
	step := 0
	e.now = func() time.Time { t := times[step]; return t }

	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusDone, nil); err != nil {
		t.Fatalf("first done: %v", err)
	}
	step = 1
	reason := "overslept"
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusFailed, &reason); err != nil {
		t.Fatalf("failed write: %v", err)
	}
	step = 2
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusDone, nil); err != nil {
		t.Fatalf("second done: %v", err)
	}

	entry, ok := e.Entry("2026-02-09", h.ID)
	if !ok {
		t.Fatal("entry missing")
	}
	if entry.Status != model.StatusDone || entry.Reason != "" {
		t.Fatalf("unexpected final entry: %+v", entry)
	}
	if entry.CompletedAt == nil || *entry.CompletedAt != times[2].UnixMilli() {
		t.Fatalf("completedAt must be the last done write, got %v", entry.CompletedAt)
	}
}

func TestClearStatusRemovesEntry(t *testing.T) {
	e, kv := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")

	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusDone, nil); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if pct := e.DayPercent("2026-02-09"); pct != 100 {
		t.Fatalf("day percent = %d, want 100", pct)
	}

	if err := e.ClearStatus(ctx, "2026-02-09", h.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := e.Entry("2026-02-09", h.ID); ok {
		t.Fatal("entry must be deleted, not nulled")
	}
	if pct := e.DayPercent("2026-02-09"); pct != 0 {
		t.Fatalf("day percent after clear = %d, want 0", pct)
	}

	// clearing an absent entry is a no-op and must not hit the store
	calls := kv.StoreCalls()
	if err := e.ClearStatus(ctx, "2026-02-09", h.ID); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if kv.StoreCalls() != calls {
		t.Fatalf("no-op clear still stored: %d -> %d calls", calls, kv.StoreCalls())
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	keep := addHabit(t, e, "Keep")
	drop := addHabit(t, e, "Drop")

	days := []string{"2026-02-07", "2026-02-08", "2026-02-09"}
	for _, d := range days {
		if err := e.SetStatus(ctx, d, keep.ID, model.StatusDone, nil); err != nil {
			t.Fatalf("set keep on %s: %v", d, err)
		}
		if err := e.SetStatus(ctx, d, drop.ID, model.StatusDone, nil); err != nil {
			t.Fatalf("set drop on %s: %v", d, err)
		}
	}

	if err := e.DeleteHabit(ctx, drop.ID); err != nil {
		t.Fatalf("delete habit: %v", err)
	}
	if _, ok := e.Habit(drop.ID); ok {
		t.Fatal("habit still in set after delete")
	}
	doc := e.Export()
	for key, day := range doc.Records {
		if _, ok := day[drop.ID]; ok {
			t.Fatalf("day %s still references deleted habit", key)
		}
		if _, ok := day[keep.ID]; !ok {
			t.Fatalf("day %s lost surviving habit's entry", key)
		}
	}

	if err := e.DeleteHabit(ctx, drop.ID); !errors.Is(err, ErrHabitNotFound) {
		t.Fatalf("expected ErrHabitNotFound, got: %v", err)
	}
}

func TestFailedStoreLeavesStateUnchanged(t *testing.T) {
	e, kv := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")

	boom := errors.New("store unavailable")

	kv.StoreErr = boom
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusDone, nil); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got: %v", err)
	}
	if _, ok := e.Entry("2026-02-09", h.ID); ok {
		t.Fatal("failed store must not mutate in-memory records")
	}

	kv.StoreErr = boom
	if err := e.DeleteHabit(ctx, h.ID); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got: %v", err)
	}
	if _, ok := e.Habit(h.ID); !ok {
		t.Fatal("failed delete must keep the habit in memory")
	}

	kv.StoreErr = boom
	if _, err := e.AddHabit(ctx, "Another"); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got: %v", err)
	}
	if len(e.Habits()) != 1 {
		t.Fatalf("failed add must keep habit set, got %v", e.Habits())
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()
	h := addHabit(t, e, "Run")
	reason := "rain"
	if err := e.SetStatus(ctx, "2026-02-09", h.ID, model.StatusFailed, &reason); err != nil {
		t.Fatalf("set status: %v", err)
	}

	doc := e.Export()

	fresh, err := Open(ctx, storage.NewMemoryKV())
	if err != nil {
		t.Fatalf("open fresh: %v", err)
	}
	if err := fresh.Import(ctx, doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	entry, ok := fresh.Entry("2026-02-09", h.ID)
	if !ok || entry.Status != model.StatusFailed || entry.Reason != "rain" {
		t.Fatalf("unexpected imported entry: %+v ok=%v", entry, ok)
	}
}

func TestImportRejectsCorruptDocuments(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	badKey := Document{Records: Records{"2026-2-9": {}}}
	if err := e.Import(ctx, badKey); !errors.Is(err, model.ErrInvalidDateKey) {
		t.Fatalf("expected ErrInvalidDateKey, got: %v", err)
	}

	badStatus := Document{Records: Records{"2026-02-09": {"h1": model.Entry{Status: "maybe"}}}}
	if err := e.Import(ctx, badStatus); !errors.Is(err, model.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}
