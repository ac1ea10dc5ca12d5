package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
	"github.com/sandeepkv93/habitd/internal/storage"
)

func newTestModel(t *testing.T, habits ...string) Model {
	t.Helper()
	eng, err := ledger.Open(context.Background(), storage.NewMemoryKV())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	for _, name := range habits {
		if _, err := eng.AddHabit(context.Background(), name); err != nil {
			t.Fatalf("add habit %q: %v", name, err)
		}
	}
	m := NewModelWithConfig(eng, config.DefaultConfig())
	m.now = func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.Local) }
	m.Day = "2026-02-09"
	return m
}

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewToday {
		t.Fatalf("expected default view %q, got %q", ViewToday, m.CurrentView)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if !m.Day.Valid() {
		t.Fatalf("expected valid focused day, got %q", m.Day)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("2"))
	next := updated.(Model)
	if next.CurrentView != ViewHabits {
		t.Fatalf("expected habits view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(keyMsg("4"))
	next = updated.(Model)
	if next.CurrentView != ViewReports {
		t.Fatalf("expected reports view, got %q", next.CurrentView)
	}
}

func TestUpdateSwitchViewMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SwitchViewMsg{View: ViewTimeline})
	next := updated.(Model)
	if next.CurrentView != ViewTimeline {
		t.Fatalf("expected timeline view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(SwitchViewMsg{View: View("Unknown")})
	next = updated.(Model)
	if next.CurrentView != ViewTimeline {
		t.Fatalf("expected view unchanged for unknown view, got %q", next.CurrentView)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready"})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(keyMsg("q"))
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestTodayMarkDoneAndClear(t *testing.T) {
	m := newTestModel(t, "run", "read")

	updated, _ := m.Update(keyMsg("d"))
	next := updated.(Model)
	entry, ok := next.Engine.Entry("2026-02-09", next.Engine.Habits()[0].ID)
	if !ok || entry.Status != model.StatusDone {
		t.Fatalf("expected done entry, got %+v ok=%v", entry, ok)
	}
	if next.Engine.DayPercent("2026-02-09") != 0 {
		t.Fatal("one of two done must not be a perfect day")
	}

	updated, _ = next.Update(keyMsg("c"))
	next = updated.(Model)
	if _, ok := next.Engine.Entry("2026-02-09", next.Engine.Habits()[0].ID); ok {
		t.Fatal("expected entry cleared")
	}
}

func TestTodayFailWithReasonFlow(t *testing.T) {
	m := newTestModel(t, "run")

	updated, _ := m.Update(keyMsg("f"))
	next := updated.(Model)
	if next.inputMode != InputReason {
		t.Fatalf("expected reason input mode, got %q", next.inputMode)
	}

	updated, _ = next.Update(keyMsg("overslept"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	entry, ok := next.Engine.Entry("2026-02-09", next.Engine.Habits()[0].ID)
	if !ok || entry.Status != model.StatusFailed || entry.Reason != "overslept" {
		t.Fatalf("unexpected entry: %+v ok=%v", entry, ok)
	}
	if next.inputMode != InputNone {
		t.Fatalf("expected input mode reset, got %q", next.inputMode)
	}
}

func TestTodayDayNavigation(t *testing.T) {
	m := newTestModel(t, "run")

	updated, _ := m.Update(keyMsg("h"))
	next := updated.(Model)
	if next.Day != "2026-02-08" {
		t.Fatalf("expected previous day, got %s", next.Day)
	}

	updated, _ = next.Update(keyMsg("l"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("l"))
	next = updated.(Model)
	if next.Day != "2026-02-10" {
		t.Fatalf("expected next day, got %s", next.Day)
	}

	updated, _ = next.Update(keyMsg("t"))
	next = updated.(Model)
	if next.Day != "2026-02-09" {
		t.Fatalf("expected jump to today, got %s", next.Day)
	}
}

func TestAddHabitFlow(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg("a"))
	next := updated.(Model)
	if next.inputMode != InputAdd {
		t.Fatalf("expected add input mode, got %q", next.inputMode)
	}

	updated, _ = next.Update(keyMsg("drink water"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	habits := next.Engine.Habits()
	if len(habits) != 1 || habits[0].Name != "drink water" {
		t.Fatalf("unexpected habits: %+v", habits)
	}
}

func TestRenameAndDeleteFromHabitsView(t *testing.T) {
	m := newTestModel(t, "run", "read")
	m.CurrentView = ViewHabits

	updated, _ := m.Update(keyMsg("r"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("esc"))
	next = updated.(Model)
	if next.inputMode != InputNone {
		t.Fatal("expected esc to cancel rename")
	}

	updated, _ = next.Update(keyMsg("j"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("x"))
	next = updated.(Model)
	habits := next.Engine.Habits()
	if len(habits) != 1 || habits[0].Name != "run" {
		t.Fatalf("expected only run to remain, got %+v", habits)
	}
	if next.Cursor != 0 {
		t.Fatalf("expected cursor clamped, got %d", next.Cursor)
	}
}

func TestTimelineEnterFocusesDay(t *testing.T) {
	m := newTestModel(t, "run")
	m.CurrentView = ViewTimeline
	m.Timeline.Cursor = 2

	updated, cmd := m.Update(keyMsg("enter"))
	next := updated.(Model)
	if cmd == nil {
		t.Fatal("expected goto command")
	}
	msg := cmd()
	gotoMsg, ok := msg.(GotoDayMsg)
	if !ok {
		t.Fatalf("expected GotoDayMsg, got %T", msg)
	}
	if gotoMsg.Day != "2026-02-07" {
		t.Fatalf("expected 2026-02-07, got %s", gotoMsg.Day)
	}

	updated, _ = next.Update(gotoMsg)
	next = updated.(Model)
	if next.Day != "2026-02-07" || next.CurrentView != ViewToday {
		t.Fatalf("expected focused day in today view, got %s in %s", next.Day, next.CurrentView)
	}
}

func TestReportsMonthNavigation(t *testing.T) {
	m := newTestModel(t)
	m.CurrentView = ViewReports
	m.Reports.Year = 2026
	m.Reports.Month = time.January

	updated, _ := m.Update(keyMsg("h"))
	next := updated.(Model)
	if next.Reports.Year != 2025 || next.Reports.Month != time.December {
		t.Fatalf("expected Dec 2025, got %s %d", next.Reports.Month, next.Reports.Year)
	}

	updated, _ = next.Update(keyMsg("l"))
	next = updated.(Model)
	if next.Reports.Year != 2026 || next.Reports.Month != time.January {
		t.Fatalf("expected Jan 2026, got %s %d", next.Reports.Month, next.Reports.Year)
	}

	updated, _ = next.Update(keyMsg("y"))
	next = updated.(Model)
	if !next.Reports.Yearly {
		t.Fatal("expected yearly mode toggled on")
	}
}

func TestPaletteCommandsDriveEngine(t *testing.T) {
	m := newTestModel(t, "run")

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	if !next.Palette.Active {
		t.Fatal("expected palette active")
	}

	updated, _ = next.Update(keyMsg("mark run failed too tired"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)
	if next.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if next.Status.IsError {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	entry, ok := next.Engine.Entry("2026-02-09", next.Engine.Habits()[0].ID)
	if !ok || entry.Status != model.StatusFailed || entry.Reason != "too tired" {
		t.Fatalf("unexpected entry after palette mark: %+v ok=%v", entry, ok)
	}
}

func TestPaletteGotoCommand(t *testing.T) {
	m := newTestModel(t, "run")
	m.CurrentView = ViewReports

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("goto 2026-01-15"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	if next.Day != "2026-01-15" || next.CurrentView != ViewToday {
		t.Fatalf("expected goto to focus day, got %s in %s", next.Day, next.CurrentView)
	}
}

func TestPaletteUnknownCommandSetsErrorStatus(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("teleport home"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	if !next.Status.IsError {
		t.Fatalf("expected error status, got %+v", next.Status)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := newTestModel(t, "run")
	m.Status = StatusBar{Text: "all good"}

	out := m.View()
	if !strings.Contains(out, "view: Today") {
		t.Fatalf("expected view text in output: %q", out)
	}
	if !strings.Contains(out, "day: 2026-02-09") {
		t.Fatalf("expected focused day in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "run") {
		t.Fatalf("expected habit name in output: %q", out)
	}
}

func TestInitWithSchedulerReturnsWaitCmd(t *testing.T) {
	m := newTestModel(t)
	m.Scheduler = scheduler.NewEngine(1)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected scheduler wait cmd when scheduler is attached")
	}
}

func TestSchedulerRolloverAdvancesFocusedDay(t *testing.T) {
	m := newTestModel(t, "run")
	m.Scheduler = scheduler.NewEngine(1)
	m.Day = "2026-02-08"

	ev := scheduler.Event{Kind: scheduler.EventRollover, Day: "2026-02-09", At: time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)}
	updated, cmd := m.Update(SchedulerEventMsg{Event: ev})
	next := updated.(Model)
	if next.Day != "2026-02-09" {
		t.Fatalf("expected rollover to today, got %s", next.Day)
	}
	if cmd == nil {
		t.Fatal("expected listener rearm cmd")
	}
}

func TestSchedulerNudgeOnIncompleteDay(t *testing.T) {
	m := newTestModel(t, "run", "read")

	ev := scheduler.Event{Kind: scheduler.EventNudge, Day: "2026-02-09", At: time.Date(2026, 2, 9, 20, 0, 0, 0, time.Local)}
	updated, _ := m.Update(SchedulerEventMsg{Event: ev})
	next := updated.(Model)
	if !strings.Contains(next.Status.Text, "nudge") {
		t.Fatalf("expected nudge status, got %q", next.Status.Text)
	}
	if !strings.Contains(next.Status.Text, "0 of 2") {
		t.Fatalf("expected done count in nudge, got %q", next.Status.Text)
	}
	if !strings.Contains(next.View(), "notification: [NUDGE]") {
		t.Fatalf("expected nudge banner in view")
	}

	// The banner clears on the next keypress.
	updated, _ = next.Update(keyMsg("j"))
	next = updated.(Model)
	if strings.Contains(next.View(), "notification:") {
		t.Fatalf("expected nudge banner dismissed after keypress")
	}
}

func TestBubbleWidgetsFollowEngineState(t *testing.T) {
	m := newTestModel(t)
	if got := len(m.habitList.Items()); got != 0 {
		t.Fatalf("expected empty habit list widget, got %d items", got)
	}

	updated, _ := m.Update(keyMsg("a"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("water"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	if got := len(next.Engine.Habits()); got != 1 {
		t.Fatalf("expected 1 habit in engine, got %d", got)
	}
	if got := len(next.habitList.Items()); got != 1 {
		t.Fatalf("habit list items = %d after add, want 1", got)
	}

	// Marking the day perfect must show up in the timeline table rows.
	updated, _ = next.Update(keyMsg("d"))
	next = updated.(Model)
	rows := next.timelineTable.Rows()
	if len(rows) == 0 || rows[0][2] != "100%" {
		t.Fatalf("timeline table rows not refreshed after mark: %v", rows)
	}

	updated, _ = next.Update(keyMsg("2"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("x"))
	next = updated.(Model)
	if got := len(next.habitList.Items()); got != 0 {
		t.Fatalf("habit list items = %d after delete, want 0", got)
	}
}

func TestTextEntryCursorAwareEditing(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(keyMsg("a"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("water"))
	next = updated.(Model)

	// Insert before the last rune: the component must honor the cursor
	// position instead of appending to the end.
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("x"))
	next = updated.(Model)
	if got := next.textEntry.Value(); got != "watexr" {
		t.Fatalf("text entry value = %q, want %q", got, "watexr")
	}
}

func TestPaletteInputEditing(t *testing.T) {
	m := newTestModel(t, "run")
	updated, _ := m.Update(keyMsg("/"))
	next := updated.(Model)
	updated, _ = next.Update(keyMsg("addd"))
	next = updated.(Model)
	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	next = updated.(Model)
	if next.Palette.Input != "add" {
		t.Fatalf("palette input = %q, want %q", next.Palette.Input, "add")
	}
}

func TestTodayViewHidesStaleCompletionStamp(t *testing.T) {
	m := newTestModel(t, "run")
	updated, _ := m.Update(keyMsg("d"))
	next := updated.(Model)
	if !strings.Contains(next.renderTodayView(), "@") {
		t.Fatal("expected completion stamp on a done entry")
	}

	// Flipping to failed keeps completedAt in the data but the stamp is
	// only shown while the entry is done.
	updated, _ = next.Update(keyMsg("f"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("overslept"))
	next = updated.(Model)
	updated, _ = next.Update(keyMsg("enter"))
	next = updated.(Model)

	entry, ok := next.Engine.Entry(next.Day, next.Engine.Habits()[0].ID)
	if !ok || entry.CompletedAt == nil {
		t.Fatal("flip to failed must preserve completedAt")
	}
	if strings.Contains(next.renderTodayView(), "@") {
		t.Fatal("failed entry must not show a completion stamp")
	}
}
