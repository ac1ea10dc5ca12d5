package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/habitd/internal/config"
	"github.com/sandeepkv93/habitd/internal/ledger"
	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

type View string

const (
	ViewToday    View = "Today"
	ViewHabits   View = "Habits"
	ViewTimeline View = "Timeline"
	ViewReports  View = "Reports"
)

// InputMode says what the shared text input is currently capturing.
type InputMode string

const (
	InputNone   InputMode = ""
	InputAdd    InputMode = "add"
	InputRename InputMode = "rename"
	InputReason InputMode = "reason"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today    string
	Habits   string
	Timeline string
	Reports  string
	Help     string
	Quit     string
}

type TimelineState struct {
	Cursor int
}

type ReportsState struct {
	Year   int
	Month  time.Month
	Yearly bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Engine      *ledger.Engine
	CurrentView View
	Day         model.DateKey
	Cursor      int
	Timeline    TimelineState
	Reports     ReportsState
	Scheduler   *scheduler.Engine
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	inputMode     InputMode
	renameTarget  string
	pendingNotice string
	timelineDays  int
	theme         string
	nudgeHour     int
	nudgeEnabled  bool
	notifier      DesktopNotifier
	now           func() time.Time

	// Bubble components used for rich TUI controls
	habitList     list.Model
	timelineTable table.Model
	textEntry     textinput.Model
	commandInput  textinput.Model
	todayMeter    progress.Model
	helpModel     help.Model
	reportView    viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type GotoDayMsg struct {
	Day model.DateKey
}

type SchedulerEventMsg struct {
	Event scheduler.Event
}

func NewModel(eng *ledger.Engine) Model {
	return NewModelWithConfig(eng, config.DefaultConfig())
}

func NewModelWithConfig(eng *ledger.Engine, cfg config.Config) Model {
	now := time.Now
	m := Model{
		Engine:      eng,
		CurrentView: ViewToday,
		Day:         model.KeyFor(now()),
		Reports: ReportsState{
			Year:  now().Year(),
			Month: now().Month(),
		},
		Keys: GlobalKeyMap{
			Today:    "1",
			Habits:   "2",
			Timeline: "3",
			Reports:  "4",
			Help:     "?",
			Quit:     "q",
		},
		timelineDays: cfg.Timeline.Days,
		theme:        cfg.Appearance.Theme,
		nudgeHour:    cfg.Nudge.Hour,
		nudgeEnabled: cfg.Nudge.Enabled,
		notifier:     NoopDesktopNotifier{},
		now:          now,
	}
	if m.timelineDays <= 0 {
		m.timelineDays = 14
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithScheduler(eng *ledger.Engine, cfg config.Config, engine *scheduler.Engine) Model {
	m := NewModelWithConfig(eng, cfg)
	m.Scheduler = engine
	return m
}

func (m *Model) initBubbleComponents() {
	m.habitList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.habitList.Title = "Habits (list)"
	m.habitList.SetShowHelp(false)
	m.habitList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Day", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Done", Width: 6},
	}
	m.timelineTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.textEntry = textinput.New()
	m.textEntry.Prompt = "> "
	m.textEntry.CharLimit = 256
	m.textEntry.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.todayMeter = progress.New(progress.WithDefaultGradient())

	m.helpModel = help.New()
	m.reportView = viewport.New(54, 14)
}

func (m *Model) syncBubbleData() {
	if m.Engine == nil {
		return
	}

	habits := m.Engine.Habits()
	items := make([]list.Item, 0, len(habits))
	for _, h := range habits {
		desc := "unmarked"
		if entry, ok := m.Engine.Entry(m.Day, h.ID); ok {
			desc = string(entry.Status)
		}
		items = append(items, listItem{title: h.Name, description: desc})
	}
	m.habitList.SetItems(items)
	if len(items) > 0 && m.Cursor < len(items) {
		m.habitList.Select(m.Cursor)
	}

	rows := make([]table.Row, 0, m.timelineDays)
	for _, day := range m.timelineKeys() {
		t, err := day.Time()
		if err != nil {
			continue
		}
		rows = append(rows, table.Row{
			string(day),
			t.Weekday().String()[:3],
			fmt.Sprintf("%d%%", m.Engine.DayPercent(day)),
			fmt.Sprintf("%d", m.Engine.DoneCount(day)),
		})
	}
	m.timelineTable.SetRows(rows)
	if len(rows) > 0 && m.Timeline.Cursor < len(rows) {
		m.timelineTable.SetCursor(m.Timeline.Cursor)
	}

	m.reportView.SetContent(m.renderReportMarkdown())
}

// timelineKeys lists the focused day and the days before it, newest first.
func (m Model) timelineKeys() []model.DateKey {
	out := make([]model.DateKey, 0, m.timelineDays)
	for i := 0; i < m.timelineDays; i++ {
		out = append(out, m.Day.AddDays(-i))
	}
	return out
}

func (m *Model) clampCursor() {
	n := len(m.Engine.Habits())
	if n == 0 {
		m.Cursor = 0
		return
	}
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) currentHabit() (model.Habit, bool) {
	habits := m.Engine.Habits()
	if len(habits) == 0 || m.Cursor < 0 || m.Cursor >= len(habits) {
		return model.Habit{}, false
	}
	return habits[m.Cursor], true
}
