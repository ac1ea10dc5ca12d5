package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForSchedulerEventCmd(m.Scheduler.C())
	}
	return nil
}

// Update handles one message and hands the result through applyMsg. The
// bubble components are re-synced on the model that is actually returned:
// a deferred sync on the value receiver would mutate a copy Go has already
// discarded by the time the deferred call runs.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.applyMsg(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) applyMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		// Any keypress dismisses a pending nudge banner.
		m.pendingNotice = ""
		if m.inputMode != InputNone {
			return m.handleTextEntryKey(typed)
		}
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Today:
			m.CurrentView = ViewToday
			return m, nil
		case m.Keys.Habits:
			m.CurrentView = ViewHabits
			return m, nil
		case m.Keys.Timeline:
			m.CurrentView = ViewTimeline
			m.Timeline.Cursor = 0
			return m, nil
		case m.Keys.Reports:
			m.CurrentView = ViewReports
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "t":
			m.Day = model.KeyFor(m.now())
			m.Status = StatusBar{Text: fmt.Sprintf("focused %s", m.Day)}
			return m, nil
		case "a":
			m.beginTextEntry(InputAdd, "")
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewToday:
			return m.handleTodayKey(typed), nil
		case ViewHabits:
			return m.handleHabitsKey(typed), nil
		case ViewTimeline:
			return m.handleTimelineKey(typed)
		case ViewReports:
			return m.handleReportsKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case GotoDayMsg:
		if typed.Day.Valid() {
			m.Day = typed.Day
			m.CurrentView = ViewToday
			m.Status = StatusBar{Text: fmt.Sprintf("focused %s", typed.Day)}
		} else {
			m.Status = StatusBar{Text: fmt.Sprintf("error: invalid day %q", typed.Day), IsError: true}
		}
		return m, nil
	case SchedulerEventMsg:
		return m.onSchedulerEvent(typed.Event)
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = fmt.Sprintf("status: %s", m.Status.Text)
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewToday:
		leftPane = m.renderTodayView()
		rightPane = m.renderReasonsPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewHabits:
		leftPane = m.renderHabitsView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTimeline:
		leftPane = m.renderTimelineView()
		rightPane = m.renderHelpIfVisible()
	case ViewReports:
		leftPane = m.renderReportsView()
		rightPane = m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:        fmt.Sprintf("habitd | view: %s | day: %s | score: %d%%", m.CurrentView, m.Day, m.Engine.DayPercent(m.Day)),
		LeftPane:      leftPane,
		RightPane:     rightPane,
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  views.RenderNotification("nudge", m.pendingNotice),
		Footer: fmt.Sprintf("keys: %s today | %s habits | %s timeline | %s reports | / cmd | %s help | %s quit",
			m.Keys.Today, m.Keys.Habits, m.Keys.Timeline, m.Keys.Reports, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewToday, ViewHabits, ViewTimeline, ViewReports:
		return true
	default:
		return false
	}
}
