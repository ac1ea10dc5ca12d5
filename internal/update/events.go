package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/scheduler"
)

func waitForSchedulerEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

func (m Model) onSchedulerEvent(ev scheduler.Event) (Model, tea.Cmd) {
	now := m.now()
	today := model.KeyFor(now)

	switch ev.Kind {
	case scheduler.EventRollover:
		// A tracked day only moves forward automatically when the user was
		// looking at the day that just ended.
		if m.Day == today.AddDays(-1) || m.Day == ev.Day {
			m.Day = today
		}
		m.Status = StatusBar{Text: fmt.Sprintf("new day: %s", today)}
		if m.Scheduler != nil {
			if err := m.Scheduler.ScheduleRollover(now); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	case scheduler.EventNudge:
		if m.nudgeEnabled && m.Engine.DayPercent(today) < 100 && len(m.Engine.Habits()) > 0 {
			done := m.Engine.DoneCount(today)
			total := len(m.Engine.Habits())
			text := fmt.Sprintf("nudge: %d of %d habits done today", done, total)
			m.Status = StatusBar{Text: text}
			m.pendingNotice = text
			_ = m.notifier.Send(Notification{Title: "habitd", Body: text})
		}
		if m.Scheduler != nil {
			if err := m.Scheduler.ScheduleNudge(now, m.nudgeHour); err != nil {
				m.Status = StatusBar{Text: err.Error(), IsError: true}
			}
		}
	}

	if m.Scheduler != nil {
		return m, waitForSchedulerEventCmd(m.Scheduler.C())
	}
	return m, nil
}
