package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/model"
	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handleTodayKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Engine.Habits())-1 {
			m.Cursor++
		}
	case "h":
		m.Day = m.Day.AddDays(-1)
	case "l":
		m.Day = m.Day.AddDays(1)
	case "d":
		m = m.markCurrent(model.StatusDone, nil)
	case "f":
		if _, ok := m.currentHabit(); ok {
			m.beginTextEntry(InputReason, "")
		}
	case "c":
		m = m.clearCurrent()
	}
	return m
}

func (m Model) markCurrent(status model.Status, reason *string) Model {
	h, ok := m.currentHabit()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected", IsError: true}
		return m
	}
	if err := m.Engine.SetStatus(context.Background(), string(m.Day), h.ID, status, reason); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s %s", m.Day, h.Name, status)}
	return m
}

func (m Model) clearCurrent() Model {
	h, ok := m.currentHabit()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected", IsError: true}
		return m
	}
	if err := m.Engine.ClearStatus(context.Background(), string(m.Day), h.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: cleared %s", m.Day, h.Name)}
	return m
}

func (m *Model) beginTextEntry(mode InputMode, initial string) {
	m.inputMode = mode
	if mode == InputRename {
		if h, ok := m.currentHabit(); ok {
			m.renameTarget = h.ID
			if initial == "" {
				initial = h.Name
			}
		} else {
			m.inputMode = InputNone
			m.Status = StatusBar{Text: "no habit selected", IsError: true}
			return
		}
	}
	m.textEntry.SetValue(initial)
	m.textEntry.Focus()
	switch mode {
	case InputAdd:
		m.Status = StatusBar{Text: "new habit name, enter to save"}
	case InputRename:
		m.Status = StatusBar{Text: "new name, enter to save"}
	case InputReason:
		m.Status = StatusBar{Text: "failure reason, enter to save (empty keeps previous)"}
	}
}

func (m Model) handleTextEntryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.inputMode = InputNone
		m.textEntry.SetValue("")
		m.textEntry.Blur()
		m.Status = StatusBar{Text: "cancelled"}
	case "enter":
		m = m.commitTextEntry()
	default:
		// Everything else goes through the component so cursor movement,
		// editing, and paste behave.
		var cmd tea.Cmd
		m.textEntry, cmd = m.textEntry.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) commitTextEntry() Model {
	value := strings.TrimSpace(m.textEntry.Value())
	mode := m.inputMode
	m.inputMode = InputNone
	m.textEntry.SetValue("")
	m.textEntry.Blur()

	switch mode {
	case InputAdd:
		h, err := m.Engine.AddHabit(context.Background(), value)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Cursor = len(m.Engine.Habits()) - 1
		m.Status = StatusBar{Text: fmt.Sprintf("added %s", h.Name)}
	case InputRename:
		if err := m.Engine.RenameHabit(context.Background(), m.renameTarget, value); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.Status = StatusBar{Text: fmt.Sprintf("renamed to %s", value)}
	case InputReason:
		var reason *string
		if value != "" {
			reason = &value
		}
		m = m.markCurrent(model.StatusFailed, reason)
	}
	return m
}

func (m Model) renderTodayView() string {
	habits := m.Engine.Habits()
	rows := make([]views.TodayRowData, 0, len(habits))
	for _, h := range habits {
		row := views.TodayRowData{Name: h.Name}
		if entry, ok := m.Engine.Entry(m.Day, h.ID); ok {
			row.Status = string(entry.Status)
			row.Reason = entry.Reason
			if entry.Status == model.StatusDone && entry.CompletedAt != nil {
				row.Completed = formatClock(*entry.CompletedAt)
			}
		}
		rows = append(rows, row)
	}

	label := ""
	if m.inputMode != InputNone && m.CurrentView == ViewToday {
		label = string(m.inputMode) + ":"
	}
	score := m.Engine.DayPercent(m.Day)
	return views.RenderTodayPanel(views.TodayPanelData{
		Date:       string(m.Day),
		Score:      score,
		MeterView:  m.todayMeter.ViewAs(float64(score) / 100),
		Rows:       rows,
		Cursor:     m.Cursor,
		InputLabel: label,
		InputView:  m.textEntry.View(),
	})
}

func (m Model) renderReasonsPane() string {
	reasons := m.Engine.SummarizeReasons(m.Day)
	if len(reasons) == 0 {
		return "reasons:\n(none)"
	}
	var b strings.Builder
	b.WriteString("reasons:\n")
	for _, r := range reasons {
		b.WriteString("- " + r + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
