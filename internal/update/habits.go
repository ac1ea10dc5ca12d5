package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handleHabitsKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Engine.Habits())-1 {
			m.Cursor++
		}
	case "r":
		m.beginTextEntry(InputRename, "")
	case "x":
		m = m.deleteCurrent()
	}
	return m
}

func (m Model) deleteCurrent() Model {
	h, ok := m.currentHabit()
	if !ok {
		m.Status = StatusBar{Text: "no habit selected", IsError: true}
		return m
	}
	if err := m.Engine.DeleteHabit(context.Background(), h.ID); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.clampCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted %s and its history", h.Name)}
	return m
}

func (m Model) renderHabitsView() string {
	habits := m.Engine.Habits()
	rows := make([]views.HabitRowData, 0, len(habits))
	for _, h := range habits {
		marked := 0
		for _, day := range m.timelineKeys() {
			if _, ok := m.Engine.Entry(day, h.ID); ok {
				marked++
			}
		}
		rows = append(rows, views.HabitRowData{
			Name:    h.Name,
			Created: time.UnixMilli(h.CreatedAt).Local().Format("2006-01-02"),
			Marked:  marked,
		})
	}

	label := ""
	if m.inputMode != InputNone && m.CurrentView == ViewHabits {
		label = string(m.inputMode) + ":"
	}
	return views.RenderHabitsPanel(views.HabitsPanelData{
		ListView:   m.habitList.View(),
		Rows:       rows,
		Cursor:     m.Cursor,
		InputLabel: label,
		InputView:  m.textEntry.View(),
	})
}
