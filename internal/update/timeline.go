package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handleTimelineKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Timeline.Cursor > 0 {
			m.Timeline.Cursor--
		}
	case "down", "j":
		if m.Timeline.Cursor < m.timelineDays-1 {
			m.Timeline.Cursor++
		}
	case "enter":
		keys := m.timelineKeys()
		if m.Timeline.Cursor < len(keys) {
			day := keys[m.Timeline.Cursor]
			return m, func() tea.Msg { return GotoDayMsg{Day: day} }
		}
	}
	return m, nil
}

func (m Model) renderTimelineView() string {
	days := make([]views.TimelineDayData, 0, m.timelineDays)
	for _, key := range m.timelineKeys() {
		t, err := key.Time()
		if err != nil {
			continue
		}
		days = append(days, views.TimelineDayData{
			Date:    string(key),
			DayName: t.Weekday().String()[:3],
			Percent: m.Engine.DayPercent(key),
			Reasons: m.Engine.SummarizeReasons(key),
		})
	}
	return views.RenderTimelinePanel(views.TimelinePanelData{
		TableView: m.timelineTable.View(),
		Days:      days,
		Cursor:    m.Timeline.Cursor,
	})
}
