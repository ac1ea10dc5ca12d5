package views

import (
	"fmt"
	"strings"
)

type TodayRowData struct {
	Name      string
	Status    string
	Reason    string
	Completed string
}

type TodayPanelData struct {
	Date       string
	Score      int
	MeterView  string
	Rows       []TodayRowData
	Cursor     int
	InputLabel string
	InputView  string
}

type HabitRowData struct {
	Name    string
	Created string
	Marked  int
}

type HabitsPanelData struct {
	ListView   string
	Rows       []HabitRowData
	Cursor     int
	InputLabel string
	InputView  string
}

type TimelineDayData struct {
	Date    string
	DayName string
	Percent int
	Reasons []string
}

type TimelinePanelData struct {
	TableView string
	Days      []TimelineDayData
	Cursor    int
}

type ReportsPanelData struct {
	Title    string
	BodyView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Date))
	b.WriteString(fmt.Sprintf("score: %d%% %s\n", data.Score, data.MeterView))
	b.WriteString("actions: [j/k]move [d]done [f]failed [c]clear [h/l]day [t]today\n")
	if data.InputLabel != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", data.InputLabel, data.InputView))
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no habits, press [a] to add one)")
		return strings.TrimSpace(b.String())
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("\n%s %s %s", cursor, statusBadge(row.Status), row.Name))
		if row.Reason != "" {
			b.WriteString(fmt.Sprintf(" (%s)", row.Reason))
		}
		if row.Completed != "" {
			b.WriteString(fmt.Sprintf(" @%s", row.Completed))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderHabitsPanel(data HabitsPanelData) string {
	var b strings.Builder
	b.WriteString("habits:\n")
	b.WriteString("actions: [a]add [r]rename [x]delete [j/k]move\n")
	if data.InputLabel != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", data.InputLabel, data.InputView))
	}
	b.WriteString(data.ListView + "\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no habits yet)")
		return strings.TrimSpace(b.String())
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s  since %s, %d day(s) recorded\n", cursor, row.Name, row.Created, row.Marked))
	}
	return strings.TrimSpace(b.String())
}

func RenderTimelinePanel(data TimelinePanelData) string {
	var b strings.Builder
	b.WriteString("timeline:\n")
	b.WriteString("actions: [j/k]move [enter]open day\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Days) == 0 {
		b.WriteString("(empty)")
		return strings.TrimSpace(b.String())
	}
	for i, day := range data.Days {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s %3d%%\n", cursor, day.Date, day.DayName, day.Percent))
		for _, reason := range day.Reasons {
			b.WriteString(fmt.Sprintf("    - %s\n", reason))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderReportsPanel(data ReportsPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("reports: %s\n", data.Title))
	b.WriteString("actions: [h/l]month [y]toggle yearly [j/k]scroll\n\n")
	b.WriteString(data.BodyView)
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func statusBadge(status string) string {
	switch status {
	case "done":
		return "[DONE]"
	case "failed":
		return "[FAIL]"
	default:
		return "[    ]"
	}
}
