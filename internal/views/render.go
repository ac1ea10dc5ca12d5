package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// AppData is everything the top-level frame needs to draw one frame.
type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Notification  string
	Footer        string
}

const paneWidth = 58

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4385BE"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#879A39"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D14D41"))
	noticeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#D0A215")).
			Padding(0, 1)
	paneStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(paneWidth)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// RenderApp draws the full application frame: header, two panes side by
// side, status line, an optional notification banner, and the key footer.
func RenderApp(data AppData) string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Render(data.LeftPane),
		paneStyle.Render(data.RightPane),
	)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{headerStyle.Render(data.Header), panes, status}
	if data.Notification != "" {
		lines = append(lines, noticeStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders markdown for the terminal using the named glamour
// theme. Unknown or empty themes fall back to dark, and a render failure
// falls back to the raw markdown so reports stay readable.
func RenderMarkdown(md, theme string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	switch theme {
	case "dark", "light", "notty", "dracula", "ascii":
	default:
		theme = "dark"
	}
	out, err := glamour.Render(md, theme)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
