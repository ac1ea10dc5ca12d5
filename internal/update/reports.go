package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/habitd/internal/views"
)

func (m Model) handleReportsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		if m.Reports.Month == time.January {
			m.Reports.Month = time.December
			m.Reports.Year--
		} else {
			m.Reports.Month--
		}
	case "l":
		if m.Reports.Month == time.December {
			m.Reports.Month = time.January
			m.Reports.Year++
		} else {
			m.Reports.Month++
		}
	case "y":
		m.Reports.Yearly = !m.Reports.Yearly
	default:
		var cmd tea.Cmd
		m.reportView, cmd = m.reportView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) renderReportsView() string {
	title := fmt.Sprintf("%s %d", m.Reports.Month, m.Reports.Year)
	if m.Reports.Yearly {
		title = fmt.Sprintf("year %d", m.Reports.Year)
	}
	return views.RenderReportsPanel(views.ReportsPanelData{
		Title:    title,
		BodyView: m.reportView.View(),
	})
}

// renderReportMarkdown builds the monthly or yearly report as markdown and
// runs it through the terminal renderer.
func (m Model) renderReportMarkdown() string {
	if m.Reports.Yearly {
		return views.RenderMarkdown(m.yearlyReportMarkdown(), m.theme)
	}
	return views.RenderMarkdown(m.monthlyReportMarkdown(), m.theme)
}

func (m Model) monthlyReportMarkdown() string {
	year, month := m.Reports.Year, m.Reports.Month
	perfect, total := m.Engine.MonthlyPerfectCount(year, month)
	pct := m.Engine.MonthlyPercent(year, month)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s %d\n\n", month, year)
	fmt.Fprintf(&b, "**%d%%** of the month perfect: %d of %d days.\n", pct, perfect, total)

	if reasons := m.Engine.TopReasons(year, month, 5); len(reasons) > 0 {
		b.WriteString("\n## Top failure reasons\n\n")
		for _, rc := range reasons {
			fmt.Fprintf(&b, "- %s (%d day(s))\n", rc.Reason, rc.Count)
		}
	}
	return b.String()
}

func (m Model) yearlyReportMarkdown() string {
	year := m.Reports.Year
	best, bestPct, worst, worstPct := m.Engine.YearlyBestWorstMonth(year)

	var b strings.Builder
	fmt.Fprintf(&b, "# %d\n\n", year)
	fmt.Fprintf(&b, "- Best month: **%s** at %d%%\n", best, bestPct)
	fmt.Fprintf(&b, "- Worst month: **%s** at %d%%\n\n", worst, worstPct)

	b.WriteString("| Month | Score |\n|---|---|\n")
	for month := time.January; month <= time.December; month++ {
		fmt.Fprintf(&b, "| %s | %d%% |\n", month, m.Engine.MonthlyPercent(year, month))
	}
	return b.String()
}
